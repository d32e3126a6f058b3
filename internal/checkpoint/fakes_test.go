package checkpoint

import (
	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

type fakeBootControl struct {
	slot       types.Slot
	suffix     string
	successful types.Tristate
	err        error
}

func (f fakeBootControl) CurrentSlot() (types.Slot, error) { return f.slot, f.err }
func (f fakeBootControl) SlotSuffix(types.Slot) (string, error) {
	return f.suffix, f.err
}
func (f fakeBootControl) IsSlotMarkedSuccessful(types.Slot) (types.Tristate, error) {
	return f.successful, f.err
}

type fakeBowControl struct {
	calls []string
	err   error
}

func (f *fakeBowControl) SetState(blockDevicePath string, state interfaces.BowState) error {
	f.calls = append(f.calls, blockDevicePath+"="+string(state))
	return f.err
}

type fakeDiscarder struct{ calls int }

func (f *fakeDiscarder) DiscardRange(path string, offset, length uint64) error {
	f.calls++
	return nil
}

type fakeRemounter struct {
	calls []string
	err   error
}

func (f *fakeRemounter) Remount(mountPoint, fsType string, flags uintptr) error {
	f.calls = append(f.calls, mountPoint)
	return f.err
}

type fakeProperties struct {
	values map[string]string
	err    error
}

func (f *fakeProperties) SetProperty(key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return f.err
}

type fakeRebooter struct{ reasons []string }

func (f *fakeRebooter) Reboot(reason string) error {
	f.reasons = append(f.reasons, reason)
	return nil
}

type fakeMountInventory struct {
	mounts []types.CheckpointingMount
	err    error
}

func (f fakeMountInventory) ForEachCheckpointingMount(callback func(types.CheckpointingMount) error) error {
	if f.err != nil {
		return f.err
	}
	for _, m := range f.mounts {
		if err := callback(m); err != nil {
			return err
		}
	}
	return nil
}
