package androidhal

import (
	"fmt"
	"os/exec"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// SetpropProperties implements interfaces.PropertySetter by shelling out to
// the platform's "setprop" binary. The Android property service itself is
// only reachable through bionic's libc, which is not reachable from pure Go
// without cgo; shelling out to the binary every other on-device tool uses
// for this is the portable option.
type SetpropProperties struct {
	// Bin overrides the setprop binary name, used by tests to point at a
	// stub executable. Defaults to "setprop".
	Bin string
}

func (s SetpropProperties) SetProperty(key, value string) error {
	bin := s.Bin
	if bin == "" {
		bin = "setprop"
	}
	if err := exec.Command(bin, key, value).Run(); err != nil {
		return types.NewError(types.IOFailed, "androidhal.SetProperty", fmt.Errorf("setprop %s %s: %w", key, value, err))
	}
	return nil
}
