// Package checkpoint implements the Checkpoint Lifecycle Manager: the
// retry-counter/slot-suffix state machine persisted in a small metadata
// file, and the operations that drive a checkpoint window from start
// through commit, abort, or boot-time rollback detection.
package checkpoint

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/grailbio/base/flock"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// journalingFsType is the filesystem whose own checkpoint=enable mount
// option commit() toggles for checkpoint_fs mounts.
const journalingFsType = "f2fs"

// msRemount is the remount flag commit OR's into a mount's prior flags.
const msRemount uintptr = 0x20

// LifecycleManager implements interfaces.CheckpointLifecycleManager.
type LifecycleManager struct {
	daemon       string
	metadataPath string
	lock         *flock.T

	fstab      interfaces.FstabLoader
	mounts     interfaces.MountInventory
	bootCtl    interfaces.BootControl // nil means HAL absent
	bow        interfaces.BowControl
	discard    interfaces.Discarder
	remount    interfaces.MountRemounter
	properties interfaces.PropertySetter
	rebooter   interfaces.Rebooter

	isCheckpointing bool
}

// Config bundles the collaborators NewLifecycleManager wires together.
type Config struct {
	Daemon       string
	MetadataPath string
	Fstab        interfaces.FstabLoader
	Mounts       interfaces.MountInventory
	BootControl  interfaces.BootControl // optional, may be nil
	Bow          interfaces.BowControl
	Discard      interfaces.Discarder
	Remount      interfaces.MountRemounter
	Properties   interfaces.PropertySetter
	Rebooter     interfaces.Rebooter
}

// NewLifecycleManager builds a LifecycleManager from cfg. The daemon name
// resolves Open Question 2: it parameterizes the committed-property key
// instead of hardcoding "vold".
func NewLifecycleManager(cfg Config) *LifecycleManager {
	return &LifecycleManager{
		daemon:       cfg.Daemon,
		metadataPath: cfg.MetadataPath,
		lock:         flock.New(cfg.MetadataPath + ".lock"),
		fstab:        cfg.Fstab,
		mounts:       cfg.Mounts,
		bootCtl:      cfg.BootControl,
		bow:          cfg.Bow,
		discard:      cfg.Discard,
		remount:      cfg.Remount,
		properties:   cfg.Properties,
		rebooter:     cfg.Rebooter,
	}
}

func (lm *LifecycleManager) Supports() bool {
	entries, err := lm.fstab.Entries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Checkpointing() {
			return true
		}
	}
	return false
}

func (lm *LifecycleManager) Start(retry int) error {
	if retry < -1 {
		return types.NewError(types.InvalidArgument, "checkpoint.Start",
			fmt.Errorf("retry must be >= -1, got %d", retry))
	}

	meta := types.CheckpointMetadata{State: types.Armed, Retry: retry + 1}
	if retry == -1 && lm.bootCtl != nil {
		if suffix, err := lm.currentSlotSuffix(); err == nil {
			meta = types.CheckpointMetadata{State: types.RollbackArmed, SlotSuffix: suffix}
		}
	}

	return lm.withLock(func() error {
		return lm.writeMetadata(meta)
	})
}

func (lm *LifecycleManager) NeedsCheckpoint() (bool, error) {
	if lm.bootCtl != nil {
		if slot, err := lm.bootCtl.CurrentSlot(); err == nil {
			if successful, err := lm.bootCtl.IsSlotMarkedSuccessful(slot); err == nil && successful == types.False {
				lm.isCheckpointing = true
				return true, nil
			}
		}
	}

	var needs bool
	err := lm.withLock(func() error {
		contents, ok, err := lm.readRaw()
		if err != nil {
			return err
		}
		needs = ok && contents != "0"
		return nil
	})
	if err != nil {
		return false, err
	}
	if needs {
		lm.isCheckpointing = true
	}
	return needs, nil
}

func (lm *LifecycleManager) NeedsRollback() (bool, error) {
	var rollback bool
	err := lm.withLock(func() error {
		contents, ok, err := lm.readRaw()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if contents == "0" {
			rollback = true
			return nil
		}
		if suffix, found := strings.CutPrefix(contents, "-1 "); found {
			current, err := lm.currentSlotSuffix()
			if err != nil {
				return nil
			}
			rollback = suffix == current
		}
		return nil
	})
	return rollback, err
}

func (lm *LifecycleManager) MarkBootAttempt() error {
	return lm.withLock(func() error {
		contents, ok, err := lm.readRaw()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fields := strings.SplitN(contents, " ", 2)
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return types.NewError(types.InvalidArgument, "checkpoint.MarkBootAttempt",
				fmt.Errorf("unparseable counter %q: %w", fields[0], err))
		}
		if n > 0 {
			return os.WriteFile(lm.metadataPath, []byte(strconv.Itoa(n-1)), 0644)
		}
		return nil
	})
}

func (lm *LifecycleManager) Prepare() error {
	sessionID := uuid.New().String()
	return lm.mounts.ForEachCheckpointingMount(func(cm types.CheckpointingMount) error {
		if cm.Mode != types.CheckpointModeBlock {
			return nil
		}
		// length is clamped to the device's real size by the kernel; we have
		// no independent size source here, so request the whole device.
		if err := lm.discard.DiscardRange(cm.Device, 0, ^uint64(0)); err != nil {
			log.Printf("[clm] session=%s prepare: discard %s failed (ignored): %v", sessionID, cm.Device, err)
		}
		if err := lm.bow.SetState(cm.Device, interfaces.BowStatePrepared); err != nil {
			log.Printf("[clm] session=%s prepare: set_state %s failed (ignored): %v", sessionID, cm.Device, err)
		}
		return nil
	})
}

func (lm *LifecycleManager) Commit() error {
	if !lm.isCheckpointing {
		return nil
	}
	sessionID := uuid.New().String()

	err := lm.mounts.ForEachCheckpointingMount(func(cm types.CheckpointingMount) error {
		switch cm.Mode {
		case types.CheckpointModeFs:
			if cm.FsType != journalingFsType {
				return nil
			}
			return lm.remount.Remount(cm.MountPoint, cm.FsType, cm.MountFlags|msRemount)
		case types.CheckpointModeBlock:
			return lm.bow.SetState(cm.Device, interfaces.BowStateCommitted)
		default:
			return nil
		}
	})
	if err != nil {
		return err
	}

	propertyKey := lm.daemon + ".checkpoint_committed"
	if err := lm.properties.SetProperty(propertyKey, "1"); err != nil {
		return err
	}
	log.Printf("[clm] session=%s commit: set %s=1", sessionID, propertyKey)

	lm.isCheckpointing = false
	return lm.withLock(func() error {
		return lm.deleteMetadata()
	})
}

func (lm *LifecycleManager) Abort() error {
	sessionID := uuid.New().String()
	log.Printf("[clm] session=%s abort: rebooting", sessionID)
	_ = lm.rebooter.Reboot("checkpoint abort")
	return nil
}

func (lm *LifecycleManager) currentSlotSuffix() (string, error) {
	if lm.bootCtl == nil {
		return "", fmt.Errorf("boot-control HAL absent")
	}
	slot, err := lm.bootCtl.CurrentSlot()
	if err != nil {
		return "", err
	}
	return lm.bootCtl.SlotSuffix(slot)
}

func (lm *LifecycleManager) withLock(fn func() error) error {
	if err := lm.lock.Lock(context.Background()); err != nil {
		return types.NewError(types.IOFailed, "checkpoint.withLock", err)
	}
	defer lm.lock.Unlock()
	return fn()
}

// readRaw returns the trimmed contents of the metadata file and whether it
// exists. A missing file is not an error: it means Idle.
func (lm *LifecycleManager) readRaw() (string, bool, error) {
	data, err := os.ReadFile(lm.metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, types.NewError(types.IOFailed, "checkpoint.readRaw", err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

func (lm *LifecycleManager) writeMetadata(meta types.CheckpointMetadata) error {
	contents, err := meta.Serialize()
	if err != nil {
		return types.NewError(types.InvalidArgument, "checkpoint.writeMetadata", err)
	}
	if err := os.WriteFile(lm.metadataPath, []byte(contents), 0644); err != nil {
		return types.NewError(types.IOFailed, "checkpoint.writeMetadata", err)
	}
	return nil
}

func (lm *LifecycleManager) deleteMetadata() error {
	if err := os.Remove(lm.metadataPath); err != nil && !os.IsNotExist(err) {
		return types.NewError(types.IOFailed, "checkpoint.deleteMetadata", err)
	}
	return nil
}
