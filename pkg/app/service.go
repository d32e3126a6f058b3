package app

import (
	"github.com/deploymenttheory/go-vold-bow/internal/androidhal"
	"github.com/deploymenttheory/go-vold-bow/internal/blockio"
	"github.com/deploymenttheory/go-vold-bow/internal/bowctl"
	"github.com/deploymenttheory/go-vold-bow/internal/checkpoint"
	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/mount"
	"github.com/deploymenttheory/go-vold-bow/internal/restore"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// Service bundles the four core components wired against real, on-device
// collaborators. It is the production composition root; tests build their
// own components directly against fakes instead of going through this.
type Service struct {
	Config    *Config
	Lifecycle *checkpoint.LifecycleManager
	Restore   *restore.Engine
	Logger    *Logger
}

// BuildService wires Mount Inventory, Bow Control, the Restore Engine, and
// the Checkpoint Lifecycle Manager against the real OS-level collaborators,
// using cfg and the given fstab entries (the process-wide static fstab is
// itself read by a higher layer — vold's own fstab parser is explicitly
// out of scope, see spec.md Non-goals — and handed in here already parsed).
func BuildService(cfg *Config, fstabEntries []types.FstabEntry, bootControl interfaces.BootControl) *Service {
	fstab := interfaces.StaticFstabLoader{List: fstabEntries}
	mountTable := mount.FileMountTableReader{Path: cfg.MountTable}
	inventory := mount.NewInventory(fstab, mountTable)

	bow := &bowctl.SysfsControl{SysfsRoot: cfg.SysfsRoot}
	discarder := blockio.NewDiscarder()

	lifecycle := checkpoint.NewLifecycleManager(checkpoint.Config{
		Daemon:       cfg.Daemon,
		MetadataPath: cfg.MetadataPath,
		Fstab:        fstab,
		Mounts:       inventory,
		BootControl:  bootControl,
		Bow:          bow,
		Discard:      discarder,
		Remount:      androidhal.SyscallRemounter{},
		Properties:   androidhal.SetpropProperties{},
		Rebooter:     androidhal.SyscallRebooter{},
	})

	engine := restore.New(func(path string) (interfaces.SectorDevice, error) {
		return blockio.Open(path)
	})

	return &Service{
		Config:    cfg,
		Lifecycle: lifecycle,
		Restore:   engine,
		Logger:    NewLogger("app"),
	}
}
