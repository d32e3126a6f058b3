package androidhal

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// SyscallRemounter implements interfaces.MountRemounter via the Linux
// mount(2) syscall's MS_REMOUNT flag.
type SyscallRemounter struct{}

func (SyscallRemounter) Remount(mountPoint, fsType string, flags uintptr) error {
	// flags is expected to already carry MS_REMOUNT, set by the caller
	// per spec (CLM ORs it in before invoking this collaborator).
	if err := unix.Mount("none", mountPoint, fsType, flags, "checkpoint=enable"); err != nil {
		return types.NewError(types.IOFailed, "androidhal.Remount", fmt.Errorf("remount %s: %w", mountPoint, err))
	}
	return nil
}
