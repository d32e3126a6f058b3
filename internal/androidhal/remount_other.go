//go:build !linux

package androidhal

import (
	"fmt"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// SyscallRemounter is unsupported outside Linux.
type SyscallRemounter struct{}

func (SyscallRemounter) Remount(mountPoint, fsType string, flags uintptr) error {
	return types.NewError(types.IOFailed, "androidhal.Remount", fmt.Errorf("remount is not supported on this platform"))
}
