//go:build !linux

package androidhal

import (
	"fmt"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// SyscallRebooter is unsupported outside Linux.
type SyscallRebooter struct{}

func (SyscallRebooter) Reboot(reason string) error {
	return types.NewError(types.IOFailed, "androidhal.Reboot", fmt.Errorf("reboot is not supported on this platform"))
}
