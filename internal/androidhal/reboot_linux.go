package androidhal

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// SyscallRebooter implements interfaces.Rebooter via the Linux reboot(2)
// syscall's RB_AUTOBOOT command.
type SyscallRebooter struct{}

func (SyscallRebooter) Reboot(reason string) error {
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		return types.NewError(types.IOFailed, "androidhal.Reboot", fmt.Errorf("reboot (%s): %w", reason, err))
	}
	return nil
}
