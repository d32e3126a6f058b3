// Package bowctl implements Bow Control: it writes state transitions to the
// per-device sysfs control sink observed by the kernel block remapper.
package bowctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// devicePrefix is the filesystem prefix every block device path must carry
// (spec §4.2 precondition).
const devicePrefix = "/dev/"

// SysfsControl implements interfaces.BowControl by replacing the contents
// of "/sys/<block-tail>/bow/state" with the requested state.
type SysfsControl struct {
	// SysfsRoot overrides the "/sys" prefix; used by tests to redirect
	// writes into a temp directory. Defaults to "/sys" when empty.
	SysfsRoot string
}

// NewSysfsControl returns a BowControl writing under the real /sys.
func NewSysfsControl() *SysfsControl {
	return &SysfsControl{SysfsRoot: "/sys"}
}

// SetState writes state to the derived control path for blockDevicePath.
func (c *SysfsControl) SetState(blockDevicePath string, state interfaces.BowState) error {
	if !strings.HasPrefix(blockDevicePath, devicePrefix) {
		return types.NewError(types.InvalidArgument, "bowctl.SetState",
			fmt.Errorf("block device path %q must begin with %q", blockDevicePath, devicePrefix))
	}
	switch state {
	case interfaces.BowStateIdle, interfaces.BowStatePrepared, interfaces.BowStateCommitted:
	default:
		return types.NewError(types.InvalidArgument, "bowctl.SetState", fmt.Errorf("invalid state %q", state))
	}

	root := c.SysfsRoot
	if root == "" {
		root = "/sys"
	}
	tail := strings.TrimPrefix(blockDevicePath, devicePrefix)
	controlPath := fmt.Sprintf("%s/%s/bow/state", root, tail)

	if err := os.WriteFile(controlPath, []byte(state), 0644); err != nil {
		return types.NewError(types.IOFailed, "bowctl.SetState", fmt.Errorf("write %s: %w", controlPath, err))
	}
	return nil
}
