//go:build !linux

package blockio

import (
	"fmt"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// PathDiscarder is unsupported outside Linux; BLKDISCARD is a Linux-specific
// ioctl.
type PathDiscarder struct{}

// NewDiscarder returns a Discarder that always reports discard as
// unavailable. Callers should treat this as "discard unavailable" rather
// than fatal — prepare() can still proceed without it.
func NewDiscarder() PathDiscarder { return PathDiscarder{} }

func (PathDiscarder) DiscardRange(path string, offset, length uint64) error {
	return types.NewError(types.IOFailed, "blockio.DiscardRange", fmt.Errorf("BLKDISCARD is not supported on this platform"))
}
