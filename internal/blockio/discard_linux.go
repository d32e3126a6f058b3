package blockio

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// blkdiscard is BLKDISCARD from <linux/fs.h>.
const blkdiscard = 0x1277

// PathDiscarder issues BLKDISCARD against a block device path, implementing
// interfaces.Discarder. The Checkpoint Lifecycle Manager calls this during
// prepare() to tell the kernel remapper's backing store that sectors about
// to be overwritten by the copy-on-write log hold no live data (spec §5.3).
type PathDiscarder struct{}

// NewDiscarder returns the Linux BLKDISCARD-backed Discarder.
func NewDiscarder() PathDiscarder { return PathDiscarder{} }

func (PathDiscarder) DiscardRange(path string, offset, length uint64) error {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return types.NewError(types.IOFailed, "blockio.DiscardRange", fmt.Errorf("open %s: %w", path, err))
	}
	defer unix.Close(fd)

	rng := [2]uint64{offset, length}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), blkdiscard, uintptr(unsafe.Pointer(&rng)))
	if errno != 0 {
		return types.NewError(types.IOFailed, "blockio.DiscardRange", fmt.Errorf("BLKDISCARD %s: %w", path, errno))
	}
	return nil
}
