// Package blockio adapts a raw block device or disk image file to the
// sector-addressed interfaces.SectorDevice interface the Restore Engine
// operates on. It is grounded on the teacher's os.File-backed device
// readers (internal/disk/dmg.go, internal/device/dmg.go) generalized from
// APFS block addressing to bow sector addressing.
package blockio

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// FileDevice implements interfaces.SectorDevice over an *os.File opened on
// a raw block device path or a regular file (used by tests and for disk
// images).
type FileDevice struct {
	file *os.File
}

// Open opens path for random-access read-write I/O. Restore needs
// read-write access even during its validate pass because both passes share
// one device handle (spec §4.4: "Open the device for read-write random
// access").
func Open(path string) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, types.NewError(types.IOFailed, "blockio.Open", err)
	}
	return &FileDevice{file: f}, nil
}

func (d *FileDevice) ReadAt(buf []byte, sector uint64) error {
	if len(buf)%types.SectorSize != 0 {
		return types.NewError(types.InvalidArgument, "blockio.ReadAt",
			fmt.Errorf("buffer length %d is not a multiple of sector size", len(buf)))
	}
	if _, err := d.file.ReadAt(buf, int64(sector)*types.SectorSize); err != nil {
		return types.NewError(types.IOFailed, "blockio.ReadAt", err)
	}
	return nil
}

func (d *FileDevice) WriteAt(buf []byte, sector uint64) error {
	if len(buf)%types.SectorSize != 0 {
		return types.NewError(types.InvalidArgument, "blockio.WriteAt",
			fmt.Errorf("buffer length %d is not a multiple of sector size", len(buf)))
	}
	if _, err := d.file.WriteAt(buf, int64(sector)*types.SectorSize); err != nil {
		return types.NewError(types.IOFailed, "blockio.WriteAt", err)
	}
	return nil
}

func (d *FileDevice) Sync() error {
	if err := d.file.Sync(); err != nil {
		return types.NewError(types.IOFailed, "blockio.Sync", err)
	}
	return nil
}

func (d *FileDevice) Close() error {
	return d.file.Close()
}
