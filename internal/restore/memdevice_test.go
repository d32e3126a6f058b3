package restore

import (
	"fmt"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// memDevice is an in-memory interfaces.SectorDevice backed by a flat byte
// slice, sized in whole sectors, used to exercise the Restore Engine
// without a real block device.
type memDevice struct {
	data   []byte
	closed bool
	synced bool
}

func newMemDevice(sectors int) *memDevice {
	return &memDevice{data: make([]byte, sectors*types.SectorSize)}
}

func (m *memDevice) ReadAt(buf []byte, sector uint64) error {
	off := int(sector) * types.SectorSize
	if off+len(buf) > len(m.data) {
		return fmt.Errorf("read past end of device: sector %d len %d", sector, len(buf))
	}
	copy(buf, m.data[off:off+len(buf)])
	return nil
}

func (m *memDevice) WriteAt(buf []byte, sector uint64) error {
	off := int(sector) * types.SectorSize
	if off+len(buf) > len(m.data) {
		return fmt.Errorf("write past end of device: sector %d len %d", sector, len(buf))
	}
	copy(m.data[off:off+len(buf)], buf)
	return nil
}

func (m *memDevice) Sync() error { m.synced = true; return nil }
func (m *memDevice) Close() error {
	m.closed = true
	return nil
}
