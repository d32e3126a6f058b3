// Package restore implements the Restore Engine: given a block device whose
// sector 0 is a bow log header, it replays the log in reverse to undo
// writes made during a checkpoint window, falling forward to a single
// block-0 recovery when the log itself cannot be trusted.
package restore

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// Engine implements interfaces.RestoreEngine over an interfaces.SectorDevice
// opener.
type Engine struct {
	open func(path string) (interfaces.SectorDevice, error)
}

// New returns a restore Engine that opens devices with openFn.
func New(openFn func(path string) (interfaces.SectorDevice, error)) *Engine {
	return &Engine{open: openFn}
}

// Restore implements interfaces.RestoreEngine.
func (e *Engine) Restore(blockDevicePath string) error {
	dev, err := e.open(blockDevicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	table := &types.RemapTable{}
	header, verr := validate(dev, table)
	if verr != nil {
		if !isRecoverable(verr) {
			return verr
		}
		return rollForward(dev, table, header)
	}

	if err := apply(dev, header); err != nil {
		return err
	}
	return dev.Sync()
}

// isRecoverable reports whether err is one of the kinds Pass 1 treats as
// "log cannot be trusted" rather than a fatal device error.
func isRecoverable(err error) bool {
	var coreErr *types.CoreError
	if !errors.As(err, &coreErr) {
		return false
	}
	switch coreErr.Kind {
	case types.InvalidFormat, types.ChecksumMismatch:
		return true
	default:
		return false
	}
}

// readSector0Header reads the fixed-size header at device sector 0 through
// table, which may redirect it if an entry covering sector 0 has already
// been learned.
func readSector0Header(dev interfaces.SectorDevice, table *types.RemapTable) (types.BowLogSector, error) {
	sector := uint64(0)
	if phys, ok := table.Resolve(0); ok {
		sector = phys
	}
	buf := make([]byte, types.SectorSize)
	if err := dev.ReadAt(buf, sector); err != nil {
		return types.BowLogSector{}, err
	}
	return types.DecodeBowLogSectorHeader(buf), nil
}

// readSector0Full reads the header plus its full entry array, spanning
// however many physical sectors that requires, through table.
func readSector0Full(dev interfaces.SectorDevice, table *types.RemapTable) (types.BowLogSector, error) {
	header, err := readSector0Header(dev, table)
	if err != nil {
		return types.BowLogSector{}, err
	}
	span := types.SectorSpanForCount(header.Count)
	buf := make([]byte, int(span)*types.SectorSize)
	for i := uint32(0); i < span; i++ {
		logical := uint64(i)
		sector := logical
		if phys, ok := table.Resolve(logical); ok {
			sector = phys
		}
		if err := dev.ReadAt(buf[i*types.SectorSize:(i+1)*types.SectorSize], sector); err != nil {
			return types.BowLogSector{}, err
		}
	}
	header.Entries = types.DecodeBowLogEntries(buf, header.Count)
	return header, nil
}

// readPayloadThroughTable reads size bytes starting at logical sector start,
// remapping each BlockSize-sized block's leading sector through table.
func readPayloadThroughTable(dev interfaces.SectorDevice, table *types.RemapTable, start uint64, size uint32) ([]byte, error) {
	if size%types.BlockSize != 0 {
		return nil, types.NewError(types.InvalidFormat, "restore.readPayloadThroughTable",
			fmt.Errorf("payload size %d is not a multiple of %d", size, types.BlockSize))
	}
	payload := make([]byte, size)
	blocks := int(size) / types.BlockSize
	for i := 0; i < blocks; i++ {
		logical := start + uint64(i*types.SectorsPerBlock)
		sector := logical
		if phys, ok := table.Resolve(logical); ok {
			sector = phys
		}
		off := i * types.BlockSize
		if err := dev.ReadAt(payload[off:off+types.BlockSize], sector); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// readPayloadDirect reads size bytes starting at device sector start,
// bypassing any remap table.
func readPayloadDirect(dev interfaces.SectorDevice, start uint64, size uint32) ([]byte, error) {
	payload := make([]byte, size)
	if err := dev.ReadAt(payload, start); err != nil {
		return nil, err
	}
	return payload, nil
}

// validate runs Pass 1: it reads sector 0 through the growing RemapTable,
// walks log sectors newest-first, verifies each entry's chained CRC, and
// appends validated entries to table. It returns the sector-0 header as
// initially observed (sequence S), needed by rollForward.
func validate(dev interfaces.SectorDevice, table *types.RemapTable) (types.BowLogSector, error) {
	initial, err := readSector0Header(dev, table)
	if err != nil {
		return types.BowLogSector{}, err
	}
	if initial.Magic != types.BowMagic {
		return initial, types.NewError(types.InvalidFormat, "restore.validate",
			fmt.Errorf("bad magic %#x at sector 0", initial.Magic))
	}

	for seq := int64(initial.Sequence); seq >= 0; seq-- {
		sector, err := readSector0Full(dev, table)
		if err != nil {
			return initial, err
		}
		if sector.Magic != types.BowMagic {
			return initial, types.NewError(types.InvalidFormat, "restore.validate",
				fmt.Errorf("bad magic %#x at log sequence %d", sector.Magic, seq))
		}
		if int64(sector.Sequence) != seq {
			return initial, types.NewError(types.InvalidFormat, "restore.validate",
				fmt.Errorf("expected sequence %d got %d", seq, sector.Sequence))
		}

		for i := len(sector.Entries) - 1; i >= 0; i-- {
			entry := sector.Entries[i]
			if entry.Size%types.BlockSize != 0 {
				return initial, types.NewError(types.InvalidFormat, "restore.validate",
					fmt.Errorf("entry size %d is not a multiple of %d", entry.Size, types.BlockSize))
			}
			payload, err := readPayloadThroughTable(dev, table, entry.Dest, entry.Size)
			if err != nil {
				return initial, err
			}
			if entry.Checksum != 0 {
				crc := chainedCRC32(uint32(entry.Source/8), payload, types.BlockSize)
				if crc != entry.Checksum {
					return initial, types.NewError(types.ChecksumMismatch, "restore.validate",
						fmt.Errorf("entry source=%d dest=%d: crc %#x != stored %#x", entry.Source, entry.Dest, crc, entry.Checksum))
				}
			}
			table.Append(entry)
		}
	}
	return initial, nil
}

// apply runs Pass 2: the same newest-first traversal as validate, except
// reads of entry payloads bypass the RemapTable (they go straight to dest,
// per §4.4 — no subsequent entry in the physical log may overlay them), and
// each validated entry's payload is written back to its original source
// sectors, undoing the checkpoint-window overwrite.
//
// Per the open question on Pass 2 remap behavior, this matches the source's
// observed behavior: Pass 2 re-reads sector 0 through a RemapTable that
// grows exactly as Pass 1's did, rather than reusing Pass 1's finished
// table, re-validating every entry as it goes.
func apply(dev interfaces.SectorDevice, initial types.BowLogSector) error {
	table := &types.RemapTable{}

	for seq := int64(initial.Sequence); seq >= 0; seq-- {
		sector, err := readSector0Full(dev, table)
		if err != nil {
			return err
		}
		if sector.Magic != types.BowMagic {
			return types.NewError(types.InvalidFormat, "restore.apply",
				fmt.Errorf("bad magic %#x at log sequence %d", sector.Magic, seq))
		}
		if int64(sector.Sequence) != seq {
			return types.NewError(types.InvalidFormat, "restore.apply",
				fmt.Errorf("expected sequence %d got %d", seq, sector.Sequence))
		}

		for i := len(sector.Entries) - 1; i >= 0; i-- {
			entry := sector.Entries[i]
			payload, err := readPayloadDirect(dev, entry.Dest, entry.Size)
			if err != nil {
				return err
			}
			if entry.Checksum != 0 {
				crc := chainedCRC32(uint32(entry.Source/8), payload, types.BlockSize)
				if crc != entry.Checksum {
					return types.NewError(types.ChecksumMismatch, "restore.apply",
						fmt.Errorf("entry source=%d dest=%d: crc %#x != stored %#x", entry.Source, entry.Dest, crc, entry.Checksum))
				}
			}
			if err := dev.WriteAt(payload, entry.Source); err != nil {
				return err
			}
			table.Append(entry)
		}
	}
	return nil
}

// rollForward restores only the block-0 pre-image named by header.Sector0,
// used when Pass 1 cannot trust the log. table is whatever Pass 1 had
// accumulated before it failed.
func rollForward(dev interfaces.SectorDevice, table *types.RemapTable, header types.BowLogSector) error {
	payload, err := readPayloadThroughTable(dev, table, header.Sector0, types.BlockSize)
	if err != nil {
		return err
	}
	if err := dev.WriteAt(payload, 0); err != nil {
		return err
	}
	return dev.Sync()
}
