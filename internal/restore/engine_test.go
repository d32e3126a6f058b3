package restore

import (
	"bytes"
	"testing"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

func newEngine(dev *memDevice) *Engine {
	return New(func(path string) (interfaces.SectorDevice, error) { return dev, nil })
}

func writeHeader(t *testing.T, dev *memDevice, h types.BowLogSector) {
	t.Helper()
	buf := make([]byte, h.ByteLen())
	h.Encode(buf)
	if err := dev.WriteAt(padToSector(buf), 0); err != nil {
		t.Fatalf("writeHeader: %v", err)
	}
}

func padToSector(buf []byte) []byte {
	if rem := len(buf) % types.SectorSize; rem != 0 {
		buf = append(buf, make([]byte, types.SectorSize-rem)...)
	}
	return buf
}

func TestRestore_S1_EmptyLog(t *testing.T) {
	dev := newMemDevice(4)
	writeHeader(t, dev, types.BowLogSector{Magic: types.BowMagic, Count: 0, Sequence: 0, Sector0: 0})
	before := append([]byte{}, dev.data...)

	e := newEngine(dev)
	if err := e.Restore("/dev/block/test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(before, dev.data) {
		t.Errorf("device contents changed on empty-log restore")
	}
}

func TestRestore_S2_SingleEntryReplay(t *testing.T) {
	dev := newMemDevice(32)

	predata := bytes.Repeat([]byte{0x42}, types.BlockSize)
	if err := dev.WriteAt(predata, 16); err != nil {
		t.Fatal(err)
	}
	crc := chainedCRC32(uint32(8/8), predata, types.BlockSize)

	entry := types.BowLogEntry{Source: 8, Dest: 16, Size: types.BlockSize, Checksum: crc}
	writeHeader(t, dev, types.BowLogSector{Magic: types.BowMagic, Count: 1, Sequence: 0, Sector0: 0, Entries: []types.BowLogEntry{entry}})

	e := newEngine(dev)
	if err := e.Restore("/dev/block/test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]byte, types.BlockSize)
	if err := dev.ReadAt(got, 8); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, predata) {
		t.Errorf("sectors 8..15 were not restored from dest")
	}
}

func TestRestore_S3_ChecksumRejectionRollsForward(t *testing.T) {
	dev := newMemDevice(32)

	preimage := bytes.Repeat([]byte{0x7A}, types.BlockSize)
	if err := dev.WriteAt(preimage, 20); err != nil {
		t.Fatal(err)
	}

	entry := types.BowLogEntry{Source: 8, Dest: 16, Size: types.BlockSize, Checksum: 0xDEADBEEF}
	writeHeader(t, dev, types.BowLogSector{Magic: types.BowMagic, Count: 1, Sequence: 0, Sector0: 20, Entries: []types.BowLogEntry{entry}})

	e := newEngine(dev)
	if err := e.Restore("/dev/block/test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]byte, types.BlockSize)
	if err := dev.ReadAt(got, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, preimage) {
		t.Errorf("sector 0 was not restored from the sector0 pre-image")
	}

	source := make([]byte, types.SectorSize)
	if err := dev.ReadAt(source, 8); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(source, make([]byte, types.SectorSize)) {
		t.Errorf("source sectors should not have been written when checksum fails")
	}
}

func TestRestore_S4_SequenceMismatchRollsForward(t *testing.T) {
	dev := newMemDevice(32)

	preimage := bytes.Repeat([]byte{0x11}, types.BlockSize)
	if err := dev.WriteAt(preimage, 24); err != nil {
		t.Fatal(err)
	}

	// sector 0 claims sequence=2 but there is no remap entry to make the
	// second read diverge, so the re-read at seq=1 still reports
	// sequence=2: mismatch.
	writeHeader(t, dev, types.BowLogSector{Magic: types.BowMagic, Count: 0, Sequence: 2, Sector0: 24})

	e := newEngine(dev)
	if err := e.Restore("/dev/block/test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]byte, types.BlockSize)
	if err := dev.ReadAt(got, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, preimage) {
		t.Errorf("sector 0 was not restored from the sector0 pre-image")
	}
}

func TestRestore_BadMagicIsInvalidFormatAndRollsForward(t *testing.T) {
	dev := newMemDevice(16)
	preimage := bytes.Repeat([]byte{0x55}, types.BlockSize)
	if err := dev.WriteAt(preimage, 8); err != nil {
		t.Fatal(err)
	}
	writeHeader(t, dev, types.BowLogSector{Magic: 0xBAD, Count: 0, Sequence: 0, Sector0: 8})

	e := newEngine(dev)
	if err := e.Restore("/dev/block/test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]byte, types.BlockSize)
	if err := dev.ReadAt(got, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, preimage) {
		t.Errorf("sector 0 was not restored from the sector0 pre-image")
	}
}
