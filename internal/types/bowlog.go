package types

import "encoding/binary"

const (
	// SectorSize is the device addressing granularity in bytes.
	SectorSize = 512
	// BlockSize is the CRC/IO granularity in bytes; always a multiple of SectorSize.
	BlockSize = 4096
	// SectorsPerBlock is BlockSize / SectorSize.
	SectorsPerBlock = BlockSize / SectorSize

	// BowMagic is the 4-byte magic ("BOW\0") stamped at the start of every
	// bow log sector, little-endian.
	BowMagic uint32 = 0x00574F42

	// bowLogEntrySize is the packed, on-disk size of a single BowLogEntry.
	bowLogEntrySize = 24
	// bowLogHeaderSize is the packed, on-disk size of a BowLogSector header,
	// not including its trailing entries.
	bowLogHeaderSize = 20
)

// BowLogEntry is a single copy-on-write log record: source is the sector
// where data originally lived, dest is the sector where its pre-image was
// relocated to, size is the payload length in bytes (a multiple of
// BlockSize), and checksum is the CRC-32 of the pre-image (0 == unverified).
type BowLogEntry struct {
	Source   uint64
	Dest     uint64
	Size     uint32
	Checksum uint32
}

// Covers reports whether sector s falls within this entry's source range.
func (e BowLogEntry) Covers(s uint64) bool {
	sectors := uint64(e.Size) / SectorSize
	return s >= e.Source && s < e.Source+sectors
}

// Redirect maps sector s (which must satisfy Covers(s)) to its physical
// location in the dest range.
func (e BowLogEntry) Redirect(s uint64) uint64 {
	return e.Dest + (s - e.Source)
}

// DecodeBowLogEntry decodes a single packed BowLogEntry from buf, which must
// be at least bowLogEntrySize bytes.
func DecodeBowLogEntry(buf []byte) BowLogEntry {
	return BowLogEntry{
		Source:   binary.LittleEndian.Uint64(buf[0:8]),
		Dest:     binary.LittleEndian.Uint64(buf[8:16]),
		Size:     binary.LittleEndian.Uint32(buf[16:20]),
		Checksum: binary.LittleEndian.Uint32(buf[20:24]),
	}
}

// Encode packs e into buf, which must be at least bowLogEntrySize bytes.
func (e BowLogEntry) Encode(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], e.Source)
	binary.LittleEndian.PutUint64(buf[8:16], e.Dest)
	binary.LittleEndian.PutUint32(buf[16:20], e.Size)
	binary.LittleEndian.PutUint32(buf[20:24], e.Checksum)
}

// BowLogSector is one log sector of the on-disk bow log: a small header
// followed by a flexible array of BowLogEntry records. Only the sector at
// device sector 0 is ever read directly; all others are addressed through
// the chain of Sequence numbers starting from the header at sector 0.
type BowLogSector struct {
	Magic    uint32
	Count    uint32
	Sequence uint32
	Sector0  uint64 // sector holding the pre-image of device sector 0
	Entries  []BowLogEntry
}

// ByteLen returns the total packed size of the sector, header plus entries.
func (s BowLogSector) ByteLen() int {
	return bowLogHeaderSize + len(s.Entries)*bowLogEntrySize
}

// SectorSpanForCount returns the number of physical SectorSize sectors this
// BowLogSector occupies on disk, given only its header (Count known).
func SectorSpanForCount(count uint32) uint32 {
	total := bowLogHeaderSize + int(count)*bowLogEntrySize
	return uint32((total + SectorSize - 1) / SectorSize)
}

// DecodeBowLogSectorHeader decodes the fixed-size header portion of a
// BowLogSector from buf, which must be at least bowLogHeaderSize bytes. The
// Entries field is left nil; callers decode entries separately once the
// sector's full byte span has been read, per design note: "validate count
// against the remaining sector capacity before indexing".
func DecodeBowLogSectorHeader(buf []byte) BowLogSector {
	return BowLogSector{
		Magic:    binary.LittleEndian.Uint32(buf[0:4]),
		Count:    binary.LittleEndian.Uint32(buf[4:8]),
		Sequence: binary.LittleEndian.Uint32(buf[8:12]),
		Sector0:  binary.LittleEndian.Uint64(buf[12:20]),
	}
}

// DecodeBowLogEntries decodes Count entries from buf starting at
// bowLogHeaderSize, which must contain at least bowLogHeaderSize+count*bowLogEntrySize bytes.
func DecodeBowLogEntries(buf []byte, count uint32) []BowLogEntry {
	entries := make([]BowLogEntry, count)
	for i := uint32(0); i < count; i++ {
		off := bowLogHeaderSize + int(i)*bowLogEntrySize
		entries[i] = DecodeBowLogEntry(buf[off : off+bowLogEntrySize])
	}
	return entries
}

// Encode packs the full sector (header + entries) into buf, which must be at
// least s.ByteLen() bytes.
func (s BowLogSector) Encode(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], s.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], s.Count)
	binary.LittleEndian.PutUint32(buf[8:12], s.Sequence)
	binary.LittleEndian.PutUint64(buf[12:20], s.Sector0)
	for i, e := range s.Entries {
		off := bowLogHeaderSize + i*bowLogEntrySize
		e.Encode(buf[off : off+bowLogEntrySize])
	}
}
