package restore

import "hash/crc32"

// foldBlock folds a single block of payload bytes into crc using the
// standard reflected CRC-32 table (polynomial 0xEDB88320), without the
// pre-complement or post-complement stdlib's crc32.ChecksumIEEE applies.
// The producer's checksum chains across an entry's blocks starting from a
// non-standard initial value (source/8), so crc32.Update cannot be reused
// directly — it assumes the conventional all-ones seed.
func foldBlock(crc uint32, block []byte) uint32 {
	table := crc32.IEEETable
	for _, b := range block {
		crc = table[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

// chainedCRC32 computes the chained CRC-32 of payload, split into
// blockSize-sized blocks, starting from init and folding block by block
// without a reset between blocks.
func chainedCRC32(init uint32, payload []byte, blockSize int) uint32 {
	crc := init
	for off := 0; off < len(payload); off += blockSize {
		end := off + blockSize
		if end > len(payload) {
			end = len(payload)
		}
		crc = foldBlock(crc, payload[off:end])
	}
	return crc
}
