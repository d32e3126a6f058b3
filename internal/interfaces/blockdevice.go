// File: internal/interfaces/blockdevice.go
package interfaces

import "io"

// SectorDevice is the sector-addressed random-access device the Restore
// Engine operates on. Sector numbers are in units of types.SectorSize
// (512 bytes). Implementations wrap an *os.File opened on a raw block
// device or disk image (internal/blockio).
type SectorDevice interface {
	// ReadAt reads len(buf) bytes starting at sector*SectorSize. len(buf)
	// must be a multiple of SectorSize.
	ReadAt(buf []byte, sector uint64) error

	// WriteAt writes buf starting at sector*SectorSize. len(buf) must be a
	// multiple of SectorSize.
	WriteAt(buf []byte, sector uint64) error

	// Sync flushes any buffered writes to durable storage.
	Sync() error

	io.Closer
}

// Discarder issues a block-range discard (trim) hint, consumed during
// CheckpointLifecycleManager.prepare for checkpoint_blk mounts (spec §4.3).
type Discarder interface {
	DiscardRange(path string, offset, length uint64) error
}

// PropertySetter sets a process-wide system property, consumed by commit to
// set "<daemon>.checkpoint_committed" (spec §6).
type PropertySetter interface {
	SetProperty(key, value string) error
}

// Rebooter triggers a system reboot, consumed unconditionally by abort
// (spec §4.3: "never returns an error").
type Rebooter interface {
	Reboot(reason string) error
}

// MountRemounter remounts a live mount point with new flags, consumed by
// commit for checkpoint_fs mounts (spec §4.3: "remount with the mount
// option checkpoint=enable preserving prior flags").
type MountRemounter interface {
	Remount(mountPoint, fsType string, flags uintptr) error
}
