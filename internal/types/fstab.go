package types

// CheckpointMode distinguishes the two ways an fstab entry can participate
// in a checkpoint. The flags are mutually exclusive per entry.
type CheckpointMode int

const (
	// CheckpointModeNone means the entry does not participate in checkpointing.
	CheckpointModeNone CheckpointMode = iota
	// CheckpointModeBlock means the entry is checkpointed by the kernel bow
	// block remapper (CheckpointBlk).
	CheckpointModeBlock
	// CheckpointModeFs means the entry is checkpointed by the filesystem's
	// own checkpoint=enable mount option (CheckpointFs).
	CheckpointModeFs
)

// FstabEntry is a single static mount descriptor, as read from the
// process-wide fstab loader. It is read-only input to Mount Inventory.
type FstabEntry struct {
	MountPoint    string
	BlockDevice   string
	FsType        string
	MountFlags    uintptr
	CheckpointBlk bool
	CheckpointFs  bool
}

// Mode returns which checkpoint mode, if any, this entry declares.
func (e FstabEntry) Mode() CheckpointMode {
	switch {
	case e.CheckpointBlk:
		return CheckpointModeBlock
	case e.CheckpointFs:
		return CheckpointModeFs
	default:
		return CheckpointModeNone
	}
}

// Checkpointing reports whether this entry participates in checkpointing at all.
func (e FstabEntry) Checkpointing() bool {
	return e.CheckpointBlk || e.CheckpointFs
}

// MountTableEntry is a single row of the live kernel mount table.
type MountTableEntry struct {
	Device     string
	MountPoint string
	FsType     string
	Options    []string
	DumpFreq   int
	PassNo     int
}

// CheckpointingMount is the join of a live MountTableEntry against the
// FstabEntry that declared it checkpoint-participating.
type CheckpointingMount struct {
	Device     string
	MountPoint string
	FsType     string
	Mode       CheckpointMode
	MountFlags uintptr
}
