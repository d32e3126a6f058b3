// File: internal/interfaces/lifecycle.go
package interfaces

import "github.com/deploymenttheory/go-vold-bow/internal/types"

// CheckpointLifecycleManager exposes the checkpoint state-machine operations
// consumed by the host daemon at defined lifecycle points (spec §4.3).
type CheckpointLifecycleManager interface {
	Supports() bool
	Start(retry int) error
	NeedsCheckpoint() (bool, error)
	NeedsRollback() (bool, error)
	MarkBootAttempt() error
	Prepare() error
	Commit() error
	Abort() error
}

// MountInventory enumerates currently mounted, checkpoint-participating
// filesystems (spec §4.1).
type MountInventory interface {
	ForEachCheckpointingMount(callback func(types.CheckpointingMount) error) error
}

// RestoreEngine replays a bow log in reverse to undo writes made during a
// checkpoint window (spec §4.4).
type RestoreEngine interface {
	Restore(blockDevicePath string) error
}
