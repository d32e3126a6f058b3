// File: internal/interfaces/bowcontrol.go
package interfaces

// BowState is one of the three states the kernel bow block remapper
// observes via its sysfs control file (spec §3: BowLogEntry table, §6).
type BowState string

const (
	BowStateIdle      BowState = "0"
	BowStatePrepared  BowState = "1"
	BowStateCommitted BowState = "2"
)

// BowControl writes state transitions to a per-device control sink that the
// kernel block remapper observes (spec §4.2). CheckpointLifecycleManager
// depends on this interface rather than a concrete sysfs writer so it is
// testable without a real block device.
type BowControl interface {
	SetState(blockDevicePath string, state BowState) error
}
