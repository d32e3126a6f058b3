package types

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckpointState is the parsed form of the checkpoint metadata file.
type CheckpointState int

const (
	// Idle means no checkpoint is in progress (metadata file absent).
	Idle CheckpointState = iota
	// Armed means a checkpoint is in progress with a retry budget.
	Armed
	// RollbackArmed means a checkpoint is in progress and will roll back on
	// next boot if the slot suffix matches.
	RollbackArmed
)

// CheckpointMetadata is the parsed contents of the persisted metadata file
// (spec: "/metadata/vold/checkpoint"). Presence of the backing file implies
// a checkpoint is in progress; absence implies none.
type CheckpointMetadata struct {
	State      CheckpointState
	Retry      int    // valid when State == Armed; remaining retry budget, >= 0
	SlotSuffix string // valid when State == RollbackArmed
}

// IdleMetadata is the zero-value metadata representing no pending checkpoint.
func IdleMetadata() CheckpointMetadata {
	return CheckpointMetadata{State: Idle}
}

// Serialize renders the metadata to the ASCII form written to the metadata
// file: "<n>" for Armed, "-1 <suffix>" for RollbackArmed.
func (m CheckpointMetadata) Serialize() (string, error) {
	switch m.State {
	case Armed:
		if m.Retry < 0 {
			return "", fmt.Errorf("armed retry must be >= 0, got %d", m.Retry)
		}
		return strconv.Itoa(m.Retry), nil
	case RollbackArmed:
		return fmt.Sprintf("-1 %s", m.SlotSuffix), nil
	default:
		return "", fmt.Errorf("cannot serialize state %d", m.State)
	}
}

// ParseCheckpointMetadata parses the ASCII contents of the metadata file.
// contents is one of "<n>" (n >= 0) or "-1 <suffix>".
func ParseCheckpointMetadata(contents string) (CheckpointMetadata, error) {
	contents = strings.TrimSpace(contents)
	if contents == "" {
		return CheckpointMetadata{}, fmt.Errorf("empty metadata contents")
	}

	fields := strings.SplitN(contents, " ", 2)
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return CheckpointMetadata{}, fmt.Errorf("unparseable counter %q: %w", fields[0], err)
	}

	if n == -1 {
		if len(fields) < 2 || fields[1] == "" {
			return CheckpointMetadata{}, fmt.Errorf("rollback-armed metadata missing slot suffix")
		}
		return CheckpointMetadata{State: RollbackArmed, SlotSuffix: fields[1]}, nil
	}
	if n < 0 {
		return CheckpointMetadata{}, fmt.Errorf("retry counter must be >= -1, got %d", n)
	}
	return CheckpointMetadata{State: Armed, Retry: n}, nil
}
