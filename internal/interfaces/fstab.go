// File: internal/interfaces/fstab.go
package interfaces

import "github.com/deploymenttheory/go-vold-bow/internal/types"

// FstabLoader provides the process-wide, read-only list of static mount
// descriptors (spec §6). An external collaborator in production; tests
// inject a fixed-list fake.
type FstabLoader interface {
	Entries() ([]types.FstabEntry, error)
}

// StaticFstabLoader is the simplest FstabLoader: a fixed, in-memory list.
// Production wiring in pkg/app (BuildService) wraps the already-parsed fstab
// entries it is handed in one of these.
type StaticFstabLoader struct {
	List []types.FstabEntry
}

func (l StaticFstabLoader) Entries() ([]types.FstabEntry, error) {
	return l.List, nil
}
