// Package bindersvc specifies the shape of the service-binding façade that
// would expose CheckpointLifecycleManager operations to out-of-process
// callers (an Android binder interface in the original system). The wire
// format itself is a non-goal; this package only pins down the boundary so
// a future transport (binder, gRPC, whatever) has a concrete Go interface
// to implement against.
package bindersvc

import "github.com/deploymenttheory/go-vold-bow/internal/interfaces"

// CheckpointService is the request/response-shaped surface a transport
// layer would adapt interfaces.CheckpointLifecycleManager to. It mirrors
// the lifecycle manager one method at a time rather than exposing it
// directly, so a transport can evolve its wire types independently of the
// core's Go signatures.
type CheckpointService interface {
	Supports() (bool, error)
	StartCheckpoint(retry int) error
	NeedsCheckpoint() (bool, error)
	NeedsRollback() (bool, error)
	MarkBootAttempt() error
	Prepare() error
	Commit() error
	Abort() error
}

// LocalCheckpointService adapts an interfaces.CheckpointLifecycleManager to
// CheckpointService in-process, with no transport involved. It exists so a
// future binder/gRPC server has something concrete to wrap.
type LocalCheckpointService struct {
	Manager interfaces.CheckpointLifecycleManager
}

func (s LocalCheckpointService) Supports() (bool, error) {
	return s.Manager.Supports(), nil
}

func (s LocalCheckpointService) StartCheckpoint(retry int) error {
	return s.Manager.Start(retry)
}

func (s LocalCheckpointService) NeedsCheckpoint() (bool, error) {
	return s.Manager.NeedsCheckpoint()
}

func (s LocalCheckpointService) NeedsRollback() (bool, error) {
	return s.Manager.NeedsRollback()
}

func (s LocalCheckpointService) MarkBootAttempt() error {
	return s.Manager.MarkBootAttempt()
}

func (s LocalCheckpointService) Prepare() error {
	return s.Manager.Prepare()
}

func (s LocalCheckpointService) Commit() error {
	return s.Manager.Commit()
}

func (s LocalCheckpointService) Abort() error {
	return s.Manager.Abort()
}
