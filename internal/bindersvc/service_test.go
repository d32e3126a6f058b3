package bindersvc

import (
	"errors"
	"testing"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

type fakeManager struct {
	supports     bool
	startRetry   int
	startErr     error
	commitCalled bool
}

func (f *fakeManager) Supports() bool { return f.supports }
func (f *fakeManager) Start(retry int) error {
	f.startRetry = retry
	return f.startErr
}
func (f *fakeManager) NeedsCheckpoint() (bool, error) { return true, nil }
func (f *fakeManager) NeedsRollback() (bool, error)   { return false, nil }
func (f *fakeManager) MarkBootAttempt() error         { return nil }
func (f *fakeManager) Prepare() error                 { return nil }
func (f *fakeManager) Commit() error {
	f.commitCalled = true
	return nil
}
func (f *fakeManager) Abort() error { return nil }

var _ interfaces.CheckpointLifecycleManager = (*fakeManager)(nil)

func TestLocalCheckpointService_DelegatesToManager(t *testing.T) {
	mgr := &fakeManager{supports: true}
	svc := LocalCheckpointService{Manager: mgr}

	supports, err := svc.Supports()
	if err != nil || !supports {
		t.Fatalf("Supports() = %v, %v", supports, err)
	}

	if err := svc.StartCheckpoint(3); err != nil {
		t.Fatalf("StartCheckpoint: %v", err)
	}
	if mgr.startRetry != 3 {
		t.Errorf("expected Start(3), got Start(%d)", mgr.startRetry)
	}

	if err := svc.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !mgr.commitCalled {
		t.Error("Commit was not delegated")
	}
}

func TestLocalCheckpointService_SurfacesStartError(t *testing.T) {
	mgr := &fakeManager{startErr: types.NewError(types.InvalidArgument, "Start", errors.New("bad retry"))}
	svc := LocalCheckpointService{Manager: mgr}

	err := svc.StartCheckpoint(-5)
	var coreErr *types.CoreError
	if !errors.As(err, &coreErr) || coreErr.Kind != types.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
