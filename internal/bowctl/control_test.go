package bowctl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

func TestSetState_WritesControlFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "block/sda1/bow"), 0755); err != nil {
		t.Fatal(err)
	}
	c := &SysfsControl{SysfsRoot: root}

	if err := c.SetState("/dev/block/sda1", interfaces.BowStatePrepared); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "block/sda1/bow/state"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1" {
		t.Errorf("expected state file contents %q, got %q", "1", got)
	}
}

func TestSetState_RejectsBadPrefix(t *testing.T) {
	c := &SysfsControl{SysfsRoot: t.TempDir()}
	err := c.SetState("block/sda1", interfaces.BowStateIdle)
	if err == nil {
		t.Fatal("expected error")
	}
	var coreErr *types.CoreError
	if !errors.As(err, &coreErr) || coreErr.Kind != types.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestSetState_SurfacesWriteFailure(t *testing.T) {
	// SysfsRoot points at a path whose parent directories don't exist, so
	// the write fails.
	c := &SysfsControl{SysfsRoot: filepath.Join(t.TempDir(), "missing")}
	err := c.SetState("/dev/block/sda1", interfaces.BowStateCommitted)
	if err == nil {
		t.Fatal("expected error")
	}
	var coreErr *types.CoreError
	if !errors.As(err, &coreErr) || coreErr.Kind != types.IOFailed {
		t.Fatalf("expected IOFailed, got %v", err)
	}
}
