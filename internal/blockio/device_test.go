package blockio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

func TestFileDevice_ReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := writeZeroFile(path, 4*types.SectorSize); err != nil {
		t.Fatal(err)
	}

	dev, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dev.Close()

	payload := bytes.Repeat([]byte{0xAB}, types.SectorSize)
	if err := dev.WriteAt(payload, 2); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if err := dev.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	got := make([]byte, types.SectorSize)
	if err := dev.ReadAt(got, 2); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read back mismatch")
	}
}

func TestFileDevice_RejectsUnalignedBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := writeZeroFile(path, types.SectorSize); err != nil {
		t.Fatal(err)
	}
	dev, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dev.Close()

	err = dev.ReadAt(make([]byte, 10), 0)
	var coreErr *types.CoreError
	if !errors.As(err, &coreErr) || coreErr.Kind != types.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func writeZeroFile(path string, size int) error {
	return os.WriteFile(path, make([]byte, size), 0644)
}
