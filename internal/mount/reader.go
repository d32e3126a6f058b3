package mount

import (
	"fmt"
	"os"
)

// FileMountTableReader reads the live mount table from a file, typically
// "/proc/mounts" on a Linux host. It implements interfaces.MountTableReader.
type FileMountTableReader struct {
	Path string
}

// NewFileMountTableReader returns a reader for the kernel mount table at the
// conventional Linux path.
func NewFileMountTableReader() FileMountTableReader {
	return FileMountTableReader{Path: "/proc/mounts"}
}

func (r FileMountTableReader) ReadMountTable() ([]byte, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}
	return data, nil
}
