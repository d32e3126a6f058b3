// File: internal/interfaces/mounttable.go
package interfaces

// MountTableReader reads the kernel-provided live mount table as raw lines
// of "device mount_point fstype options dump pass" (spec §4.1). An external
// collaborator in production (reads /proc/mounts); tests inject a fixed
// string reader.
type MountTableReader interface {
	ReadMountTable() ([]byte, error)
}
