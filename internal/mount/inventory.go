// Package mount implements Mount Inventory: it enumerates currently
// mounted filesystems and joins them against the static fstab descriptor to
// identify which are checkpoint-participating, and in which mode.
package mount

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

// Inventory implements interfaces.MountInventory.
type Inventory struct {
	fstab      interfaces.FstabLoader
	mountTable interfaces.MountTableReader
}

// NewInventory creates a Mount Inventory joining the given fstab loader
// against the given live mount table reader.
func NewInventory(fstab interfaces.FstabLoader, mountTable interfaces.MountTableReader) *Inventory {
	return &Inventory{fstab: fstab, mountTable: mountTable}
}

// ForEachCheckpointingMount parses the live mount table and, for each row
// whose mount point matches an fstab entry carrying a checkpoint flag,
// invokes callback with the joined record. Unmatched mount-table rows are
// ignored silently (spec §4.1).
func (inv *Inventory) ForEachCheckpointingMount(callback func(types.CheckpointingMount) error) error {
	entries, err := inv.fstab.Entries()
	if err != nil {
		return types.NewError(types.IOFailed, "mount.ForEachCheckpointingMount", fmt.Errorf("load fstab: %w", err))
	}

	byMountPoint := make(map[string]types.FstabEntry, len(entries))
	for _, e := range entries {
		if e.Checkpointing() {
			byMountPoint[e.MountPoint] = e
		}
	}
	if len(byMountPoint) == 0 {
		return nil
	}

	raw, err := inv.mountTable.ReadMountTable()
	if err != nil {
		return types.NewError(types.IOFailed, "mount.ForEachCheckpointingMount", fmt.Errorf("read mount table: %w", err))
	}

	rows, err := parseMountTable(raw)
	if err != nil {
		return types.NewError(types.IOFailed, "mount.ForEachCheckpointingMount", err)
	}

	for _, row := range rows {
		fstabEntry, ok := byMountPoint[row.MountPoint]
		if !ok {
			continue
		}
		cm := types.CheckpointingMount{
			Device:     row.Device,
			MountPoint: row.MountPoint,
			FsType:     row.FsType,
			Mode:       fstabEntry.Mode(),
			MountFlags: fstabEntry.MountFlags,
		}
		if err := callback(cm); err != nil {
			return err
		}
	}
	return nil
}

// parseMountTable parses a line-oriented mount table: "device mount_point
// fstype options[,options] dump pass". Malformed lines are skipped.
func parseMountTable(raw []byte) ([]types.MountTableEntry, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	var rows []types.MountTableEntry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		row := types.MountTableEntry{
			Device:     fields[0],
			MountPoint: fields[1],
			FsType:     fields[2],
			Options:    strings.Split(fields[3], ","),
		}
		if len(fields) >= 5 {
			row.DumpFreq, _ = strconv.Atoi(fields[4])
		}
		if len(fields) >= 6 {
			row.PassNo, _ = strconv.Atoi(fields[5])
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mount table: %w", err)
	}
	return rows, nil
}
