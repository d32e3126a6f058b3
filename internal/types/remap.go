package types

// RemapTable is an ordered sequence of accepted BowLogEntry records built
// during restore. A read of sector s resolves by scanning the table newest
// to oldest; the first entry that covers s redirects the read to its dest
// range. RemapTable is created empty per restore invocation, appended to as
// entries validate, and discarded on completion.
type RemapTable struct {
	entries []BowLogEntry
}

// Append adds e to the table as the newest entry.
func (t *RemapTable) Append(e BowLogEntry) {
	t.entries = append(t.entries, e)
}

// Resolve returns the physical sector that a read of logical sector s should
// use, consulting the table newest-first. ok is false if no entry covers s,
// meaning s should be read directly from the device.
func (t *RemapTable) Resolve(s uint64) (physical uint64, ok bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Covers(s) {
			return t.entries[i].Redirect(s), true
		}
	}
	return 0, false
}

// Len returns the number of entries currently in the table.
func (t *RemapTable) Len() int {
	return len(t.entries)
}
