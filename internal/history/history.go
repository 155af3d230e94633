// Package history is the shell's command recall ring: an append-only list of
// accepted lines with a cursor that walks backward and forward. Recall never
// mutates the stored lines; the caller echoes them into a transient edit
// buffer.
package history

// Ring holds submitted command lines. The cursor rests at "one past the last
// entry" when no recall is active.
type Ring struct {
	entries []string
	cursor  int
}

// New returns an empty ring.
func New() *Ring {
	return &Ring{}
}

// Append records a submitted line and deactivates recall. Empty lines are
// ignored.
func (r *Ring) Append(line string) {
	if line == "" {
		return
	}
	r.entries = append(r.entries, line)
	r.cursor = len(r.entries)
}

// Prev moves the cursor back one entry, flooring at the first, and returns
// the recalled line. ok is false when there is nothing to recall.
func (r *Ring) Prev() (line string, ok bool) {
	if r.cursor == 0 {
		return "", false
	}
	r.cursor--
	return r.entries[r.cursor], true
}

// Next moves the cursor forward one entry. Moving past the last entry
// deactivates recall and returns ok=false, which the caller must treat as
// "clear the edit buffer".
func (r *Ring) Next() (line string, ok bool) {
	if r.cursor < len(r.entries)-1 {
		r.cursor++
		return r.entries[r.cursor], true
	}
	r.cursor = len(r.entries)
	return "", false
}

// Len returns the number of stored lines.
func (r *Ring) Len() int { return len(r.entries) }

// Entries returns the stored lines, oldest first. The returned slice is the
// ring's backing store; callers must not modify it.
func (r *Ring) Entries() []string { return r.entries }
