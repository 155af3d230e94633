// Package editbuf is the cursor/scroll engine behind every line-input surface
// of the shell: the prompt, the password mask, the nested interpreter line and
// the multi-line file editor. The four call sites share this one
// implementation instead of carrying their own cursor math.
package editbuf

// Window rendering glyphs. The display has no hardware cursor, so the cursor
// is spliced into the text, and a leading "." marks a window that does not
// start at offset 0.
const (
	CursorGlyph = '_'
	TruncMark   = '.'
	MaskGlyph   = '*'
)

// DefaultWidth is the input line's visible column count on the device.
const DefaultWidth = 28

// Line is a single-line edit buffer. The invariant 0 <= cursor <= len(content)
// holds after every operation, and Window always contains the cursor's
// rendered position.
type Line struct {
	content []rune
	cursor  int
	masked  bool
	width   int
}

// NewLine returns an empty buffer rendering through a window of the given
// width. A width of 0 selects DefaultWidth.
func NewLine(width int) *Line {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Line{width: width}
}

// NewMaskedLine returns a buffer that renders every character as MaskGlyph.
// Used for password entry; content is still held in the clear for submit.
func NewMaskedLine(width int) *Line {
	l := NewLine(width)
	l.masked = true
	return l
}

// Insert places r before the cursor and advances it.
func (l *Line) Insert(r rune) {
	l.content = append(l.content[:l.cursor], append([]rune{r}, l.content[l.cursor:]...)...)
	l.cursor++
}

// InsertString inserts each rune of s at the cursor.
func (l *Line) InsertString(s string) {
	for _, r := range s {
		l.Insert(r)
	}
}

// DeleteBack removes the character before the cursor. Reports whether
// anything was removed.
func (l *Line) DeleteBack() bool {
	if l.cursor == 0 {
		return false
	}
	l.content = append(l.content[:l.cursor-1], l.content[l.cursor:]...)
	l.cursor--
	return true
}

// Move shifts the cursor by delta, clamped to [0, len(content)].
func (l *Line) Move(delta int) {
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor > len(l.content) {
		l.cursor = len(l.content)
	}
}

// SetContent replaces the buffer (history recall) and puts the cursor at the
// end of the new text.
func (l *Line) SetContent(s string) {
	l.content = []rune(s)
	l.cursor = len(l.content)
}

// Clear empties the buffer.
func (l *Line) Clear() {
	l.content = l.content[:0]
	l.cursor = 0
}

// String returns the buffer content. For masked buffers this is still the
// cleartext; masking is a rendering property only.
func (l *Line) String() string { return string(l.content) }

// Cursor returns the cursor offset.
func (l *Line) Cursor() int { return l.cursor }

// Len returns the content length in runes.
func (l *Line) Len() int { return len(l.content) }

// Window renders the visible slice of the buffer with the cursor glyph
// spliced in. When the text overflows the window the start is chosen to keep
// the cursor near the center, sliding back so the window never runs past the
// end, and the first cell becomes TruncMark whenever the window does not
// start at offset 0.
func (l *Line) Window() string {
	src := l.content
	if l.masked {
		src = make([]rune, len(l.content))
		for i := range src {
			src[i] = MaskGlyph
		}
	}
	vis := make([]rune, 0, len(src)+1)
	vis = append(vis, src[:l.cursor]...)
	vis = append(vis, CursorGlyph)
	vis = append(vis, src[l.cursor:]...)
	if len(vis) <= l.width {
		return string(vis)
	}
	start := l.cursor - l.width/2
	if start < 0 {
		start = 0
	}
	if start+l.width > len(vis) {
		start = len(vis) - l.width
	}
	disp := make([]rune, l.width)
	copy(disp, vis[start:start+l.width])
	if start > 0 {
		disp[0] = TruncMark
	}
	return string(disp)
}
