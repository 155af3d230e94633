package editbuf

import (
	"fmt"
	"strings"
)

// Editor view geometry, fixed by the character-cell display. The cursor row
// loses one column to the spliced cursor glyph, so its visible slice is one
// narrower than plain rows.
const (
	TextRows        = 9
	TextScrollWidth = 35
	TextCursorWidth = 37
	TextPlainWidth  = 38
	TextCursorBar   = '|'
)

// Text is the multi-line edit buffer behind the file editor. It shares the
// cursor discipline of Line in two dimensions: 0 <= cy < len(lines) and
// 0 <= cx <= len(lines[cy]) after every operation, and the view always
// contains the cursor cell. When readOnly is set, mutations are no-ops and
// only cursor movement is honored.
type Text struct {
	lines    [][]rune
	cx, cy   int
	scrollX  int
	scrollY  int
	readOnly bool
}

// NewText builds a buffer from file content. Empty content yields one empty
// line so the cursor always has a row to sit on.
func NewText(content string, readOnly bool) *Text {
	t := &Text{readOnly: readOnly}
	if content == "" {
		t.lines = [][]rune{{}}
		return t
	}
	for _, l := range strings.Split(content, "\n") {
		t.lines = append(t.lines, []rune(l))
	}
	return t
}

// ReadOnly reports whether the buffer rejects mutations.
func (t *Text) ReadOnly() bool { return t.readOnly }

// Content joins the lines back into file content.
func (t *Text) Content() string {
	parts := make([]string, len(t.lines))
	for i, l := range t.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Cursor returns the (row, column) pair.
func (t *Text) Cursor() (row, col int) { return t.cy, t.cx }

// Lines returns the line count.
func (t *Text) Lines() int { return len(t.lines) }

// Insert places r before the cursor on the current line.
func (t *Text) Insert(r rune) {
	if t.readOnly {
		return
	}
	line := t.lines[t.cy]
	line = append(line[:t.cx], append([]rune{r}, line[t.cx:]...)...)
	t.lines[t.cy] = line
	t.cx++
	t.adjustScroll()
}

// InsertTab inserts the device's two-space tab stop.
func (t *Text) InsertTab() {
	t.Insert(' ')
	t.Insert(' ')
}

// DeleteBack removes the character before the cursor, or joins the current
// line onto the previous one when the cursor is at column 0.
func (t *Text) DeleteBack() {
	if t.readOnly {
		return
	}
	if t.cx > 0 {
		line := t.lines[t.cy]
		t.lines[t.cy] = append(line[:t.cx-1], line[t.cx:]...)
		t.cx--
	} else if t.cy > 0 {
		prev := t.lines[t.cy-1]
		t.cx = len(prev)
		t.lines[t.cy-1] = append(prev, t.lines[t.cy]...)
		t.lines = append(t.lines[:t.cy], t.lines[t.cy+1:]...)
		t.cy--
	}
	t.adjustScroll()
}

// SplitLine breaks the current line at the cursor (Enter). The remainder
// becomes a new line and the cursor moves to its start.
func (t *Text) SplitLine() {
	if t.readOnly {
		return
	}
	line := t.lines[t.cy]
	rest := append([]rune{}, line[t.cx:]...)
	t.lines[t.cy] = line[:t.cx]
	t.lines = append(t.lines[:t.cy+1], append([][]rune{rest}, t.lines[t.cy+1:]...)...)
	t.cy++
	t.cx = 0
	t.scrollX = 0
	t.adjustScroll()
}

// CursorUp moves up one row, clamping the column to the new line's length.
func (t *Text) CursorUp() {
	if t.cy > 0 {
		t.cy--
		t.clampCol()
	}
	t.adjustScroll()
}

// CursorDown moves down one row, clamping the column.
func (t *Text) CursorDown() {
	if t.cy < len(t.lines)-1 {
		t.cy++
		t.clampCol()
	}
	t.adjustScroll()
}

// CursorLeft moves back one column.
func (t *Text) CursorLeft() {
	if t.cx > 0 {
		t.cx--
	}
	t.adjustScroll()
}

// CursorRight moves forward one column, at most to one past the line end.
func (t *Text) CursorRight() {
	if t.cx < len(t.lines[t.cy]) {
		t.cx++
	}
	t.adjustScroll()
}

func (t *Text) clampCol() {
	if t.cx > len(t.lines[t.cy]) {
		t.cx = len(t.lines[t.cy])
	}
}

func (t *Text) adjustScroll() {
	if t.cx < t.scrollX {
		t.scrollX = t.cx
	}
	if t.cx >= t.scrollX+TextScrollWidth {
		t.scrollX = t.cx - TextScrollWidth
	}
	if t.cy < t.scrollY {
		t.scrollY = t.cy
	}
	if t.cy >= t.scrollY+TextRows {
		t.scrollY = t.cy - TextRows + 1
	}
}

// View renders the visible rows. The cursor row carries a ">" gutter and the
// cursor bar spliced at the column; other rows get a space gutter.
func (t *Text) View() string {
	var b strings.Builder
	end := t.scrollY + TextRows
	if end > len(t.lines) {
		end = len(t.lines)
	}
	for i := t.scrollY; i < end; i++ {
		line := t.lines[i]
		if i == t.cy {
			withBar := make([]rune, 0, len(line)+1)
			withBar = append(withBar, line[:t.cx]...)
			withBar = append(withBar, TextCursorBar)
			withBar = append(withBar, line[t.cx:]...)
			b.WriteByte('>')
			b.WriteString(string(window(withBar, t.scrollX, TextCursorWidth)))
		} else {
			b.WriteByte(' ')
			b.WriteString(string(window(line, t.scrollX, TextPlainWidth)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Status renders the editor status line, reflecting the read-only state.
func (t *Text) Status() string {
	pos := fmt.Sprintf("%d:%d", t.cy+1, t.cx)
	if t.readOnly {
		return "[RO] ESC:Exit | " + pos
	}
	return "CTRL:Save ESC:Exit | " + pos
}

func window(r []rune, from, width int) []rune {
	if from >= len(r) {
		return nil
	}
	to := from + width
	if to > len(r) {
		to = len(r)
	}
	return r[from:to]
}

