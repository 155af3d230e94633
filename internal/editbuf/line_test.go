package editbuf

import (
	"math/rand"
	"strings"
	"testing"
)

func TestLineInsertDeleteMove(t *testing.T) {
	l := NewLine(28)
	l.InsertString("hello")
	if l.String() != "hello" || l.Cursor() != 5 {
		t.Fatalf("after insert: %q cursor %d", l.String(), l.Cursor())
	}
	l.Move(-2)
	l.Insert('X')
	if l.String() != "helXlo" {
		t.Errorf("insert mid: %q", l.String())
	}
	l.DeleteBack()
	if l.String() != "hello" || l.Cursor() != 3 {
		t.Errorf("delete mid: %q cursor %d", l.String(), l.Cursor())
	}
	l.Move(-100)
	if l.Cursor() != 0 {
		t.Errorf("move clamp low: %d", l.Cursor())
	}
	if l.DeleteBack() {
		t.Error("DeleteBack at 0 should report false")
	}
	l.Move(100)
	if l.Cursor() != l.Len() {
		t.Errorf("move clamp high: %d", l.Cursor())
	}
}

func TestLineSetContentPlacesCursorAtEnd(t *testing.T) {
	l := NewLine(28)
	l.SetContent("recalled command")
	if l.Cursor() != len("recalled command") {
		t.Errorf("cursor %d", l.Cursor())
	}
	l.Clear()
	if l.Len() != 0 || l.Cursor() != 0 {
		t.Errorf("clear left %q cursor %d", l.String(), l.Cursor())
	}
}

func TestLineWindowShort(t *testing.T) {
	l := NewLine(28)
	l.InsertString("ls /sd")
	if got := l.Window(); got != "ls /sd_" {
		t.Errorf("Window() = %q", got)
	}
	l.Move(-6)
	if got := l.Window(); got != "_ls /sd" {
		t.Errorf("Window() at 0 = %q", got)
	}
}

func TestLineWindowScrolled(t *testing.T) {
	l := NewLine(28)
	l.InsertString(strings.Repeat("abcdefghij", 5)) // 50 chars, cursor at end
	got := l.Window()
	if len([]rune(got)) != 28 {
		t.Fatalf("window width %d: %q", len(got), got)
	}
	if got[0] != '.' {
		t.Errorf("scrolled window missing truncation marker: %q", got)
	}
	if !strings.HasSuffix(got, string(CursorGlyph)) {
		t.Errorf("cursor not at window end: %q", got)
	}
	// Cursor in the middle keeps it centered.
	l.Move(-25)
	got = l.Window()
	idx := strings.IndexRune(got, CursorGlyph)
	if idx < 10 || idx > 18 {
		t.Errorf("cursor not near center: index %d in %q", idx, got)
	}
}

func TestLineWindowAlwaysContainsCursor(t *testing.T) {
	l := NewLine(28)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			l.Insert(rune('a' + rng.Intn(26)))
		case 1:
			l.DeleteBack()
		case 2:
			l.Move(1)
		case 3:
			l.Move(-1)
		}
		if l.Cursor() < 0 || l.Cursor() > l.Len() {
			t.Fatalf("step %d: cursor %d out of [0,%d]", i, l.Cursor(), l.Len())
		}
		w := l.Window()
		if !strings.ContainsRune(w, CursorGlyph) {
			t.Fatalf("step %d: window %q lost cursor", i, w)
		}
		if n := len([]rune(w)); n > 28 {
			t.Fatalf("step %d: window width %d", i, n)
		}
	}
}

func TestMaskedLine(t *testing.T) {
	l := NewMaskedLine(28)
	l.InsertString("hunter2")
	if got := l.Window(); got != "*******_" {
		t.Errorf("masked window = %q", got)
	}
	if l.String() != "hunter2" {
		t.Errorf("masked content = %q, want cleartext", l.String())
	}
	l.Move(-3)
	got := l.Window()
	if strings.Contains(got, "h") || strings.Contains(got, "2") {
		t.Errorf("masked window leaked content: %q", got)
	}
}
