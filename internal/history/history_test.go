package history

import "testing"

func TestEmptyRing(t *testing.T) {
	r := New()
	if _, ok := r.Prev(); ok {
		t.Error("Prev on empty ring reported ok")
	}
	if _, ok := r.Next(); ok {
		t.Error("Next on empty ring reported ok")
	}
}

func TestAppendIgnoresEmpty(t *testing.T) {
	r := New()
	r.Append("")
	if r.Len() != 0 {
		t.Errorf("len = %d", r.Len())
	}
}

func TestRecallRoundTrip(t *testing.T) {
	r := New()
	r.Append("a")
	r.Append("b")
	r.Append("c")

	// Up three times walks c, b, a and floors at a.
	for i, want := range []string{"c", "b", "a"} {
		got, ok := r.Prev()
		if !ok || got != want {
			t.Fatalf("Prev #%d = %q (%v), want %q", i+1, got, ok, want)
		}
	}
	if _, ok := r.Prev(); ok {
		t.Fatal("Prev at floor should report ok=false, buffer keeps showing the floor entry")
	}

	// Down from the floor walks b, c, then past the end clears.
	if got, _ := r.Next(); got != "b" {
		t.Fatalf("Next = %q, want b", got)
	}
	if got, _ := r.Next(); got != "c" {
		t.Fatalf("Next = %q, want c", got)
	}
	if _, ok := r.Next(); ok {
		t.Fatal("Next past end should deactivate recall")
	}

	// One Up after deactivation reveals the newest entry again.
	if got, ok := r.Prev(); !ok || got != "c" {
		t.Fatalf("Prev after reset = %q (%v), want c", got, ok)
	}
}

func TestRecallDoesNotMutateStore(t *testing.T) {
	r := New()
	r.Append("x")
	r.Append("y")
	r.Prev()
	r.Prev()
	r.Next()
	if got := r.Entries(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("entries mutated: %v", got)
	}
}

func TestAppendResetsCursor(t *testing.T) {
	r := New()
	r.Append("one")
	r.Prev()
	r.Append("two")
	if got, _ := r.Prev(); got != "two" {
		t.Errorf("Prev after append = %q, want two", got)
	}
}
