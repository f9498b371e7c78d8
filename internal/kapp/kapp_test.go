package kapp

import "testing"

// Expectations:
//   - AtomCount of a bare atom is 1
//   - AtomCount of a list sums its children's counts, recursively
func TestAtomCount(t *testing.T) {
	a := Atom(PressOf(KeyA))
	if got := a.AtomCount(); got != 1 {
		t.Fatalf("atom count = %d, want 1", got)
	}

	l := List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyA)))
	if got := l.AtomCount(); got != 2 {
		t.Fatalf("list atom count = %d, want 2", got)
	}

	nested := List(l, Atom(PressOf(KeyB)))
	if got := nested.AtomCount(); got != 3 {
		t.Fatalf("nested atom count = %d, want 3", got)
	}
}

// Expectations:
//   - FromEvent wraps a press or release event as an atom kapp equal to
//     the equivalent direct Atom call
func TestFromEvent(t *testing.T) {
	if got := FromEvent(PressOf(KeyA)); !got.Equal(Atom(PressOf(KeyA))) {
		t.Fatalf("FromEvent(Press(A)) = %v, want Atom(Press(A))", got)
	}
	if got := FromEvent(ReleaseOf(KeyB)); !got.Equal(Atom(ReleaseOf(KeyB))) {
		t.Fatalf("FromEvent(Release(B)) = %v, want Atom(Release(B))", got)
	}
}

// Expectations:
//   - Atom(Press(k)) renders as "<Name"
//   - Atom(Release(k)) renders as "Name>"
//   - A List renders as "(" + each child's rendering + " " + ")"
func TestRender(t *testing.T) {
	cases := []struct {
		k    Kapp
		want string
	}{
		{Atom(PressOf(KeyA)), "<A"},
		{Atom(ReleaseOf(KeyA)), "A>"},
		{List(), "()"},
		{List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyA))), "(<A A> )"},
	}
	for _, c := range cases {
		if got := c.k.Render(); got != c.want {
			t.Errorf("Render() = %q, want %q", got, c.want)
		}
	}
}

// Expectations:
//   - Two kapps with the same shape and content are Equal
//   - Differing event kind, key, or list length/content makes them unequal
func TestEqual(t *testing.T) {
	a := List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyA)))
	b := List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyA)))
	if !a.Equal(b) {
		t.Fatalf("expected equal kapps to compare equal")
	}

	c := List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyB)))
	if a.Equal(c) {
		t.Fatalf("expected differing kapps to compare unequal")
	}

	d := List(Atom(PressOf(KeyA)))
	if a.Equal(d) {
		t.Fatalf("expected differing-length lists to compare unequal")
	}
}

// Expectations:
//   - CanonicalKey is identical for structurally equal kapps
//   - CanonicalKey differs for structurally different kapps
func TestCanonicalKey(t *testing.T) {
	a := List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyA)))
	b := List(Atom(PressOf(KeyA)), Atom(ReleaseOf(KeyA)))
	if a.CanonicalKey() != b.CanonicalKey() {
		t.Fatalf("canonical keys differ for equal kapps")
	}

	c := List(Atom(PressOf(KeyB)))
	if a.CanonicalKey() == c.CanonicalKey() {
		t.Fatalf("canonical keys match for differing kapps")
	}
}
