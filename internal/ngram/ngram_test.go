package ngram

import (
	"testing"

	"github.com/keykapp/keykapp/internal/kapp"
)

func pressA() kapp.Kapp    { return kapp.Atom(kapp.PressOf(kapp.KeyA)) }
func releaseA() kapp.Kapp  { return kapp.Atom(kapp.ReleaseOf(kapp.KeyA)) }

// Expectations:
//   - After logging Press(A), Release(A), the table contains
//     List[Press(A)] with score 1, List[Release(A)] with score 1, and
//     List[Press(A), Release(A)] with score 2.
func TestUpdateFromLogTailScoresEverySuffix(t *testing.T) {
	table := New()
	log := []kapp.Kapp{pressA()}
	table.UpdateFromLogTail(log)
	log = append(log, releaseA())
	table.UpdateFromLogTail(log)

	want := []struct {
		k     kapp.Kapp
		score uint64
	}{
		{kapp.List(pressA()), 1},
		{kapp.List(releaseA()), 1},
		{kapp.List(pressA(), releaseA()), 2},
	}
	for _, w := range want {
		if got := table.ScoreOf(w.k); got != w.score {
			t.Errorf("ScoreOf(%s) = %d, want %d", w.k.Render(), got, w.score)
		}
	}
}

// Expectations:
//   - After 40 distinct Press events, the longest tracked n-gram has length
//     exactly MaxLength; no longer suffix is ever inserted.
func TestBoundedLength(t *testing.T) {
	table := New()
	var log []kapp.Kapp
	for i := 0; i < 40; i++ {
		log = append(log, kapp.Atom(kapp.PressOf(kapp.Key(int(kapp.KeyA)+i))))
		table.UpdateFromLogTail(log)
	}

	longest := kapp.List(append([]kapp.Kapp(nil), log[len(log)-MaxLength:]...)...)
	if table.ScoreOf(longest) == 0 {
		t.Fatalf("expected length-%d suffix to be tracked", MaxLength)
	}

	tooLong := kapp.List(append([]kapp.Kapp(nil), log[len(log)-MaxLength-1:]...)...)
	if table.ScoreOf(tooLong) != 0 {
		t.Fatalf("length-%d suffix must not be tracked", MaxLength+1)
	}
}

// Expectations:
//   - Top(k) returns entries in descending score order
//   - A later Update to a previously lower-scored entry that ties the
//     current top re-orders it ahead (most-recent-wins tie-break)
func TestTopOrderingAndTieBreak(t *testing.T) {
	table := New()
	x := kapp.List(kapp.Atom(kapp.PressOf(kapp.KeyX)))
	y := kapp.List(kapp.Atom(kapp.PressOf(kapp.KeyY)))

	table.Update(x, 5)
	table.Update(y, 3)
	top := table.Top(2)
	if len(top) != 2 || !top[0].Equal(x) || !top[1].Equal(y) {
		t.Fatalf("Top(2) = %v, want [x, y]", renderAll(top))
	}

	// y ties x's score via a later update; y must now come first.
	table.Update(y, 5)
	top = table.Top(2)
	if len(top) != 2 || !top[0].Equal(y) || !top[1].Equal(x) {
		t.Fatalf("Top(2) after tie = %v, want [y, x]", renderAll(top))
	}
}

// Expectations:
//   - Top(k) never returns more than the table's current entry count
func TestTopShorterThanRequested(t *testing.T) {
	table := New()
	table.Update(kapp.List(kapp.Atom(kapp.PressOf(kapp.KeyA))), 1)
	if got := table.Top(8); len(got) != 1 {
		t.Fatalf("Top(8) returned %d entries, want 1", len(got))
	}
}

// Expectations:
//   - For every length ℓ in [1, min(len(log), MaxLength)], the suffix of
//     length ℓ is present in the table with score >= its atom count.
func TestCoverageInvariant(t *testing.T) {
	table := New()
	var log []kapp.Kapp
	for i := 0; i < 10; i++ {
		log = append(log, kapp.Atom(kapp.PressOf(kapp.KeyA)))
		table.UpdateFromLogTail(log)
	}
	n := len(log)
	for l := 1; l <= n; l++ {
		suffix := kapp.List(append([]kapp.Kapp(nil), log[n-l:]...)...)
		if table.ScoreOf(suffix) < uint64(suffix.AtomCount()) {
			t.Errorf("suffix of length %d has score below its atom count", l)
		}
	}
}

func renderAll(ks []kapp.Kapp) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.Render()
	}
	return out
}
