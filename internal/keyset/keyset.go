// Package keyset tracks the set of currently-pressed physical keys and the
// modifier predicates derived from it.
package keyset

import "github.com/keykapp/keykapp/internal/kapp"

// Set is the keyboard-state tracker. The zero value is an empty set, ready
// to use.
type Set struct {
	pressed map[kapp.Key]struct{}
}

// New returns an empty keyboard-state tracker.
func New() *Set {
	return &Set{pressed: make(map[kapp.Key]struct{})}
}

// Apply updates the set for one key event: Press adds the key, Release
// removes it. Releasing a key that is not currently pressed is tolerated
// silently.
func (s *Set) Apply(e kapp.KeyEvent) {
	if e.Kind == kapp.Press {
		if s.pressed == nil {
			s.pressed = make(map[kapp.Key]struct{})
		}
		s.pressed[e.Key] = struct{}{}
		return
	}
	delete(s.pressed, e.Key)
}

// Pressed reports whether k is currently held.
func (s *Set) Pressed(k kapp.Key) bool {
	_, ok := s.pressed[k]
	return ok
}

// Len returns the number of keys currently held.
func (s *Set) Len() int {
	return len(s.pressed)
}

// Empty reports whether no keys are currently held.
func (s *Set) Empty() bool {
	return len(s.pressed) == 0
}

// Meta reports whether either Meta key is held.
func (s *Set) Meta() bool {
	return s.Pressed(kapp.KeyMetaLeft) || s.Pressed(kapp.KeyMetaRight)
}

// Control reports whether either Control key is held.
func (s *Set) Control() bool {
	return s.Pressed(kapp.KeyControlLeft) || s.Pressed(kapp.KeyControlRight)
}

// Shift reports whether either Shift key is held.
func (s *Set) Shift() bool {
	return s.Pressed(kapp.KeyShiftLeft) || s.Pressed(kapp.KeyShiftRight)
}

// EnterCommandMode reports whether Meta and Control are held together with
// KeyK — the chord that requests a switch into Command mode.
func (s *Set) EnterCommandMode() bool {
	return s.Meta() && s.Control() && s.Pressed(kapp.KeyK)
}

// EnterInsertMode reports whether Meta and Control are held together with
// KeyJ — the chord that requests a switch back into Insert mode.
func (s *Set) EnterInsertMode() bool {
	return s.Meta() && s.Control() && s.Pressed(kapp.KeyJ)
}

// SoleKey returns the single pressed key and true when exactly one key is
// held, or the zero Key and false otherwise.
func (s *Set) SoleKey() (kapp.Key, bool) {
	if len(s.pressed) != 1 {
		return kapp.KeyUnknown, false
	}
	for k := range s.pressed {
		return k, true
	}
	return kapp.KeyUnknown, false
}

// Snapshot returns the currently-pressed keys in an unspecified order, for
// the renderer's pressed-keys debug line.
func (s *Set) Snapshot() []kapp.Key {
	out := make([]kapp.Key, 0, len(s.pressed))
	for k := range s.pressed {
		out = append(out, k)
	}
	return out
}
