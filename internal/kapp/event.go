package kapp

// EventKind tags a KeyEvent as a press or a release.
type EventKind int

const (
	Press EventKind = iota
	Release
)

func (k EventKind) String() string {
	if k == Release {
		return "Release"
	}
	return "Press"
}

// KeyEvent is a single key transition: a press or a release of a Key.
type KeyEvent struct {
	Kind EventKind
	Key  Key
}

// PressOf builds a Press event for k.
func PressOf(k Key) KeyEvent { return KeyEvent{Kind: Press, Key: k} }

// ReleaseOf builds a Release event for k.
func ReleaseOf(k Key) KeyEvent { return KeyEvent{Kind: Release, Key: k} }
