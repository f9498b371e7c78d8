// Package kapp implements the symbolic-expression value at the heart of
// keykapp: the Kapp tree that every physical key event is translated into,
// evaluated, and logged for learning.
package kapp

// Key identifies one physical key. The set is fixed and finite: letters,
// digits, a handful of named keys, and the left/right variants of the three
// modifiers the mode reducer watches for.
type Key int

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySemicolon
	KeySpace
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyComma
	KeyPeriod
	KeySlash

	KeyMetaLeft
	KeyMetaRight
	KeyControlLeft
	KeyControlRight
	KeyShiftLeft
	KeyShiftRight
)

// names holds the printable identifier for each Key, already free of
// whitespace and commas as kapp.Render requires.
var names = map[Key]string{
	KeyUnknown: "Unknown",

	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",

	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",

	KeySemicolon: "Semicolon",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyComma:     "Comma",
	KeyPeriod:    "Period",
	KeySlash:     "Slash",

	KeyMetaLeft:     "MetaLeft",
	KeyMetaRight:    "MetaRight",
	KeyControlLeft:  "ControlLeft",
	KeyControlRight: "ControlRight",
	KeyShiftLeft:    "ShiftLeft",
	KeyShiftRight:   "ShiftRight",
}

// Name returns the key's printable identifier, used verbatim by kapp.Render.
func (k Key) Name() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "Unknown"
}

func (k Key) String() string { return k.Name() }

// Keyswitches is the fixed ordered tuple of home-row keys that carry dynamic
// bindings in Command mode: J, F, K, D, L, S, ;, A.
var Keyswitches = [8]Key{KeyJ, KeyF, KeyK, KeyD, KeyL, KeyS, KeySemicolon, KeyA}

// IsKeyswitch reports whether k is one of the eight bound home-row keys.
func IsKeyswitch(k Key) bool {
	for _, sw := range Keyswitches {
		if sw == k {
			return true
		}
	}
	return false
}
