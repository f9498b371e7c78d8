//go:build linux

package host

import "github.com/keykapp/keykapp/internal/kapp"

// Linux evdev keycodes (linux/input-event-codes.h) for every Key this
// package needs to grab or synthesize.
const (
	keyEsc       = 1
	key1         = 2
	key2         = 3
	key3         = 4
	key4         = 5
	key5         = 6
	key6         = 7
	key7         = 8
	key8         = 9
	key9         = 10
	key0         = 11
	keyBackspace = 14
	keyTab       = 15
	keyQ         = 16
	keyW         = 17
	keyE         = 18
	keyR         = 19
	keyT         = 20
	keyY         = 21
	keyU         = 22
	keyI         = 23
	keyO         = 24
	keyP         = 25
	keyEnter     = 28
	keyLeftCtrl  = 29
	keyA         = 30
	keyS         = 31
	keyD         = 32
	keyF         = 33
	keyG         = 34
	keyH         = 35
	keyJ         = 36
	keyK         = 37
	keyL         = 38
	keySemicolon = 39
	keyLeftShift = 42
	keyZ         = 44
	keyX         = 45
	keyC         = 46
	keyV         = 47
	keyB         = 48
	keyN         = 49
	keyM         = 50
	keyComma     = 51
	keyDot       = 52
	keySlash     = 53
	keyRightShift = 54
	keySpace     = 57
	keyRightCtrl  = 97
	keyLeftMeta  = 125
	keyRightMeta = 126
)

// keycodeToKey maps an evdev keycode to the Key it represents.
var keycodeToKey = map[uint16]kapp.Key{
	keyA: kapp.KeyA, keyB: kapp.KeyB, keyC: kapp.KeyC, keyD: kapp.KeyD,
	keyE: kapp.KeyE, keyF: kapp.KeyF, keyG: kapp.KeyG, keyH: kapp.KeyH,
	keyI: kapp.KeyI, keyJ: kapp.KeyJ, keyK: kapp.KeyK, keyL: kapp.KeyL,
	keyM: kapp.KeyM, keyN: kapp.KeyN, keyO: kapp.KeyO, keyP: kapp.KeyP,
	keyQ: kapp.KeyQ, keyR: kapp.KeyR, keyS: kapp.KeyS, keyT: kapp.KeyT,
	keyU: kapp.KeyU, keyV: kapp.KeyV, keyW: kapp.KeyW, keyX: kapp.KeyX,
	keyY: kapp.KeyY, keyZ: kapp.KeyZ,

	key0: kapp.Key0, key1: kapp.Key1, key2: kapp.Key2, key3: kapp.Key3,
	key4: kapp.Key4, key5: kapp.Key5, key6: kapp.Key6, key7: kapp.Key7,
	key8: kapp.Key8, key9: kapp.Key9,

	keySemicolon: kapp.KeySemicolon,
	keySpace:     kapp.KeySpace,
	keyEnter:     kapp.KeyEnter,
	keyTab:       kapp.KeyTab,
	keyEsc:       kapp.KeyEscape,
	keyBackspace: kapp.KeyBackspace,
	keyComma:     kapp.KeyComma,
	keyDot:       kapp.KeyPeriod,
	keySlash:     kapp.KeySlash,

	keyLeftMeta:  kapp.KeyMetaLeft,
	keyRightMeta: kapp.KeyMetaRight,
	keyLeftCtrl:  kapp.KeyControlLeft,
	keyRightCtrl: kapp.KeyControlRight,
	keyLeftShift: kapp.KeyShiftLeft,
	keyRightShift: kapp.KeyShiftRight,
}

// keyToKeycode is keycodeToKey inverted, built once at init for the
// uinput synthesizer.
var keyToKeycode = invertKeycodeMap()

func invertKeycodeMap() map[kapp.Key]uint16 {
	out := make(map[kapp.Key]uint16, len(keycodeToKey))
	for code, k := range keycodeToKey {
		out[k] = code
	}
	return out
}
