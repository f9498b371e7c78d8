//go:build linux

package host

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/keykapp/keykapp/internal/reducer"
)

// eviocgrab is EVIOCGRAB from linux/input.h: _IOW('E', 0x90, int). Setting
// it to 1 gives this process exclusive delivery of the device's events;
// nothing else on the system — not even the rest of the input stack —
// sees them until the fd is closed or the value is reset to 0.
const eviocgrab = 0x40044590

const (
	evSyn = 0x00
	evKey = 0x01

	synReport = 0

	keyEventUp     = 0
	keyEventDown   = 1
	keyEventRepeat = 2
)

// inputEventRaw mirrors struct input_event on a 64-bit Linux kernel: two
// 8-byte timeval fields, then type/code/value. 24 bytes total.
type inputEventRaw struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

const inputEventSize = 24

// EvdevGrabber implements Grabber by exclusively grabbing one evdev
// keyboard device node under /dev/input.
type EvdevGrabber struct {
	path string
}

// NewEvdevGrabber returns a grabber for the keyboard device at path
// (typically something under /dev/input/by-id/).
func NewEvdevGrabber(path string) *EvdevGrabber {
	return &EvdevGrabber{path: path}
}

// Engage opens the device, grabs it exclusively, and blocks forever
// delivering events to handler. There is no cancellation; the call returns
// only on a read error, which is fatal at the caller.
//
// The device is grabbed exclusively, so nothing short of this process
// re-injecting events (via a Simulator backed by /dev/uinput) will ever
// reach the rest of the system again. Every event this device reports is
// routed through handler, including non-key events (EV_SYN, EV_MSC),
// repeats, and keycodes this package has no Key mapping for — all surfaced
// as OSEvent{Kind: Other}. handler's Decision is still honored for actual
// key events by the reducer's own Drop-everything Insert/Command-mode
// behavior; for Other events there is nothing left to forward the original
// hardware event unchanged into, since the grab already consumed it
// exclusively and this package's Simulator only knows how to synthesize
// mapped keys, not arbitrary evdev events. A Keep verdict on an Other event
// is therefore logged rather than silently dropped, so the gap is visible
// in diagnostics instead of invisible.
func (g *EvdevGrabber) Engage(handler Handler) error {
	fd, err := unix.Open(g.path, unix.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("host: open %s: %w", g.path, err)
	}
	defer unix.Close(fd)

	if err := unix.IoctlSetInt(fd, eviocgrab, 1); err != nil {
		return fmt.Errorf("host: grab %s: %w", g.path, err)
	}
	defer unix.IoctlSetInt(fd, eviocgrab, 0)

	buf := make([]byte, inputEventSize)
	for {
		n, err := unix.Read(fd, buf)
		if err != nil {
			return fmt.Errorf("host: read %s: %w", g.path, err)
		}
		if n != inputEventSize {
			continue
		}
		var ev inputEventRaw
		if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &ev); err != nil {
			continue
		}

		if ev.Type != evKey || ev.Value == keyEventRepeat {
			logUnforwardedKeep(handler(OSEvent{Kind: Other}))
			continue
		}
		key, ok := keycodeToKey[ev.Code]
		if !ok {
			logUnforwardedKeep(handler(OSEvent{Kind: Other}))
			continue
		}
		kind := KeyRelease
		if ev.Value == keyEventDown {
			kind = KeyPress
		}
		handler(OSEvent{Kind: kind, Key: key})
	}
}

// logUnforwardedKeep records a Keep verdict on an event this grabber has
// no way to forward unchanged, so the gap shows up in diagnostics rather
// than passing silently.
func logUnforwardedKeep(d reducer.Decision) {
	if d == reducer.Keep {
		slog.Debug("host: Keep requested for an event that cannot be forwarded under an exclusive grab")
	}
}
