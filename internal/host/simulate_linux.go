//go:build linux

package host

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/keykapp/keykapp/internal/kapp"
)

const (
	uiSetEvbit  = 0x40045564 // _IOW('U', 100, int)
	uiSetKeybit = 0x40045565 // _IOW('U', 101, int)
	uiDevCreate = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502    // _IO('U', 2)

	uinputMaxNameSize = 80
	absCnt            = 64
)

type inputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputUserDev mirrors struct uinput_user_dev from linux/uinput.h, the
// legacy single-write device descriptor uinput accepts before UI_DEV_CREATE.
type uinputUserDev struct {
	Name         [uinputMaxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	AbsMax       [absCnt]int32
	AbsMin       [absCnt]int32
	AbsFuzz      [absCnt]int32
	AbsFlat      [absCnt]int32
}

// UinputSimulator implements Simulator by synthesizing key events through
// a virtual /dev/uinput device, enabled for exactly the keys this
// package's keymap covers.
type UinputSimulator struct {
	fd int
}

// NewUinputSimulator opens /dev/uinput, registers every key keyToKeycode
// knows about, and creates the virtual device. The returned simulator
// owns the fd until Close is called.
func NewUinputSimulator() (*UinputSimulator, error) {
	fd, err := unix.Open("/dev/uinput", unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("host: open /dev/uinput: %w", err)
	}

	if err := unix.IoctlSetInt(fd, uiSetEvbit, evKey); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("host: UI_SET_EVBIT: %w", err)
	}
	for _, code := range keyToKeycode {
		if err := unix.IoctlSetInt(fd, uiSetKeybit, int(code)); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("host: UI_SET_KEYBIT %d: %w", code, err)
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:], "keykapp")
	dev.ID = inputID{BusType: 0x03, Vendor: 0x1, Product: 0x1, Version: 1}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, dev); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("host: encode uinput_user_dev: %w", err)
	}
	if _, err := unix.Write(fd, buf.Bytes()); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("host: write uinput_user_dev: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("host: UI_DEV_CREATE: %w", err)
	}
	return &UinputSimulator{fd: fd}, nil
}

// Simulate injects e into the OS input stream as a key event followed by
// a sync report, matching how a real keyboard driver reports one key
// transition.
func (s *UinputSimulator) Simulate(e kapp.KeyEvent) error {
	code, ok := keyToKeycode[e.Key]
	if !ok {
		return fmt.Errorf("host: no uinput keycode for %s", e.Key)
	}
	value := int32(keyEventUp)
	if e.Kind == kapp.Press {
		value = keyEventDown
	}
	if err := s.writeEvent(evKey, code, value); err != nil {
		return err
	}
	return s.writeEvent(evSyn, synReport, 0)
}

func (s *UinputSimulator) writeEvent(typ, code uint16, value int32) error {
	ev := inputEventRaw{Type: typ, Code: code, Value: value}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, ev); err != nil {
		return fmt.Errorf("host: encode input_event: %w", err)
	}
	if _, err := unix.Write(s.fd, buf.Bytes()); err != nil {
		return fmt.Errorf("host: write input_event: %w", err)
	}
	return nil
}

// Close destroys the virtual device and releases the fd.
func (s *UinputSimulator) Close() error {
	unix.IoctlSetInt(s.fd, uiDevDestroy, 0)
	return unix.Close(s.fd)
}
