//go:build !linux

package host

import (
	"fmt"

	"github.com/keykapp/keykapp/internal/kapp"
)

// unsupportedGrabber and unsupportedSimulator back NewPlatformGrabber and
// NewPlatformSimulator on every platform this module doesn't implement
// grab/uinput support for. Engagement failure is fatal at startup; callers
// are expected to report the error and exit rather than retry.
type unsupportedGrabber struct{}

func (unsupportedGrabber) Engage(Handler) error {
	return fmt.Errorf("host: OS grab is not implemented on this platform")
}

// NewPlatformGrabber returns the grabber for the host OS. Only Linux
// (evdev) is implemented; every other platform returns a Grabber whose
// Engage always fails.
func NewPlatformGrabber(devicePath string) Grabber {
	return unsupportedGrabber{}
}

type unsupportedSimulator struct{}

func (unsupportedSimulator) Simulate(kapp.KeyEvent) error {
	return fmt.Errorf("host: key synthesis is not implemented on this platform")
}

// NewPlatformSimulator returns the Simulator for the host OS. Only Linux
// (uinput) is implemented.
func NewPlatformSimulator() (Simulator, error) {
	return unsupportedSimulator{}, nil
}
