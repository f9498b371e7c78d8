//go:build linux

package host

// NewPlatformGrabber returns the evdev-backed Grabber for devicePath.
func NewPlatformGrabber(devicePath string) Grabber {
	return NewEvdevGrabber(devicePath)
}

// NewPlatformSimulator returns the uinput-backed Simulator, or an error if
// /dev/uinput could not be opened and configured.
func NewPlatformSimulator() (Simulator, error) {
	return NewUinputSimulator()
}
