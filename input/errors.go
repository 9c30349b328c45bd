package input

import "errors"

// ErrDeviceNotTouch is returned when an input device does not speak the
// multitouch slot protocol.
var ErrDeviceNotTouch = errors.New("not a multitouch device")

// ErrDeviceClosed is returned by Run when the device was closed underneath it.
var ErrDeviceClosed = errors.New("touch device closed")
