package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProcDevices(t *testing.T) {
	text := `I: Bus=0019 Vendor=0000 Product=0001 Version=0000
N: Name="Power Button"
H: Handlers=kbd event0

I: Bus=0018 Vendor=04f3 Product=30a5 Version=0100
N: Name="ELAN Touchscreen"
H: Handlers=mouse1 event5

I: Bus=0003 Vendor=046d Product=c52b Version=0111
N: Name="Logitech Receiver"
H: Handlers=sysrq kbd leds
`

	assert.Equal(t, []DeviceInfo{
		{Name: "ELAN Touchscreen", Path: "/dev/input/event5"},
		{Name: "Power Button", Path: "/dev/input/event0"},
	}, parseProcDevices(text))
}
