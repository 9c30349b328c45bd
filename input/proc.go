package input

import (
	"os"
	"strings"
)

// DeviceInfo is one entry of /proc/bus/input/devices.
type DeviceInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ListDevices returns the input devices that expose an event node. Devices
// whose name mentions touch are listed first.
func ListDevices() ([]DeviceInfo, error) {
	b, err := os.ReadFile("/proc/bus/input/devices")
	if err != nil {
		return nil, err
	}
	return parseProcDevices(string(b)), nil
}

func parseProcDevices(text string) []DeviceInfo {
	var touch, other []DeviceInfo

	for _, block := range strings.Split(text, "\n\n") {
		var name, event string
		for _, line := range strings.Split(block, "\n") {
			if v, ok := strings.CutPrefix(line, "N: Name="); ok {
				name = strings.Trim(v, " \"")
			}
			if v, ok := strings.CutPrefix(line, "H: Handlers="); ok {
				for _, h := range strings.Fields(v) {
					if strings.HasPrefix(h, "event") {
						event = h
						break
					}
				}
			}
		}
		if event == "" {
			continue
		}

		d := DeviceInfo{Name: name, Path: "/dev/input/" + event}
		if strings.Contains(strings.ToLower(name), "touch") {
			touch = append(touch, d)
		} else {
			other = append(other, d)
		}
	}

	return append(touch, other...)
}
