package devices

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
)

// commandRunner runs an external command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// AndroidSurface is one logical display of an adb-connected Android device.
type AndroidSurface struct {
	serial    string
	displayID int
	name      string
	size      types.Size
	run       commandRunner
}

func (d *AndroidSurface) ID() string {
	return fmt.Sprintf("%s:%d", d.serial, d.displayID)
}

func (d *AndroidSurface) Name() string {
	return d.name
}

func (d *AndroidSurface) Platform() string {
	return "android"
}

func (d *AndroidSurface) IsDefault() bool {
	return d.displayID == 0
}

func (d *AndroidSurface) Bounds() (types.Size, error) {
	return d.size, nil
}

func (d *AndroidSurface) runAdbCommand(ctx context.Context, args ...string) ([]byte, error) {
	cmdArgs := append([]string{"-s", d.serial}, args...)
	return d.run(ctx, "adb", cmdArgs...)
}

// Inject replays each stroke with `input swipe`, which also covers taps and
// long presses when start and end coincide. Simultaneous strokes cannot be
// expressed through the input shell command.
func (d *AndroidSurface) Inject(ctx context.Context, strokes []stroke.Stroke) error {
	if hasOverlap(strokes) {
		return ErrMultiTouchUnsupported
	}

	var elapsed time.Duration
	for _, s := range strokes {
		if wait := s.Delay - elapsed; wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			elapsed += wait
		}

		x1, y1 := s.Start.Rounded()
		x2, y2 := s.End.Rounded()
		ms := s.Duration.Milliseconds()

		output, err := d.runAdbCommand(ctx, "shell", "input", "-d", strconv.Itoa(d.displayID), "swipe",
			strconv.Itoa(x1), strconv.Itoa(y1), strconv.Itoa(x2), strconv.Itoa(y2), strconv.FormatInt(ms, 10))
		if err != nil {
			return fmt.Errorf("failed to inject stroke on %s: %v\nOutput: %s", d.ID(), err, string(output))
		}
		elapsed += s.Duration
	}

	return nil
}

// AndroidProvider lists the displays of one adb device. With an empty Serial
// the single connected device is used.
type AndroidProvider struct {
	Serial string
	run    commandRunner
}

func (p *AndroidProvider) Surfaces(ctx context.Context) ([]Surface, error) {
	serial := p.Serial
	if serial == "" {
		output, err := p.run(ctx, "adb", "devices")
		if err != nil {
			return nil, fmt.Errorf("failed to run 'adb devices': %v", err)
		}

		serials := parseAdbDevicesOutput(string(output))
		switch len(serials) {
		case 0:
			return nil, fmt.Errorf("no online android devices found")
		case 1:
			serial = serials[0]
		default:
			return nil, fmt.Errorf("multiple devices found (%d), please specify --serial with one of: [%s]", len(serials), strings.Join(serials, ", "))
		}
	}

	output, err := p.run(ctx, "adb", "-s", serial, "shell", "cmd", "display", "get-displays")
	if err != nil {
		return nil, fmt.Errorf("failed to list displays of %s: %v\nOutput: %s", serial, err, string(output))
	}

	displays := parseDisplays(string(output))
	utils.Verbose("Found %d active display(s) on %s", len(displays), serial)

	surfaces := make([]Surface, 0, len(displays))
	for _, d := range displays {
		surfaces = append(surfaces, &AndroidSurface{
			serial:    serial,
			displayID: d.id,
			name:      d.name,
			size:      d.size,
			run:       p.run,
		})
	}
	return surfaces, nil
}

func parseAdbDevicesOutput(output string) []string {
	var serials []string

	lines := strings.Split(output, "\n")
	for i := 1; i < len(lines); i++ {
		parts := strings.Fields(strings.TrimSpace(lines[i]))
		if len(parts) == 2 && parts[1] == "device" {
			serials = append(serials, parts[0])
		}
	}

	return serials
}

type androidDisplay struct {
	id   int
	name string
	size types.Size
}

var (
	displayLineRe = regexp.MustCompile(`^Display id (\d+): DisplayInfo\{"([^"]*)"`)
	displayRealRe = regexp.MustCompile(`\breal (\d+) x (\d+)`)
	displayAppRe  = regexp.MustCompile(`\bapp (\d+) x (\d+)`)
	displayStatRe = regexp.MustCompile(`\bstate (\w+)`)
)

// parseDisplays reads `cmd display get-displays` output. Displays reported as
// OFF are skipped. The real size is preferred over the app size, which
// excludes system decorations.
func parseDisplays(output string) []androidDisplay {
	var displays []androidDisplay

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		m := displayLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		if st := displayStatRe.FindStringSubmatch(line); st != nil && st[1] == "OFF" {
			continue
		}

		id, _ := strconv.Atoi(m[1])
		d := androidDisplay{id: id, name: m[2]}

		sz := displayRealRe.FindStringSubmatch(line)
		if sz == nil {
			sz = displayAppRe.FindStringSubmatch(line)
		}
		if sz != nil {
			d.size.Width, _ = strconv.Atoi(sz[1])
			d.size.Height, _ = strconv.Atoi(sz[2])
		}

		displays = append(displays, d)
	}

	return displays
}
