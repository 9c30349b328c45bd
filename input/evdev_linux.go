//go:build linux

package input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/mobile-next/remotepad/types"
	"github.com/mobile-next/remotepad/utils"
	"golang.org/x/sys/unix"
)

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

// EVIOCGABS(abs) = _IOR('E', 0x40 + abs, struct input_absinfo)
func evioCGAbs(code int) uintptr {
	return ioc(iocRead, uint32('E'), uint32(0x40+code), uint32(unsafe.Sizeof(absInfo{})))
}

// EVIOCGRAB = _IOW('E', 0x90, int)
func evioCGrab() uintptr {
	return ioc(iocWrite, uint32('E'), 0x90, uint32(unsafe.Sizeof(int32(0))))
}

func getAbsInfo(fd int, code int) (absInfo, error) {
	var info absInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), evioCGAbs(code), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

func setGrab(fd int, grab bool) error {
	var v int32
	if grab {
		v = 1
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), evioCGrab(), uintptr(unsafe.Pointer(&v)))
	if errno != 0 {
		return errno
	}
	return nil
}

// EvdevSource reads a multitouch touchscreen or touchpad through
// /dev/input/eventN.
type EvdevSource struct {
	file   *os.File
	fd     int
	grab   bool
	xRange axisRange
	yRange axisRange
	size   types.Size

	closeOnce sync.Once
	closeErr  error
}

// OpenEvdev opens path and checks that it reports multitouch slots.
// Coordinates are scaled to size; a zero size keeps raw device units. With
// grab set the device is taken exclusively so the host does not also act on
// the touches.
func OpenEvdev(path string, size types.Size, grab bool) (*EvdevSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	fd := int(f.Fd())

	if _, err := getAbsInfo(fd, absMTSlot); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotTouch, path)
	}

	x, errX := getAbsInfo(fd, absMTPositionX)
	y, errY := getAbsInfo(fd, absMTPositionY)
	if errX != nil || errY != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s has no position axes", ErrDeviceNotTouch, path)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set %s non-blocking: %w", path, err)
	}

	utils.Verbose("Opened %s: x %d..%d, y %d..%d", path, x.Min, x.Max, y.Min, y.Max)
	return &EvdevSource{
		file:   f,
		fd:     fd,
		grab:   grab,
		xRange: axisRange{Min: x.Min, Max: x.Max},
		yRange: axisRange{Min: y.Min, Max: y.Max},
		size:   size,
	}, nil
}

// Run reads events until ctx is done or the device goes away.
func (s *EvdevSource) Run(ctx context.Context, handle FrameHandler) error {
	if s.grab {
		if err := setGrab(s.fd, true); err != nil {
			utils.Warn("Could not grab touch device exclusively: %v", err)
		} else {
			defer setGrab(s.fd, false)
		}
	}

	tracker := newContactTracker(s.xRange, s.yRange, s.size)
	parser := &eventParser{size: int(unsafe.Sizeof(unix.Timeval{})) + 8}
	buf := make([]byte, 4096)

	for {
		if ctx.Err() != nil {
			return nil
		}

		pfd := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pfd, 100); err != nil && !errors.Is(err, unix.EINTR) {
			return fmt.Errorf("poll failed: %w", err)
		}
		ready, err := pollReady(pfd[0].Revents)
		if err != nil {
			return err
		}
		if !ready {
			continue
		}

		n, err := unix.Read(s.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("failed to read touch device: %w", err)
		}

		parser.feed(buf[:n], func(etype, code uint16, value int32) {
			for _, f := range tracker.handle(etype, code, value) {
				handle(f)
			}
		})
	}
}

// pollReady turns poll revents into "readable" or a terminal error.
func pollReady(revents int16) (bool, error) {
	switch {
	case revents&unix.POLLNVAL != 0:
		return false, ErrDeviceClosed
	case revents&(unix.POLLERR|unix.POLLHUP) != 0:
		return false, fmt.Errorf("touch device disconnected")
	}
	return revents&unix.POLLIN != 0, nil
}

func (s *EvdevSource) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.file.Close()
	})
	return s.closeErr
}
