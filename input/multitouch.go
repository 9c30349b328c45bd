package input

import (
	"encoding/binary"
	"sort"

	"github.com/mobile-next/remotepad/gesture"
	"github.com/mobile-next/remotepad/types"
)

// Linux input event types and codes used by the multitouch protocol B.
const (
	evSyn = 0x00
	evAbs = 0x03

	synReport  = 0x00
	synDropped = 0x03

	absMTSlot       = 0x2f
	absMTPositionX  = 0x35
	absMTPositionY  = 0x36
	absMTTrackingID = 0x39
)

// axisRange is the reported minimum and maximum of one absolute axis.
type axisRange struct {
	Min, Max int32
}

func (r axisRange) scale(v int32, size int) float64 {
	if size <= 0 || r.Max <= r.Min {
		return float64(v)
	}
	return float64(v-r.Min) / float64(r.Max-r.Min) * float64(size)
}

// eventParser splits a byte stream into input_event records. The record size
// depends on the width of struct timeval: 24 bytes on 64-bit kernels, 16 on
// 32-bit ones.
type eventParser struct {
	size int
	buf  []byte
}

func (p *eventParser) feed(chunk []byte, cb func(etype, code uint16, value int32)) {
	p.buf = append(p.buf, chunk...)
	for len(p.buf) >= p.size {
		ev := p.buf[:p.size]
		p.buf = p.buf[p.size:]

		tv := p.size - 8
		etype := binary.LittleEndian.Uint16(ev[tv : tv+2])
		code := binary.LittleEndian.Uint16(ev[tv+2 : tv+4])
		value := int32(binary.LittleEndian.Uint32(ev[tv+4 : tv+8]))
		cb(etype, code, value)
	}
}

type slot struct {
	trackingID int32
	x, y       int32
	// order in which the contact landed, so the first finger stays primary
	seq int
}

// contactTracker assembles multitouch protocol B slot updates into frames,
// one per SYN_REPORT.
type contactTracker struct {
	xRange, yRange axisRange
	size           types.Size

	slots   map[int32]*slot
	current int32
	seq     int
	active  int
	last    []gesture.Contact
}

func newContactTracker(x, y axisRange, size types.Size) *contactTracker {
	return &contactTracker{
		xRange: x,
		yRange: y,
		size:   size,
		slots:  make(map[int32]*slot),
	}
}

func (t *contactTracker) slot() *slot {
	s, ok := t.slots[t.current]
	if !ok {
		s = &slot{trackingID: -1}
		t.slots[t.current] = s
	}
	return s
}

// handle consumes one event and returns the frames completed by it.
func (t *contactTracker) handle(etype, code uint16, value int32) []gesture.Frame {
	switch etype {
	case evAbs:
		switch code {
		case absMTSlot:
			t.current = value
		case absMTTrackingID:
			s := t.slot()
			if value >= 0 && s.trackingID < 0 {
				t.seq++
				s.seq = t.seq
			}
			s.trackingID = value
		case absMTPositionX:
			t.slot().x = value
		case absMTPositionY:
			t.slot().y = value
		}
	case evSyn:
		switch code {
		case synReport:
			return t.report()
		case synDropped:
			return t.drop()
		}
	}
	return nil
}

func (t *contactTracker) contacts() []gesture.Contact {
	var live []*slot
	ids := make(map[*slot]int32)
	for id, s := range t.slots {
		if s.trackingID >= 0 {
			live = append(live, s)
			ids[s] = id
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].seq < live[j].seq })

	out := make([]gesture.Contact, 0, len(live))
	for _, s := range live {
		out = append(out, gesture.Contact{
			Index: int(ids[s]),
			X:     t.xRange.scale(s.x, t.size.Width),
			Y:     t.yRange.scale(s.y, t.size.Height),
		})
	}
	return out
}

func (t *contactTracker) report() []gesture.Frame {
	contacts := t.contacts()
	prev := t.active
	t.active = len(contacts)

	switch {
	case prev == 0 && len(contacts) == 0:
		return nil
	case prev == 0:
		t.last = contacts
		return []gesture.Frame{{Kind: gesture.Begin, Contacts: contacts}}
	case len(contacts) == 0:
		return []gesture.Frame{{Kind: gesture.End, Contacts: t.last}}
	case len(contacts) > prev:
		t.last = contacts
		return []gesture.Frame{{Kind: gesture.PointerAdded, Contacts: contacts}}
	}

	t.last = contacts
	return []gesture.Frame{{Kind: gesture.Move, Contacts: contacts}}
}

// drop handles SYN_DROPPED: the kernel buffer overflowed and slot state is
// unknown, so the touch in progress is cancelled.
func (t *contactTracker) drop() []gesture.Frame {
	wasActive := t.active > 0
	t.slots = make(map[int32]*slot)
	t.active = 0
	t.last = nil
	if wasActive {
		return []gesture.Frame{{Kind: gesture.Cancel}}
	}
	return nil
}
