package link

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/uartlink/internal/frame"
	"github.com/danmuck/uartlink/internal/observability"
)

// Handler consumes one validated frame. The RawFrame payload is only
// valid for the duration of the call.
type Handler func(frame.RawFrame) error

// Stream drives the framing engine over an accumulation buffer fed by
// a transport driver. It owns the drain policy the engine prescribes:
// consume whole frames on success, discard Skip bytes on recoverable
// errors, wait for more input on an incomplete tail.
//
// A Stream is single-consumer; the transport goroutine feeding it must
// be the one draining it.
type Stream struct {
	name     string
	messager *frame.Messager
	handlers map[uint16]Handler
	hb       *Heartbeat
	hbTTL    int32

	buf     []byte
	pending int // consumed bytes not yet drained, see Next
}

// NewStream returns a Stream named for metrics/logs, decoding and
// encoding through m.
func NewStream(name string, m *frame.Messager) *Stream {
	return &Stream{
		name:     name,
		messager: m,
		handlers: make(map[uint16]Handler),
	}
}

// Handle registers h for frames carrying cmdID. Later registrations
// replace earlier ones.
func (s *Stream) Handle(cmdID uint16, h Handler) {
	s.handlers[cmdID] = h
}

// Track feeds hb whenever a frame is dispatched, marking the peer
// alive.
func (s *Stream) Track(hb *Heartbeat, ttl int32) {
	s.hb = hb
	s.hbTTL = ttl
}

// Feed appends newly received transport bytes.
func (s *Stream) Feed(p []byte) {
	s.drain()
	s.buf = append(s.buf, p...)
}

// Buffered reports the bytes currently waiting in the accumulation
// buffer.
func (s *Stream) Buffered() int {
	return len(s.buf) - s.pending
}

// Pack encodes msg into dst through the stream's Messager.
func (s *Stream) Pack(msg frame.Marshaler, dst []byte) (int, error) {
	n, err := s.messager.Pack(msg, dst)
	if err != nil {
		return 0, err
	}
	observability.RecordFramePacked(s.name, msg.CmdID())
	return n, nil
}

// Next scans the buffer for the next valid frame. It returns ok=false
// once the remaining bytes are empty or an incomplete frame prefix;
// more Feed data may complete it later.
//
// The returned RawFrame aliases the accumulation buffer and is
// invalidated by the following Next or Feed call, which drains the
// consumed bytes.
func (s *Stream) Next() (frame.RawFrame, bool) {
	s.drain()

	for len(s.buf) > 0 {
		raw, consumed, err := s.messager.Unpack(s.buf)
		if err == nil {
			s.pending = consumed
			observability.RecordFrameUnpacked(s.name, raw.CmdID())
			return raw, true
		}

		skip := frame.Skip(err)
		if skip == 0 {
			// Incomplete tail; wait for the transport.
			return frame.RawFrame{}, false
		}

		var badCRC *frame.ChecksumError
		if errors.As(err, &badCRC) {
			observability.RecordChecksumFailure(s.name)
		} else {
			observability.RecordResyncDiscard(s.name, skip)
		}
		log.Debug().
			Str("link", s.name).
			Int("skip", skip).
			Msg(err.Error())

		s.buf = s.buf[:copy(s.buf, s.buf[skip:])]
	}

	return frame.RawFrame{}, false
}

// Pump dispatches every decodable frame currently buffered and returns
// the number handled. Frames without a registered handler are counted
// and logged, not treated as errors; handler failures are counted and
// pumping continues.
func (s *Stream) Pump() int {
	handled := 0
	for {
		raw, ok := s.Next()
		if !ok {
			return handled
		}

		h, known := s.handlers[raw.CmdID()]
		if !known {
			observability.RecordDispatchUnknown(s.name, raw.CmdID())
			log.Warn().
				Str("link", s.name).
				Uint16("cmd", raw.CmdID()).
				Msg("no handler for cmd id")
			continue
		}

		if err := h(raw); err != nil {
			observability.RecordDispatchError(s.name, raw.CmdID())
			log.Warn().
				Str("link", s.name).
				Uint16("cmd", raw.CmdID()).
				Err(err).
				Msg("frame handler failed")
			continue
		}

		if s.hb != nil {
			s.hb.Feed(s.hbTTL)
		}
		handled++
	}
}

// drain removes bytes consumed by the previous Next. Deferred so the
// RawFrame view handed out stays valid until the caller asks for more.
func (s *Stream) drain() {
	if s.pending > 0 {
		s.buf = s.buf[:copy(s.buf, s.buf[s.pending:])]
		s.pending = 0
	}
}
