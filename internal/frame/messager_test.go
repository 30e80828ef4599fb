package frame

import (
	"bytes"
	"errors"
	"testing"
)

// testMessage is a fixed five byte payload bound to command id 0x1234.
type testMessage struct {
	payload [5]byte
}

func (m *testMessage) CmdID() uint16 { return 0x1234 }

func (m *testMessage) Marshal(dst []byte) (int, error) {
	if len(dst) < len(m.payload) {
		return 0, &BufferTooSmallError{Need: len(m.payload)}
	}
	copy(dst, m.payload[:])
	return len(m.payload), nil
}

func (m *testMessage) Unmarshal(raw []byte) error {
	if len(raw) != len(m.payload) {
		return &InvalidDataLengthError{Expected: len(m.payload)}
	}
	copy(m.payload[:], raw)
	return nil
}

// knownFrame is the reference encoding of testMessage{1,2,3,4,5} at
// sequence 0x56.
var knownFrame = []byte{
	0xA5, 0x05, 0x00, 0x56, 0xF0, // header
	0x34, 0x12, // cmd id
	0x01, 0x02, 0x03, 0x04, 0x05, // payload
	0x84, 0x71, // tail crc
}

func TestCRC8CheckString(t *testing.T) {
	got := DJIValidator{}.CRC8([]byte("123456789"))
	if got != 0x0B {
		t.Fatalf("crc8 check string: got %#02x want 0x0b", got)
	}
}

func TestCRC16CheckString(t *testing.T) {
	got := DJIValidator{}.CRC16([]byte("123456789"))
	if got != 0x6F91 {
		t.Fatalf("crc16 check string: got %#04x want 0x6f91", got)
	}
}

func TestPackKnownFrame(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0x56)
	msg := &testMessage{payload: [5]byte{1, 2, 3, 4, 5}}
	var buf [64]byte

	n, err := m.Pack(msg, buf[:])
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !bytes.Equal(buf[:n], knownFrame) {
		t.Fatalf("encoded frame mismatch:\n got  %x\n want %x", buf[:n], knownFrame)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	in := &testMessage{payload: [5]byte{1, 2, 3, 4, 5}}
	var buf [64]byte

	packed, err := m.Pack(in, buf[:])
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	raw, consumed, err := m.Unpack(buf[:packed])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if consumed != packed {
		t.Fatalf("consumed %d bytes, packed %d", consumed, packed)
	}
	if raw.CmdID() != in.CmdID() {
		t.Fatalf("cmd id: got %#04x want %#04x", raw.CmdID(), in.CmdID())
	}
	if raw.Sequence() != 0 {
		t.Fatalf("sequence: got %d want 0", raw.Sequence())
	}

	var out testMessage
	if err := out.Unmarshal(raw.Payload()); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.payload != in.payload {
		t.Fatalf("payload mismatch: got %v want %v", out.payload, in.payload)
	}
}

func TestPayloadAliasesInput(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	var buf [64]byte
	n, err := m.Pack(&testMessage{payload: [5]byte{1, 2, 3, 4, 5}}, buf[:])
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	raw, _, err := m.Unpack(buf[:n])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	buf[HeadSize+CmdIDSize] = 0xEE
	if raw.Payload()[0] != 0xEE {
		t.Fatalf("payload copied, expected a view into the input buffer")
	}
}

func TestSequenceAdvancesAndWraps(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0xFE)
	var buf [64]byte

	want := []uint8{0xFE, 0xFF, 0x00, 0x01}
	for i, seq := range want {
		n, err := m.Pack(&testMessage{}, buf[:])
		if err != nil {
			t.Fatalf("pack %d: %v", i, err)
		}
		raw, _, err := m.Unpack(buf[:n])
		if err != nil {
			t.Fatalf("unpack %d: %v", i, err)
		}
		if raw.Sequence() != seq {
			t.Fatalf("pack %d: sequence got %#02x want %#02x", i, raw.Sequence(), seq)
		}
	}
}

func TestUnpackDoesNotAdvanceSequence(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0x10)
	if _, _, err := m.Unpack(knownFrame); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if m.Sequence() != 0x10 {
		t.Fatalf("sequence moved on unpack: got %#02x want 0x10", m.Sequence())
	}
}

func TestPackBufferTooSmall(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0x56)
	var buf [10]byte // frame needs 14

	_, err := m.Pack(&testMessage{payload: [5]byte{1, 2, 3, 4, 5}}, buf[:])
	var tooSmall *BufferTooSmallError
	if !errors.As(err, &tooSmall) {
		t.Fatalf("expected BufferTooSmallError, got %v", err)
	}
	if tooSmall.Need != 5 {
		t.Fatalf("need: got %d want 5", tooSmall.Need)
	}
	if Skip(err) != 0 {
		t.Fatalf("skip: got %d want 0", Skip(err))
	}
}

func TestUnpackAllZeros(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	_, _, err := m.Unpack(make([]byte, 10))
	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingHeaderError, got %v", err)
	}
	if missing.SkipBytes != 10 || Skip(err) != 10 {
		t.Fatalf("skip: got %d want 10", missing.SkipBytes)
	}
}

func TestUnpackNoLeadingMarker(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	// Frame-shaped but the marker byte is gone entirely.
	_, _, err := m.Unpack(knownFrame[1:])
	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingHeaderError, got %v", err)
	}
	if missing.SkipBytes != 13 {
		t.Fatalf("skip: got %d want 13", missing.SkipBytes)
	}
}

func TestUnpackResyncFindsLateMarker(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	src := append([]byte{0x00, 0x11, 0x22}, knownFrame...)

	_, _, err := m.Unpack(src)
	var resync *ResyncError
	if !errors.As(err, &resync) {
		t.Fatalf("expected ResyncError, got %v", err)
	}
	if resync.SkipBytes != 3 {
		t.Fatalf("skip: got %d want 3", resync.SkipBytes)
	}

	// The marker survives the discard; the retry decodes the frame.
	raw, consumed, err := m.Unpack(src[Skip(err):])
	if err != nil {
		t.Fatalf("unpack after resync: %v", err)
	}
	if consumed != len(knownFrame) || raw.CmdID() != 0x1234 {
		t.Fatalf("unexpected frame after resync: consumed=%d cmd=%#04x", consumed, raw.CmdID())
	}
}

func TestUnpackHeaderChecksum(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	src := append([]byte(nil), knownFrame...)
	src[2] = 0xFF // corrupt LEN high byte

	_, _, err := m.Unpack(src)
	var bad *ChecksumError
	if !errors.As(err, &bad) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if bad.At != 5 {
		t.Fatalf("at: got %d want 5", bad.At)
	}
	if Skip(err) != 1 {
		t.Fatalf("skip: got %d want 1", Skip(err))
	}
}

func TestUnpackTailChecksum(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	src := append([]byte(nil), knownFrame...)
	src[12], src[13] = 0x00, 0x00

	_, _, err := m.Unpack(src)
	var bad *ChecksumError
	if !errors.As(err, &bad) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if bad.At != 14 {
		t.Fatalf("at: got %d want 14", bad.At)
	}
}

func TestUnpackTruncated(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	for cut := 1; cut < len(knownFrame); cut++ {
		_, _, err := m.Unpack(knownFrame[:cut])
		var short *UnexpectedEndError
		if !errors.As(err, &short) {
			t.Fatalf("cut=%d: expected UnexpectedEndError, got %v", cut, err)
		}
		if short.Read != cut {
			t.Fatalf("cut=%d: read got %d want %d", cut, short.Read, cut)
		}
		if Skip(err) != 0 {
			t.Fatalf("cut=%d: skip got %d want 0", cut, Skip(err))
		}
	}
}

func TestUnpackEmptyInput(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)
	_, _, err := m.Unpack(nil)
	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingHeaderError, got %v", err)
	}
	if missing.SkipBytes != 0 {
		t.Fatalf("skip: got %d want 0", missing.SkipBytes)
	}
}

// Repeatedly applying "unpack, discard Skip bytes" must terminate on
// any finite input: each pass either succeeds, strictly shrinks the
// buffer, or stops on an incomplete tail.
func TestResyncDrainTerminates(t *testing.T) {
	m := NewMessager(DJIValidator{}, 0)

	inputs := [][]byte{
		make([]byte, 256),
		bytes.Repeat([]byte{SOF}, 64),
		append(bytes.Repeat([]byte{SOF, 0x00}, 32), knownFrame...),
		append(append([]byte{0x01, SOF, 0x02}, knownFrame[:9]...), 0xA5, 0x00),
	}

	for i, src := range inputs {
		buf := append([]byte(nil), src...)
		frames := 0
		for steps := 0; len(buf) > 0; steps++ {
			if steps > 10*len(src) {
				t.Fatalf("input %d: drain loop did not terminate", i)
			}
			_, consumed, err := m.Unpack(buf)
			if err == nil {
				buf = buf[consumed:]
				frames++
				continue
			}
			skip := Skip(err)
			if skip == 0 {
				// Incomplete tail; nothing more arrives in this test.
				break
			}
			buf = buf[skip:]
		}
		if i == 2 && frames != 1 {
			t.Fatalf("input 2: got %d frames want 1", frames)
		}
	}
}

func TestSkipForeignError(t *testing.T) {
	if got := Skip(errors.New("not a frame error")); got != 0 {
		t.Fatalf("skip: got %d want 0", got)
	}
	if got := Skip(nil); got != 0 {
		t.Fatalf("skip nil: got %d want 0", got)
	}
}
