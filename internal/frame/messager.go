package frame

import (
	"bytes"
	"encoding/binary"
)

// Messager packs typed messages into frames and unpacks validated
// frames from raw bytes. One Messager represents one direction of one
// logical link: it owns the outgoing sequence counter, which advances
// by one (wrapping mod 256) on every successful Pack and never moves
// on Unpack or on failure.
//
// The checksum strategy is fixed at construction. Pack mutates only
// the sequence counter, so concurrent producers sharing one sequence
// space need external mutual exclusion; Unpack mutates nothing.
type Messager struct {
	validator Validator
	sequence  uint8
}

// NewMessager returns a Messager using v for checksums, starting its
// outgoing sequence at seq.
func NewMessager(v Validator, seq uint8) *Messager {
	return &Messager{validator: v, sequence: seq}
}

// Sequence returns the next outgoing sequence number.
func (m *Messager) Sequence() uint8 { return m.sequence }

// Pack serializes msg and wraps it into a frame written to dst,
// returning the total bytes written.
//
// The payload is marshaled directly at its final offset in dst, so the
// frame needs no second copy. Capacity is checked twice: loosely for
// the 7 fixed leading bytes before marshaling, and precisely once the
// payload size is known.
func (m *Messager) Pack(msg Marshaler, dst []byte) (int, error) {
	payloadOffset := HeadSize + CmdIDSize
	if len(dst) < payloadOffset {
		return 0, &BufferTooSmallError{Need: payloadOffset}
	}

	size, err := msg.Marshal(dst[payloadOffset:])
	if err != nil {
		return 0, err
	}

	if size > MaxPayload {
		return 0, &InputTooLargeError{Max: MaxPayload}
	}

	total := payloadOffset + size + TailSize
	if len(dst) < total {
		return 0, &BufferTooSmallError{Need: total - len(dst)}
	}

	dst[0] = SOF
	binary.LittleEndian.PutUint16(dst[1:3], uint16(size))
	dst[3] = m.sequence
	dst[4] = m.validator.CRC8(dst[:4])

	binary.LittleEndian.PutUint16(dst[HeadSize:payloadOffset], msg.CmdID())

	// Payload already sits at dst[payloadOffset : payloadOffset+size].
	cursor := payloadOffset + size
	binary.LittleEndian.PutUint16(dst[cursor:cursor+TailSize], m.validator.CRC16(dst[:cursor]))
	cursor += TailSize

	m.sequence++

	return cursor, nil
}

// Unpack parses and validates a single frame from the front of src,
// returning a zero-copy view and the number of bytes consumed.
//
// Unpack is stateless: every call re-derives everything from src, so
// the caller may retry with the same or a grown buffer at any time.
// On failure the caller should discard Skip(err) bytes and retry once
// more data arrives:
//
//   - no marker at the front but one at index i: *ResyncError, skip i
//   - no marker anywhere: *MissingHeaderError, skip len(src)
//   - incomplete frame: *UnexpectedEndError, skip 0 (wait for bytes)
//   - CRC mismatch: *ChecksumError, skip 1, so a marker byte hiding a
//     later valid frame is re-scanned one byte further in
func (m *Messager) Unpack(src []byte) (RawFrame, int, error) {
	if len(src) == 0 || src[0] != SOF {
		if i := bytes.IndexByte(src, SOF); i > 0 {
			return RawFrame{}, 0, &ResyncError{SkipBytes: i}
		}
		return RawFrame{}, 0, &MissingHeaderError{SkipBytes: len(src)}
	}

	if len(src) < HeadSize {
		return RawFrame{}, 0, &UnexpectedEndError{Read: len(src)}
	}
	cursor := HeadSize

	if m.validator.CRC8(src[:4]) != src[4] {
		return RawFrame{}, 0, &ChecksumError{At: cursor}
	}
	length := int(binary.LittleEndian.Uint16(src[1:3]))
	sequence := src[3]

	if len(src) < cursor+CmdIDSize {
		return RawFrame{}, 0, &UnexpectedEndError{Read: len(src)}
	}
	cmdID := binary.LittleEndian.Uint16(src[cursor : cursor+CmdIDSize])
	cursor += CmdIDSize

	if len(src) < cursor+length {
		return RawFrame{}, 0, &UnexpectedEndError{Read: len(src)}
	}
	payload := src[cursor : cursor+length]
	cursor += length

	if len(src) < cursor+TailSize {
		return RawFrame{}, 0, &UnexpectedEndError{Read: len(src)}
	}
	tail := binary.LittleEndian.Uint16(src[cursor : cursor+TailSize])
	body := src[:cursor]
	cursor += TailSize

	if m.validator.CRC16(body) != tail {
		return RawFrame{}, 0, &ChecksumError{At: cursor}
	}

	return RawFrame{cmdID: cmdID, sequence: sequence, payload: payload}, cursor, nil
}
