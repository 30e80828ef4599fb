package frame

import (
	"errors"
	"fmt"
)

// Engine errors form a closed set. Every kind carries one position
// field whose meaning is fixed by the kind, and reports a uniform
// recovery directive through Skip: the number of bytes to discard from
// the front of the caller's buffer before retrying. Callers can drive
// stream resynchronization through Skip alone, without branching on
// the kind.
//
// Recoverable stream kinds (Resync, MissingHeader, Checksum,
// UnexpectedEnd) are expected against noisy or partially delivered
// input. The remaining kinds indicate a caller or payload bug and are
// not retryable by adjusting the stream.

// BufferTooSmallError reports a destination lacking Need more bytes.
type BufferTooSmallError struct {
	Need int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("frame: insufficient buffer, need %d more bytes", e.Need)
}

func (e *BufferTooSmallError) Skip() int { return 0 }

// InputTooLargeError reports a payload exceeding the Max the LEN field
// can describe.
type InputTooLargeError struct {
	Max int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("frame: input exceeds maximum payload of %d bytes", e.Max)
}

func (e *InputTooLargeError) Skip() int { return 0 }

// UnexpectedEndError reports input that ran out before a complete
// frame; Read is the buffer length at the point parsing stopped. The
// caller should wait for more bytes rather than discard.
type UnexpectedEndError struct {
	Read int
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("frame: unexpected end of data at offset %d", e.Read)
}

func (e *UnexpectedEndError) Skip() int { return 0 }

// ResyncError reports pre-marker noise: a start-of-frame byte exists
// at index SkipBytes, and everything before it should be discarded.
// The marker itself is left in the buffer for the next attempt.
type ResyncError struct {
	SkipBytes int
}

func (e *ResyncError) Error() string {
	return fmt.Sprintf("frame: resynchronizing, skipping %d bytes to next marker", e.SkipBytes)
}

func (e *ResyncError) Skip() int { return e.SkipBytes }

// MissingHeaderError reports a buffer with no start-of-frame anywhere;
// all SkipBytes scanned bytes are noise.
type MissingHeaderError struct {
	SkipBytes int
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("frame: no header in %d scanned bytes", e.SkipBytes)
}

func (e *MissingHeaderError) Skip() int { return e.SkipBytes }

// ChecksumError reports a CRC mismatch at offset At (immediately after
// the failed checksum field). Skip is 1: the corrupted frame's marker
// byte may shadow a later valid frame one byte further in, so only the
// leading byte is discarded.
type ChecksumError struct {
	At int
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("frame: invalid checksum at offset %d", e.At)
}

func (e *ChecksumError) Skip() int { return 1 }

// DecodeError reports payload bytes that are well-sized but
// semantically invalid at offset At within the payload.
type DecodeError struct {
	At int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("frame: cannot decode payload at offset %d", e.At)
}

func (e *DecodeError) Skip() int { return e.At }

// EncodeError reports a payload that failed to encode; Inner carries
// the marshaler's reason.
type EncodeError struct {
	Inner error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("frame: cannot encode payload: %v", e.Inner)
}

func (e *EncodeError) Skip() int { return 0 }

func (e *EncodeError) Unwrap() error { return e.Inner }

// InvalidDataLengthError reports a payload whose length does not match
// the Expected size of the message type.
type InvalidDataLengthError struct {
	Expected int
}

func (e *InvalidDataLengthError) Error() string {
	return fmt.Sprintf("frame: invalid data length, expected %d bytes", e.Expected)
}

func (e *InvalidDataLengthError) Skip() int { return 0 }

// skipper is implemented by every engine error.
type skipper interface {
	error
	Skip() int
}

// Skip returns the number of bytes to discard from the front of the
// input buffer before retrying. Errors foreign to this package yield
// zero.
func Skip(err error) int {
	var s skipper
	if errors.As(err, &s) {
		return s.Skip()
	}
	return 0
}
