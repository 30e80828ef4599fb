package frame

// Frame wire layout, all multi-byte fields little-endian:
//
//	+--------+--------+--------+--------+--------+---------+--------+
//	|  SOF   |  LEN   |  SEQ   |  CRC8  | CMD_ID |  DATA   | CRC16  |
//	+--------+--------+--------+--------+--------+---------+--------+
//	| 1 byte | 2 byte | 1 byte | 1 byte | 2 byte | N bytes | 2 byte |
//	+--------+--------+--------+--------+--------+---------+--------+
const (
	// SOF is the start-of-frame marker byte.
	SOF byte = 0xA5

	// HeadSize covers SOF, LEN, SEQ and the header CRC8.
	HeadSize = 5
	// CmdIDSize is the width of the command id field.
	CmdIDSize = 2
	// TailSize is the width of the frame CRC16.
	TailSize = 2

	// MaxPayload is the largest payload LEN can describe.
	MaxPayload = 0xFFFF

	// Overhead is the framing cost around a payload.
	Overhead = HeadSize + CmdIDSize + TailSize
)

// Validator is the checksum strategy for one protocol variant.
// CRC8 guards the 4-byte header prefix, CRC16 the whole frame up to
// the tail. Implementations must be pure and deterministic.
type Validator interface {
	CRC8(raw []byte) uint8
	CRC16(raw []byte) uint16
}

// DJIValidator validates frames with the DJI-compatible CRC pair.
// Check string "123456789" yields CRC8 0x0B and CRC16 0x6F91.
type DJIValidator struct{}

func (DJIValidator) CRC8(raw []byte) uint8   { return crc8DJI(raw) }
func (DJIValidator) CRC16(raw []byte) uint16 { return crc16DJI(raw) }

// Marshaler is the per-message-type payload codec. Each implementation
// is bound to exactly one command id and owns its payload layout; the
// framing engine treats the bytes as opaque.
//
// Marshal writes the encoded payload into dst and returns the byte
// count. It must fail with *BufferTooSmallError when dst lacks room,
// write only within dst, and never read dst's prior contents.
//
// Unmarshal reconstructs the value from exactly the payload bytes of
// one frame, filling the receiver. It must fail with
// *InvalidDataLengthError unless raw has exactly the expected size,
// and with *DecodeError for well-sized but semantically invalid bytes.
type Marshaler interface {
	CmdID() uint16
	Marshal(dst []byte) (int, error)
	Unmarshal(raw []byte) error
}

// RawFrame is a structurally and checksum-validated frame that has not
// been semantically decoded. The payload aliases the buffer given to
// Unpack and is invalidated the moment the caller mutates or drains
// that buffer.
type RawFrame struct {
	cmdID    uint16
	sequence uint8
	payload  []byte
}

// CmdID returns the frame's command id.
func (f RawFrame) CmdID() uint16 { return f.cmdID }

// Sequence returns the frame's sequence number.
func (f RawFrame) Sequence() uint8 { return f.sequence }

// Payload returns the borrowed payload bytes, without framing fields.
func (f RawFrame) Payload() []byte { return f.payload }
