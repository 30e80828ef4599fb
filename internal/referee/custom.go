package referee

import "github.com/danmuck/uartlink/internal/frame"

// CustomDataMax is the largest custom payload the controller link
// carries (30 Hz budget on the original link).
const CustomDataMax = 30

// CmdCustomData identifies opaque controller-to-robot data.
const CmdCustomData uint16 = 0x0302

// CustomData is free-form controller data, up to CustomDataMax bytes.
// Unlike the fixed-size catalogue types its length is whatever the
// sender packed; Unmarshal keeps the received length.
type CustomData struct {
	Data []byte
}

func (CustomData) CmdID() uint16 { return CmdCustomData }

func (c CustomData) Marshal(dst []byte) (int, error) {
	if len(c.Data) > CustomDataMax {
		return 0, &frame.InputTooLargeError{Max: CustomDataMax}
	}
	if len(dst) < len(c.Data) {
		return 0, &frame.BufferTooSmallError{Need: len(c.Data) - len(dst)}
	}
	copy(dst, c.Data)
	return len(c.Data), nil
}

func (c *CustomData) Unmarshal(raw []byte) error {
	if len(raw) > CustomDataMax {
		return &frame.InvalidDataLengthError{Expected: CustomDataMax}
	}
	c.Data = append(c.Data[:0], raw...)
	return nil
}
