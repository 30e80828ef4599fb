package referee

import (
	"encoding/binary"

	"github.com/danmuck/uartlink/internal/frame"
)

const robotHPSize = 16

// CmdRobotHP identifies the ally health broadcast (server to robot).
const CmdRobotHP uint16 = 0x0003

// RobotHP carries hit points for the ally robots and structures.
// Slot five of the original layout is reserved.
type RobotHP struct {
	Ally1    uint16
	Ally2    uint16
	Ally3    uint16
	Ally4    uint16
	Reserved uint16
	Ally7    uint16
	Outpost  uint16
	Base     uint16
}

func (RobotHP) CmdID() uint16 { return CmdRobotHP }

func (h RobotHP) Marshal(dst []byte) (int, error) {
	if len(dst) < robotHPSize {
		return 0, &frame.BufferTooSmallError{Need: robotHPSize - len(dst)}
	}

	binary.LittleEndian.PutUint16(dst[0:2], h.Ally1)
	binary.LittleEndian.PutUint16(dst[2:4], h.Ally2)
	binary.LittleEndian.PutUint16(dst[4:6], h.Ally3)
	binary.LittleEndian.PutUint16(dst[6:8], h.Ally4)
	binary.LittleEndian.PutUint16(dst[8:10], h.Reserved)
	binary.LittleEndian.PutUint16(dst[10:12], h.Ally7)
	binary.LittleEndian.PutUint16(dst[12:14], h.Outpost)
	binary.LittleEndian.PutUint16(dst[14:16], h.Base)

	return robotHPSize, nil
}

func (h *RobotHP) Unmarshal(raw []byte) error {
	if len(raw) != robotHPSize {
		return &frame.InvalidDataLengthError{Expected: robotHPSize}
	}

	h.Ally1 = binary.LittleEndian.Uint16(raw[0:2])
	h.Ally2 = binary.LittleEndian.Uint16(raw[2:4])
	h.Ally3 = binary.LittleEndian.Uint16(raw[4:6])
	h.Ally4 = binary.LittleEndian.Uint16(raw[6:8])
	h.Reserved = binary.LittleEndian.Uint16(raw[8:10])
	h.Ally7 = binary.LittleEndian.Uint16(raw[10:12])
	h.Outpost = binary.LittleEndian.Uint16(raw[12:14])
	h.Base = binary.LittleEndian.Uint16(raw[14:16])
	return nil
}
