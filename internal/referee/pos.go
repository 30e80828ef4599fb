package referee

import (
	"encoding/binary"
	"math"

	"github.com/danmuck/uartlink/internal/frame"
)

const robotPosSize = 12

// CmdRobotPos identifies the robot position report (main controller to
// robot).
const CmdRobotPos uint16 = 0x0203

// RobotPos is the robot's field position. Angle is degrees from north.
type RobotPos struct {
	X     float32
	Y     float32
	Angle float32
}

func (RobotPos) CmdID() uint16 { return CmdRobotPos }

func (p RobotPos) Marshal(dst []byte) (int, error) {
	if len(dst) < robotPosSize {
		return 0, &frame.BufferTooSmallError{Need: robotPosSize}
	}

	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(p.X))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(p.Y))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(p.Angle))

	return robotPosSize, nil
}

func (p *RobotPos) Unmarshal(raw []byte) error {
	if len(raw) != robotPosSize {
		return &frame.InvalidDataLengthError{Expected: robotPosSize}
	}

	p.X = math.Float32frombits(binary.LittleEndian.Uint32(raw[0:4]))
	p.Y = math.Float32frombits(binary.LittleEndian.Uint32(raw[4:8]))
	p.Angle = math.Float32frombits(binary.LittleEndian.Uint32(raw[8:12]))
	return nil
}
