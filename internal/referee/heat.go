package referee

import (
	"encoding/binary"

	"github.com/danmuck/uartlink/internal/frame"
)

const powerHeatSize = 14

// CmdPowerHeat identifies power and barrel heat telemetry (main
// controller to robot).
const CmdPowerHeat uint16 = 0x0202

// PowerHeat carries buffer energy and shooter barrel heat. The three
// leading fields of the original layout are reserved.
type PowerHeat struct {
	Reserved1     uint16
	Reserved2     uint16
	Reserved3     uint32
	BufferEnergy  uint16
	ShooterHeat17 uint16
	ShooterHeat42 uint16
}

func (PowerHeat) CmdID() uint16 { return CmdPowerHeat }

func (p PowerHeat) Marshal(dst []byte) (int, error) {
	if len(dst) < powerHeatSize {
		return 0, &frame.BufferTooSmallError{Need: powerHeatSize}
	}

	binary.LittleEndian.PutUint16(dst[0:2], p.Reserved1)
	binary.LittleEndian.PutUint16(dst[2:4], p.Reserved2)
	binary.LittleEndian.PutUint32(dst[4:8], p.Reserved3)
	binary.LittleEndian.PutUint16(dst[8:10], p.BufferEnergy)
	binary.LittleEndian.PutUint16(dst[10:12], p.ShooterHeat17)
	binary.LittleEndian.PutUint16(dst[12:14], p.ShooterHeat42)

	return powerHeatSize, nil
}

func (p *PowerHeat) Unmarshal(raw []byte) error {
	if len(raw) != powerHeatSize {
		return &frame.InvalidDataLengthError{Expected: powerHeatSize}
	}

	p.Reserved1 = binary.LittleEndian.Uint16(raw[0:2])
	p.Reserved2 = binary.LittleEndian.Uint16(raw[2:4])
	p.Reserved3 = binary.LittleEndian.Uint32(raw[4:8])
	p.BufferEnergy = binary.LittleEndian.Uint16(raw[8:10])
	p.ShooterHeat17 = binary.LittleEndian.Uint16(raw[10:12])
	p.ShooterHeat42 = binary.LittleEndian.Uint16(raw[12:14])
	return nil
}
