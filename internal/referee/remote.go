package referee

import (
	"encoding/binary"

	"github.com/danmuck/uartlink/internal/frame"
)

const remoteControlSize = 12

// CmdRemoteControl identifies keyboard/mouse input forwarded to the
// controlled robot (30 Hz on the original link).
const CmdRemoteControl uint16 = 0x0304

// Key bits within RemoteControl.Keys.
const (
	KeyW uint16 = 1 << iota
	KeyS
	KeyA
	KeyD
	KeyShift
	KeyCtrl
	KeyQ
	KeyE
	KeyR
	KeyF
	KeyG
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
)

// RemoteControl carries operator mouse and keyboard state.
type RemoteControl struct {
	MouseX      int16
	MouseY      int16
	MouseZ      int16
	LeftButton  bool
	RightButton bool
	Keys        uint16
	Reserved    uint16
}

func (RemoteControl) CmdID() uint16 { return CmdRemoteControl }

// KeyDown reports whether a Key* bit is set.
func (r RemoteControl) KeyDown(key uint16) bool { return r.Keys&key != 0 }

func (r RemoteControl) Marshal(dst []byte) (int, error) {
	if len(dst) < remoteControlSize {
		return 0, &frame.BufferTooSmallError{Need: remoteControlSize - len(dst)}
	}

	binary.LittleEndian.PutUint16(dst[0:2], uint16(r.MouseX))
	binary.LittleEndian.PutUint16(dst[2:4], uint16(r.MouseY))
	binary.LittleEndian.PutUint16(dst[4:6], uint16(r.MouseZ))
	dst[6] = 0
	if r.LeftButton {
		dst[6] = 1
	}
	dst[7] = 0
	if r.RightButton {
		dst[7] = 1
	}
	binary.LittleEndian.PutUint16(dst[8:10], r.Keys)
	binary.LittleEndian.PutUint16(dst[10:12], r.Reserved)

	return remoteControlSize, nil
}

func (r *RemoteControl) Unmarshal(raw []byte) error {
	if len(raw) != remoteControlSize {
		return &frame.InvalidDataLengthError{Expected: remoteControlSize}
	}

	r.MouseX = int16(binary.LittleEndian.Uint16(raw[0:2]))
	r.MouseY = int16(binary.LittleEndian.Uint16(raw[2:4]))
	r.MouseZ = int16(binary.LittleEndian.Uint16(raw[4:6]))
	r.LeftButton = raw[6] != 0
	r.RightButton = raw[7] != 0
	r.Keys = binary.LittleEndian.Uint16(raw[8:10])
	r.Reserved = binary.LittleEndian.Uint16(raw[10:12])
	return nil
}
