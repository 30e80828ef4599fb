package referee

import "github.com/danmuck/uartlink/internal/frame"

const hurtDataSize = 1

// CmdHurtData identifies the damage report (main controller to robot).
const CmdHurtData uint16 = 0x0206

// HurtReason is why hit points were deducted.
type HurtReason uint8

const (
	HurtByProjectile  HurtReason = 0
	HurtModuleOffline HurtReason = 1
	HurtByImpact      HurtReason = 5
)

// HurtData reports a single damage event: the armor module hit and the
// deduction reason, packed into one byte (armor id low nibble, reason
// high nibble).
type HurtData struct {
	ArmorID uint8
	Reason  HurtReason
}

func (HurtData) CmdID() uint16 { return CmdHurtData }

func (h HurtData) Marshal(dst []byte) (int, error) {
	if len(dst) < hurtDataSize {
		return 0, &frame.BufferTooSmallError{Need: hurtDataSize}
	}
	dst[0] = h.ArmorID&0xF | (uint8(h.Reason)&0xF)<<4
	return hurtDataSize, nil
}

func (h *HurtData) Unmarshal(raw []byte) error {
	if len(raw) != hurtDataSize {
		return &frame.InvalidDataLengthError{Expected: hurtDataSize}
	}

	reason := HurtReason(raw[0] >> 4 & 0xF)
	switch reason {
	case HurtByProjectile, HurtModuleOffline, HurtByImpact:
	default:
		return &frame.DecodeError{At: 0}
	}

	h.ArmorID = raw[0] & 0xF
	h.Reason = reason
	return nil
}
