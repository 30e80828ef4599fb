package referee

import "github.com/danmuck/uartlink/internal/frame"

const gameResultSize = 1

// CmdGameResult identifies the end-of-match result (server to robot).
const CmdGameResult uint16 = 0x0002

// Winner is the match outcome.
type Winner uint8

const (
	WinnerDraw Winner = 0
	WinnerRed  Winner = 1
	WinnerBlue Winner = 2
)

// GameResult reports the match outcome.
type GameResult struct {
	Winner Winner
}

func (GameResult) CmdID() uint16 { return CmdGameResult }

func (r GameResult) Marshal(dst []byte) (int, error) {
	if len(dst) < gameResultSize {
		return 0, &frame.BufferTooSmallError{Need: gameResultSize}
	}
	dst[0] = uint8(r.Winner)
	return gameResultSize, nil
}

func (r *GameResult) Unmarshal(raw []byte) error {
	if len(raw) != gameResultSize {
		return &frame.InvalidDataLengthError{Expected: gameResultSize}
	}
	if raw[0] > uint8(WinnerBlue) {
		return &frame.DecodeError{At: 0}
	}
	r.Winner = Winner(raw[0])
	return nil
}
