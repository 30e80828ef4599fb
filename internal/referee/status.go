package referee

import (
	"encoding/binary"

	"github.com/danmuck/uartlink/internal/frame"
)

const gameStatusSize = 11

// CmdGameStatus identifies the game status broadcast (server to robot).
const CmdGameStatus uint16 = 0x0001

// GameType is the competition variant in play.
type GameType uint8

const (
	GameTypeRMUC    GameType = 1
	GameTypeRMUT    GameType = 2
	GameTypeRMUA    GameType = 3
	GameTypeRMUL3v3 GameType = 4
	GameTypeRMUL1v1 GameType = 5
)

// GameProgress is the match phase.
type GameProgress uint8

const (
	ProgressNotStarted  GameProgress = 0
	ProgressPrepared    GameProgress = 1
	ProgressSelfCheck   GameProgress = 2
	ProgressCountdown5s GameProgress = 3
	ProgressInProgress  GameProgress = 4
	ProgressCalculating GameProgress = 5
)

// GameStatus reports the match phase and clock. The first payload byte
// packs the game type in the low nibble and the progress in the high
// nibble.
type GameStatus struct {
	Type             GameType
	Progress         GameProgress
	RemainingSeconds uint16
	UnixTimestamp    uint64
}

func (GameStatus) CmdID() uint16 { return CmdGameStatus }

func (s GameStatus) Marshal(dst []byte) (int, error) {
	if len(dst) < gameStatusSize {
		return 0, &frame.BufferTooSmallError{Need: gameStatusSize - len(dst)}
	}

	dst[0] = uint8(s.Type)&0xF | (uint8(s.Progress)&0xF)<<4
	binary.LittleEndian.PutUint16(dst[1:3], s.RemainingSeconds)
	binary.LittleEndian.PutUint64(dst[3:11], s.UnixTimestamp)

	return gameStatusSize, nil
}

func (s *GameStatus) Unmarshal(raw []byte) error {
	if len(raw) != gameStatusSize {
		return &frame.InvalidDataLengthError{Expected: gameStatusSize}
	}

	gameType := GameType(raw[0] & 0xF)
	if gameType < GameTypeRMUC || gameType > GameTypeRMUL1v1 {
		return &frame.DecodeError{At: 0}
	}
	progress := GameProgress(raw[0] >> 4 & 0xF)
	if progress > ProgressCalculating {
		return &frame.DecodeError{At: 0}
	}

	s.Type = gameType
	s.Progress = progress
	s.RemainingSeconds = binary.LittleEndian.Uint16(raw[1:3])
	s.UnixTimestamp = binary.LittleEndian.Uint64(raw[3:11])
	return nil
}
