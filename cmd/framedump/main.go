package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/uartlink/internal/frame"
	"github.com/danmuck/uartlink/internal/logging"
	"github.com/danmuck/uartlink/internal/observability"
)

// framedump decodes a captured byte stream into frame summaries,
// resynchronizing across noise exactly as the live link would.
func main() {
	inPath := flag.String("in", "-", "capture file, - for stdin")
	hexInput := flag.Bool("hex", false, "input is hex text instead of raw bytes")
	flag.Parse()

	logging.ConfigureRuntime()
	logger := observability.InitLogger("framedump")

	data, err := readInput(*inPath, *hexInput)
	if err != nil {
		logger.Fatal().Err(err).Msg("read input")
	}

	frames, discarded := dump(data)
	log.Info().
		Int("frames", frames).
		Int("bytes", len(data)).
		Int("discarded", discarded).
		Msg("capture decoded")
}

func readInput(path string, hexInput bool) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !hexInput {
		return data, nil
	}

	clean := strings.Map(func(c rune) rune {
		if c == ' ' || c == '\n' || c == '\r' || c == '\t' {
			return -1
		}
		return c
	}, string(data))
	return hex.DecodeString(clean)
}

// dump walks the buffer with the engine's skip directives, printing
// one line per validated frame.
func dump(buf []byte) (frames, discarded int) {
	messager := frame.NewMessager(frame.DJIValidator{}, 0)

	offset := 0
	for len(buf) > 0 {
		raw, consumed, err := messager.Unpack(buf)
		if err == nil {
			fmt.Printf("%08x  cmd=%#04x seq=%3d len=%d\n",
				offset, raw.CmdID(), raw.Sequence(), len(raw.Payload()))
			buf = buf[consumed:]
			offset += consumed
			frames++
			continue
		}

		skip := frame.Skip(err)
		if skip == 0 {
			// Incomplete trailing frame; nothing more is coming.
			log.Warn().
				Int("offset", offset).
				Int("remaining", len(buf)).
				Msg("truncated frame at end of capture")
			discarded += len(buf)
			return frames, discarded
		}

		log.Debug().Int("offset", offset).Int("skip", skip).Msg(err.Error())
		buf = buf[skip:]
		offset += skip
		discarded += skip
	}
	return frames, discarded
}
