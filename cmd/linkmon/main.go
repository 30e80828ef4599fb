package main

import (
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/uartlink/internal/config"
	"github.com/danmuck/uartlink/internal/frame"
	"github.com/danmuck/uartlink/internal/link"
	"github.com/danmuck/uartlink/internal/logging"
	"github.com/danmuck/uartlink/internal/observability"
	"github.com/danmuck/uartlink/internal/referee"
)

var startedAt = time.Now()

func main() {
	configPath := flag.String("config", "", "linkmon TOML config path")
	flag.Parse()

	logging.ConfigureRuntime()
	logger := observability.InitLogger("linkmon")
	observability.RegisterMetrics()

	cfg, err := loadMonitorConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	linkCfg := config.LinkConfig{Name: "uart-link", HeartbeatTTL: 5}
	if cfg.LinkConfig != "" {
		linkCfg, err = config.LoadLinkConfig(cfg.LinkConfig)
		if err != nil {
			logger.Fatal().Err(err).Msg("link config")
		}
	}

	messager := frame.NewMessager(frame.DJIValidator{}, linkCfg.InitialSequence)
	stream := link.NewStream(linkCfg.Name, messager)
	var hb link.Heartbeat
	stream.Track(&hb, linkCfg.HeartbeatTTL)
	registerCatalogue(stream)

	if cfg.Source != "" {
		go pumpSource(stream, cfg.Source, cfg.ChunkBytes)
	}
	go tickHeartbeat(&hb, linkCfg.Name)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Node))
	if len(cfg.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startedAt).String(),
			"service": "linkmon",
			"link":    linkCfg.Name,
			"online":  hb.Online(),
			"ttl":     hb.TTL(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}

// registerCatalogue wires every referee message type so decoded
// traffic shows up in logs and feeds the heartbeat.
func registerCatalogue(stream *link.Stream) {
	stream.Handle(referee.CmdGameStatus, logFrame("game_status", func() frame.Marshaler { return &referee.GameStatus{} }))
	stream.Handle(referee.CmdGameResult, logFrame("game_result", func() frame.Marshaler { return &referee.GameResult{} }))
	stream.Handle(referee.CmdRobotHP, logFrame("robot_hp", func() frame.Marshaler { return &referee.RobotHP{} }))
	stream.Handle(referee.CmdPowerHeat, logFrame("power_heat", func() frame.Marshaler { return &referee.PowerHeat{} }))
	stream.Handle(referee.CmdRobotPos, logFrame("robot_pos", func() frame.Marshaler { return &referee.RobotPos{} }))
	stream.Handle(referee.CmdHurtData, logFrame("hurt_data", func() frame.Marshaler { return &referee.HurtData{} }))
	stream.Handle(referee.CmdCustomData, logFrame("custom_data", func() frame.Marshaler { return &referee.CustomData{} }))
	stream.Handle(referee.CmdRemoteControl, logFrame("remote_control", func() frame.Marshaler { return &referee.RemoteControl{} }))
}

func logFrame(name string, newMsg func() frame.Marshaler) link.Handler {
	return func(raw frame.RawFrame) error {
		msg := newMsg()
		if err := msg.Unmarshal(raw.Payload()); err != nil {
			return err
		}
		log.Info().
			Str("msg", name).
			Uint8("seq", raw.Sequence()).
			Int("len", len(raw.Payload())).
			Msg("frame")
		return nil
	}
}

// pumpSource feeds the stream from a capture file or fifo in
// transport-sized chunks, standing in for the UART driver.
func pumpSource(stream *link.Stream, path string, chunk int) {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("open source")
		return
	}
	defer f.Close()

	buf := make([]byte, chunk)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			stream.Feed(buf[:n])
			stream.Pump()
		}
		if err == io.EOF {
			log.Info().Str("source", path).Msg("source drained")
			return
		}
		if err != nil {
			log.Error().Err(err).Str("source", path).Msg("read source")
			return
		}
	}
}

func tickHeartbeat(hb *link.Heartbeat, name string) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	wasOnline := false
	for range ticker.C {
		online := hb.Tick()
		if online != wasOnline {
			log.Info().Str("link", name).Bool("online", online).Msg("peer liveness")
			wasOnline = online
		}
	}
}
