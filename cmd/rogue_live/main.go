// Package main implements rogue_live: it follows a live capture source
// (serial port or growing file), extracts records continuously and
// serves them over HTTP and websocket.
package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"RogueMon/internal/app"
	"RogueMon/internal/extract"
	"RogueMon/internal/model"
	"RogueMon/internal/source"
	"RogueMon/internal/util"
)

func main() {
	cfgPath := flag.String("c", "", "path to configuration file (optional)")
	device := flag.String("dev", "", "serial device carrying the capture stream")
	baud := flag.Int("baud", 0, "serial baud rate (overrides config)")
	follow := flag.String("f", "", "capture file to follow instead of a serial device")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	util.SetupLogger("rogue_live", *verbose)

	cfg := model.Default()
	if *cfgPath != "" {
		c, err := model.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = c
	}
	if *device != "" {
		cfg.Live.Device = *device
	}
	if *baud > 0 {
		cfg.Live.Baud = *baud
	}
	if *addr != "" {
		cfg.Live.Addr = *addr
	}

	var (
		src io.ReadCloser
		err error
	)
	switch {
	case *follow != "":
		src, err = source.OpenFollow(*follow, 0)
	case cfg.Live.Device != "":
		src, err = source.OpenSerial(cfg.Live.Device, cfg.Live.Baud)
	default:
		log.Fatal().Msg("no capture source: set -dev or -f")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("open capture source")
	}

	srv, err := app.New(cfg.Live.DBPath, model.Header(cfg.Fields))
	if err != nil {
		log.Fatal().Err(err).Msg("start record store")
	}

	opts := extract.FromConfig(cfg)
	opts.OnRecord = srv.Publish
	ex, err := extract.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("configure extractor")
	}

	go func() {
		if err := srv.Start(cfg.Live.Addr); err != nil {
			log.Fatal().Err(err).Msg("live monitor server")
		}
	}()

	done := make(chan struct{})
	var (
		res    *extract.Result
		runErr error
	)
	go func() {
		res, runErr = ex.Run(src)
		close(done)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
		log.Info().Msg("shutting down live monitor")
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Msg("close capture source")
		}
		<-done
	case <-done:
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("live pass ended with stream error")
	}
	if res != nil {
		srv.SetSummary(res.Summary())
		log.Info().
			Str("run_id", res.RunID.String()).
			Int("frames", res.FramesScanned).
			Int("records", len(res.Records)).
			Int64("bytes", res.BytesConsumed).
			Msg("live pass finished")
	}
	srv.Stop()
}
