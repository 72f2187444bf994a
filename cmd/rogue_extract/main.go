// Package main implements rogue_extract: it replays a capture file,
// rebuilds the system state from config-stream frames and writes one
// CSV row per timestamp advance.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"RogueMon/internal/extract"
	"RogueMon/internal/model"
	"RogueMon/internal/output"
	"RogueMon/internal/util"
)

func main() {
	cfgPath := flag.String("c", "", "path to configuration file (optional)")
	csvPath := flag.String("csv", "log_output.csv", "name of the output CSV file")
	channel := flag.Int("chan", -1, "config stream channel id (overrides config)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	util.SetupLogger("rogue_extract", *verbose)

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <data.dat>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	dataPath := flag.Arg(0)

	cfg := model.Default()
	if *cfgPath != "" {
		c, err := model.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = c
	}
	if *channel >= 0 {
		if *channel > 255 {
			log.Fatal().Int("chan", *channel).Msg("channel id out of range")
		}
		cfg.Channel = *channel
	}

	info, err := os.Stat(dataPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", dataPath).Msg("data file not found")
	}
	f, err := os.Open(dataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open data file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("close data file")
		}
	}()

	ex, err := extract.New(extract.FromConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("configure extractor")
	}

	log.Info().
		Str("file", dataPath).
		Int64("bytes", info.Size()).
		Int("chan", cfg.Channel).
		Msg("analyzing capture")

	res, runErr := ex.Run(f)
	if runErr != nil {
		log.Error().Err(runErr).Msg("capture processing failed, keeping partial results")
	}

	if len(res.Records) == 0 {
		log.Info().
			Int("frames", res.FramesScanned).
			Msg("analysis complete, no timestamped log points found")
	} else {
		log.Info().
			Str("run_id", res.RunID.String()).
			Int("frames", res.FramesScanned).
			Int("matched", res.FramesMatched).
			Int("skipped", res.FramesSkipped).
			Int("records", len(res.Records)).
			Int64("bytes", res.BytesConsumed).
			Dur("elapsed", res.Elapsed).
			Msg("analysis complete")
		if err := output.WriteCSV(*csvPath, ex.Header(), res.Records); err != nil {
			log.Fatal().Err(err).Msg("save CSV")
		}
		log.Info().Str("csv", *csvPath).Msg("records saved")
	}

	if runErr != nil {
		os.Exit(1)
	}
}
