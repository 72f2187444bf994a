// Package model defines the configuration and record structures shared
// across the extraction pipeline.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field names one extracted column. Either Path (a state-tree path) or
// Expr (an expression over the state snapshot) must be set.
type Field struct {
	Name string `yaml:"name"`
	Path string `yaml:"path,omitempty"`
	Expr string `yaml:"expr,omitempty"`
}

// LiveConfig holds the live-monitor settings.
type LiveConfig struct {
	Addr   string `yaml:"addr"`   // HTTP listen address
	Device string `yaml:"device"` // serial device carrying the stream
	Baud   int    `yaml:"baud"`
	DBPath string `yaml:"db"` // BoltDB record store path
}

// Config is the root structure loaded from configs/config.yml.
type Config struct {
	Channel  int        `yaml:"channel"`
	TimePath string     `yaml:"time_path"`
	Sentinel string     `yaml:"sentinel"`
	Fields   []Field    `yaml:"fields"`
	Live     LiveConfig `yaml:"live"`
}

// Default returns the reference deployment configuration: the config
// stream on channel 0, Root.Time as the clock, and the five PGP
// link-quality counters.
func Default() *Config {
	return &Config{
		Channel:  0,
		TimePath: "Root.Time",
		Sentinel: "N/A",
		Fields: []Field{
			{Name: "WordErrCnt", Path: "Root.App.PrbsRx[0].WordErrCnt"},
			{Name: "EofeErrCnt", Path: "Root.App.PrbsRx[0].EofeErrCnt"},
			{Name: "MissedPacketCnt", Path: "Root.App.PrbsRx[0].MissedPacketCnt"},
			{Name: "LinkErrorCnt", Path: "Root.App.Pgp4AxiL[0].RxStatus.LinkErrorCnt"},
			{Name: "FrameCnt", Path: "Root.App.PrbsRx[0].FrameCnt"},
		},
		Live: LiveConfig{Addr: ":8080", Baud: 115200, DBPath: "tmp/records.db"},
	}
}

// Load reads the YAML configuration at cfgPath and overlays it on the
// defaults, so a partial file only overrides what it names.
func Load(cfgPath string) (*Config, error) {
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
	}
	if cfg.Channel < 0 || cfg.Channel > 255 {
		return nil, fmt.Errorf("config %s: channel %d out of range", cfgPath, cfg.Channel)
	}
	if cfg.TimePath == "" {
		cfg.TimePath = "Root.Time"
	}
	return cfg, nil
}

// Header returns the output column list for fields, Timestamp first.
func Header(fields []Field) []string {
	h := make([]string, 0, len(fields)+1)
	h = append(h, "Timestamp")
	for _, f := range fields {
		h = append(h, f.Name)
	}
	return h
}
