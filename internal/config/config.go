// Package config loads match configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration for a heads-up match run.
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Match    *MatchSettings   `hcl:"match,block"`
	History  *HistorySettings `hcl:"history,block"`
}

// MatchSettings controls the table rules and match length.
type MatchSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	Hands         int    `hcl:"hands,optional"`
	Seed          int64  `hcl:"seed,optional"`
	TopName       string `hcl:"top_name,optional"`
	BottomName    string `hcl:"bottom_name,optional"`
}

// HistorySettings controls hand archiving.
type HistorySettings struct {
	Enabled          bool   `hcl:"enabled,optional"`
	Dir              string `hcl:"dir,optional"`
	Filename         string `hcl:"filename,optional"`
	FlushIntervalSec int    `hcl:"flush_interval_seconds,optional"`
	FlushHands       int    `hcl:"flush_hands,optional"`
	IncludeHoleCards bool   `hcl:"include_hole_cards,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Match: &MatchSettings{
			SmallBlind:    1,
			BigBlind:      2,
			StartingStack: 200,
			Hands:         100,
			TopName:       "top",
			BottomName:    "bottom",
		},
		History: &HistorySettings{
			Enabled:          true,
			Dir:              "hands",
			Filename:         "session.log",
			FlushIntervalSec: 10,
			FlushHands:       100,
			IncludeHoleCards: true,
		},
	}
}

// Load reads an HCL configuration file, filling in defaults for anything the
// file leaves out. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	cfg := &Config{}
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	if c.History == nil {
		c.History = &HistorySettings{}
		c.History.Enabled = d.History.Enabled
		c.History.IncludeHoleCards = d.History.IncludeHoleCards
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Match.SmallBlind == 0 {
		c.Match.SmallBlind = d.Match.SmallBlind
	}
	if c.Match.BigBlind == 0 {
		c.Match.BigBlind = d.Match.BigBlind
	}
	if c.Match.StartingStack == 0 {
		c.Match.StartingStack = d.Match.StartingStack
	}
	if c.Match.Hands == 0 {
		c.Match.Hands = d.Match.Hands
	}
	if c.Match.TopName == "" {
		c.Match.TopName = d.Match.TopName
	}
	if c.Match.BottomName == "" {
		c.Match.BottomName = d.Match.BottomName
	}
	if c.History.Dir == "" {
		c.History.Dir = d.History.Dir
	}
	if c.History.Filename == "" {
		c.History.Filename = d.History.Filename
	}
	if c.History.FlushIntervalSec == 0 {
		c.History.FlushIntervalSec = d.History.FlushIntervalSec
	}
	if c.History.FlushHands == 0 {
		c.History.FlushHands = d.History.FlushHands
	}
}

// Validate rejects configurations the engine cannot play.
func (c *Config) Validate() error {
	m := c.Match
	if m.SmallBlind <= 0 || m.BigBlind <= 0 {
		return fmt.Errorf("config: blinds must be positive, got %d/%d", m.SmallBlind, m.BigBlind)
	}
	if m.SmallBlind > m.BigBlind {
		return fmt.Errorf("config: small blind %d exceeds big blind %d", m.SmallBlind, m.BigBlind)
	}
	if m.StartingStack < m.BigBlind {
		return fmt.Errorf("config: starting stack %d cannot cover the big blind %d", m.StartingStack, m.BigBlind)
	}
	if m.Hands <= 0 {
		return fmt.Errorf("config: hands must be positive, got %d", m.Hands)
	}
	return nil
}

// FlushInterval returns the archiver flush interval as a duration.
func (h HistorySettings) FlushInterval() time.Duration {
	return time.Duration(h.FlushIntervalSec) * time.Second
}
