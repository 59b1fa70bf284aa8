package main

import (
	"fmt"
	"time"

	"github.com/torvik/delve/internal/config"
)

// resolveConfig loads the configuration and applies the difficulty flag.
func resolveConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("cannot load config: %w", err)
	}

	preset := config.DifficultyPreset(flagDifficulty)
	if flagDifficulty != "" {
		if !preset.Valid() {
			return config.Config{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	} else if cfg.Difficulty.Preset != "" {
		config.ApplyPreset(&cfg, cfg.Difficulty.Preset)
	}
	return cfg, nil
}

// resolveSeed turns the seed flag into an actual seed.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
