// Package config provides YAML-based configuration loading and difficulty
// presets for the simulation.
package config

import (
	"github.com/torvik/delve/internal/dungeon"
	"github.com/torvik/delve/internal/game"
)

// Config contains every tunable the simulation reads.
type Config struct {
	Dungeon    DungeonConfig    `yaml:"dungeon"`
	Player     PlayerConfig     `yaml:"player"`
	Vision     VisionConfig     `yaml:"vision"`
	Run        RunConfig        `yaml:"run"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DungeonConfig defines per-level generation parameters.
type DungeonConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	RoomTarget     int     `yaml:"room_target"`
	MinRoomSize    int     `yaml:"min_room_size"`
	MonsterDensity float64 `yaml:"monster_density"`
	ItemDensity    float64 `yaml:"item_density"`
	MaxAttempts    int     `yaml:"max_attempts"`
}

// PlayerConfig defines the starting player attributes.
type PlayerConfig struct {
	Health int `yaml:"health"`
	Power  int `yaml:"power"`
}

// VisionConfig defines sight parameters shared by player and monsters.
type VisionConfig struct {
	Radius int `yaml:"radius"`
}

// RunConfig defines run-wide structure.
type RunConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// DifficultyConfig names the active preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Options converts the configuration into the game layer's options.
func (c Config) Options() game.Options {
	return game.Options{
		Dungeon: dungeon.Params{
			Width:          c.Dungeon.Width,
			Height:         c.Dungeon.Height,
			RoomTarget:     c.Dungeon.RoomTarget,
			MinRoomSize:    c.Dungeon.MinRoomSize,
			MonsterDensity: c.Dungeon.MonsterDensity,
			ItemDensity:    c.Dungeon.ItemDensity,
			MaxAttempts:    c.Dungeon.MaxAttempts,
		},
		VisionRadius: c.Vision.Radius,
		MaxDepth:     c.Run.MaxDepth,
		PlayerHealth: c.Player.Health,
		PlayerPower:  c.Player.Power,
	}
}
