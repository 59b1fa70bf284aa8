package config

import (
	_ "embed"
)

//go:embed defaults/delve.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, used when no config
// file is found and as the fallback if the embedded YAML fails to parse.
func DefaultConfig() Config {
	return Config{
		Dungeon: DungeonConfig{
			Width:          60,
			Height:         24,
			RoomTarget:     7,
			MinRoomSize:    5,
			MonsterDensity: 1.5,
			ItemDensity:    1.0,
			MaxAttempts:    20,
		},
		Player: PlayerConfig{
			Health: 20,
			Power:  3,
		},
		Vision: VisionConfig{
			Radius: 8,
		},
		Run: RunConfig{
			MaxDepth: 10,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}
