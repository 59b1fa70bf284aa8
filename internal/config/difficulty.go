package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Valid reports whether the preset is one of the known names.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// ApplyPreset scales the configuration for a difficulty preset. Easy runs
// are sparser and brighter with a sturdier player; hard runs are denser
// and darker.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	switch preset {
	case DifficultyEasy:
		cfg.Dungeon.MonsterDensity *= 0.6
		cfg.Dungeon.ItemDensity *= 1.5
		cfg.Vision.Radius += 2
		cfg.Player.Health += 5
	case DifficultyHard:
		cfg.Dungeon.MonsterDensity *= 1.5
		cfg.Dungeon.ItemDensity *= 0.7
		if cfg.Vision.Radius > 4 {
			cfg.Vision.Radius -= 2
		}
		cfg.Player.Health -= 5
	}
}
