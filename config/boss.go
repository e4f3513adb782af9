package config

import (
	"github.com/BurntSushi/toml"
)

type Boss struct {
	Name       string  `toml:"name"`
	Multiplier float64 `toml:"multiplier"`
	Lore       string  `toml:"lore"`
	ImageURL   string  `toml:"image_url"`
}

type bossFile struct {
	Bosses []Boss `toml:"bosses"`
}

// LoadBosses reads the event boss table. A missing path is not an
// error; it means no boss events are configured.
func LoadBosses(path string) ([]Boss, error) {
	if path == "" {
		return nil, nil
	}

	var f bossFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, err
	}

	return f.Bosses, nil
}

// FindBoss returns the boss with the given name, or nil.
func FindBoss(bosses []Boss, name string) *Boss {
	for i := range bosses {
		if bosses[i].Name == name {
			return &bosses[i]
		}
	}

	return nil
}
