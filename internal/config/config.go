// Package config loads the TOML configuration, creating it with
// defaults on first launch.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskdeck.db"
	DefaultLogName        = "taskdeck.log"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Edit           string `toml:"edit"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	ClearCompleted string `toml:"clear_completed"`
	Search         string `toml:"search"`
	Filter         string `toml:"filter"`
	Category       string `toml:"category"`
	Sort           string `toml:"sort"`
	Export         string `toml:"export"`
	Theme          string `toml:"theme"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	LogPath       string `toml:"log_path"`
	ExportDir     string `toml:"export_dir"`
	DefaultFilter string `toml:"default_filter"`
	DefaultSort   string `toml:"default_sort"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath places the config under the user config dir,
// falling back to the working directory when that is unavailable.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, "taskdeck", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(filepath.Dir(path), DefaultLogName)
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		LogPath:       filepath.Join(dir, DefaultLogName),
		ExportDir:     ".",
		DefaultFilter: "all",
		DefaultSort:   "dateAdded",
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Edit:           "e",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			ClearCompleted: "c",
			Search:         "/",
			Filter:         "f",
			Category:       "g",
			Sort:           "s",
			Export:         "x",
			Theme:          "t",
			Confirm:        "enter",
			Cancel:         "esc",
		},
	}
}
