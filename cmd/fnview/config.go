package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds persistent viewer settings. The view itself (scale and
// offset) is not saved.
type Config struct {
	Function  string  `toml:"function"`   // definition shown at startup
	TickX     float64 `toml:"tick_x"`     // manual x tick spacing, 0 = auto
	TickY     float64 `toml:"tick_y"`     // manual y tick spacing, 0 = auto
	WheelStep float64 `toml:"wheel_step"` // wheel rotation per notch
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Function:  "sin(x)",
		WheelStep: 1,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fnview"
	}
	return filepath.Join(home, ".fnview")
}

// LoadConfig reads the config file at path. Keys missing from the file
// keep their defaults. A missing file is not an error; a malformed one
// returns the defaults together with the decoding error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	if cfg.Function == "" {
		cfg.Function = DefaultConfig().Function
	}
	if !(cfg.WheelStep > 0) {
		cfg.WheelStep = DefaultConfig().WheelStep
	}
	if !validTick(cfg.TickX) {
		cfg.TickX = 0
	}
	if !validTick(cfg.TickY) {
		cfg.TickY = 0
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("# fnview configuration\n"); err != nil {
		f.Close()
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
