// Package config loads demo settings from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/planefade/pattern"
	"github.com/lixenwraith/planefade/terminal"
)

const (
	DefaultEffect   = "in"
	DefaultDuration = 2 * time.Second
	DefaultBackend  = "ansi"
	DefaultPattern  = "gradient"
	MaxDuration     = time.Hour
)

// ErrInvalid marks a configuration rejected by Validate
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Effect    string        `yaml:"effect"`     // in, out or pulse
	Duration  time.Duration `yaml:"duration"`   // one fade, or one half of a pulse cycle
	ColorMode string        `yaml:"color_mode"` // auto, truecolor, 256, 16, none
	Backend   string        `yaml:"backend"`    // ansi, tcell or tea
	Pattern   string        `yaml:"pattern"`
	Text      string        `yaml:"text"`
	DefaultBg bool          `yaml:"default_bg"` // leave backgrounds at the terminal default
	Debug     bool          `yaml:"debug"`
	LogDir    string        `yaml:"log_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect:    DefaultEffect,
		Duration:  DefaultDuration,
		ColorMode: "auto",
		Backend:   DefaultBackend,
		Pattern:   DefaultPattern,
		LogDir:    "logs",
	}
}

// Load reads path over the defaults; fields absent from the file keep their default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every enumerated field; all problems are reported together
func (c *Config) Validate() error {
	var errs []error

	switch c.Effect {
	case "in", "out", "pulse":
	default:
		errs = append(errs, fmt.Errorf("effect %q: want in, out or pulse", c.Effect))
	}

	if c.Duration < 0 || c.Duration > MaxDuration {
		errs = append(errs, fmt.Errorf("duration %v: want 0..%v", c.Duration, MaxDuration))
	}

	if _, _, err := terminal.ParseColorMode(c.ColorMode); err != nil {
		errs = append(errs, err)
	}

	switch c.Backend {
	case "ansi", "tcell", "tea":
	default:
		errs = append(errs, fmt.Errorf("backend %q: want ansi, tcell or tea", c.Backend))
	}

	if !pattern.Has(c.Pattern) {
		errs = append(errs, fmt.Errorf("pattern %q: want one of %s", c.Pattern, strings.Join(pattern.Names(), ", ")))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
