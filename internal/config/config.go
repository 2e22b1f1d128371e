// Package config loads arcucheck.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the name looked up when walking up from the working directory.
const FileName = "arcucheck.toml"

// Config is the decoded configuration. Fields left out of the file keep the
// values of Default.
type Config struct {
	Path      string          `toml:"-"` // empty when no file was found
	Generator GeneratorConfig `toml:"generator"`
	Report    ReportConfig    `toml:"report"`
	Batch     BatchConfig     `toml:"batch"`
	Cache     CacheConfig     `toml:"cache"`
}

type GeneratorConfig struct {
	Command []string `toml:"command"`
	Timeout Duration `toml:"timeout"`
	// Dir is the working directory of the command, relative to the config
	// file. Defaults to the directory holding the config file.
	Dir string `toml:"dir"`
}

type ReportConfig struct {
	Format string `toml:"format"`
	Max    int    `toml:"max"`
	Color  string `toml:"color"`
}

type BatchConfig struct {
	Jobs    int    `toml:"jobs"`
	Pattern string `toml:"pattern"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Duration decodes TOML strings such as "90s" or "2m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var (
	reportFormats = []string{"pretty", "short", "json"}
	colorModes    = []string{"auto", "on", "off"}
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{Timeout: Duration{2 * time.Minute}},
		Report:    ReportConfig{Format: "pretty", Max: 200, Color: "auto"},
		Batch:     BatchConfig{Pattern: "*.puml"},
		Cache:     CacheConfig{Enabled: true},
	}
}

// Root is the directory holding the config file, or "" without one.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// GeneratorDir resolves Generator.Dir against Root.
func (c Config) GeneratorDir() string {
	dir := c.Generator.Dir
	switch {
	case dir == "":
		return c.Root()
	case filepath.IsAbs(dir):
		return dir
	}
	return filepath.Join(c.Root(), filepath.FromSlash(dir))
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Resolve loads the explicit path when given, otherwise the nearest
// FileName above startDir, otherwise Default.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes and validates one file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse decodes TOML text; path is used for the error messages and Root.
func Parse(path, text string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.Path = path
	if err := cfg.validate(meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate(meta toml.MetaData) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", c.Path, fmt.Sprintf(format, args...)))
	}

	if meta.IsDefined("generator", "command") {
		if len(c.Generator.Command) == 0 || strings.TrimSpace(c.Generator.Command[0]) == "" {
			bad("[generator].command must name a program")
		}
	}
	if meta.IsDefined("generator", "timeout") && c.Generator.Timeout.Duration < 0 {
		bad("[generator].timeout must not be negative")
	}

	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if !slices.Contains(reportFormats, c.Report.Format) {
		bad("[report].format %q must be one of %s", c.Report.Format, strings.Join(reportFormats, "|"))
	}
	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
	if !slices.Contains(colorModes, c.Report.Color) {
		bad("[report].color %q must be one of %s", c.Report.Color, strings.Join(colorModes, "|"))
	}
	if c.Report.Max < 0 {
		bad("[report].max must not be negative")
	}

	if c.Batch.Jobs < 0 {
		bad("[batch].jobs must not be negative")
	}
	if meta.IsDefined("batch", "pattern") {
		if _, err := filepath.Match(c.Batch.Pattern, "x"); err != nil || c.Batch.Pattern == "" {
			bad("[batch].pattern %q is not a valid glob", c.Batch.Pattern)
		}
	}
	return errors.Join(errs...)
}
