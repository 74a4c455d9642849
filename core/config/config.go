// Package config loads collectc.yaml, the optional project file that
// overrides the built-in per-variant defaults. Resolution happens once at
// the CLI boundary; the compiler itself only ever sees explicit options.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when no
// --config flag is given.
const DefaultFile = "collectc.yaml"

// DefaultDebounce is the watch-mode debounce interval used when the config
// specifies none.
const DefaultDebounce = 200 * time.Millisecond

type Config struct {
	Skills       Variant `yaml:"skills"`
	Competencies Variant `yaml:"competencies"`
	Watch        Watch   `yaml:"watch"`
}

// Variant holds the per-family flag defaults.
type Variant struct {
	Meta    string   `yaml:"meta"`
	Dir     string   `yaml:"dir"`
	Out     string   `yaml:"out"`
	SortBy  string   `yaml:"sort_by"`
	Exclude []string `yaml:"exclude"`
}

type Watch struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration parses the configured debounce, falling back to
// DefaultDebounce when unset or unparseable.
func (w Watch) DebounceDuration() time.Duration {
	if w.Debounce == "" {
		return DefaultDebounce
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// Default returns the built-in defaults for both families.
func Default() *Config {
	return &Config{
		Skills: Variant{
			Meta:   "collection.json",
			Dir:    "skills",
			Out:    "dist/collection.json",
			SortBy: "skillName",
		},
		Competencies: Variant{
			Meta:   "competencies.json",
			Dir:    "competencies",
			Out:    "dist/competencies.json",
			SortBy: "name",
		},
	}
}

// Load reads the config file at path, or DefaultFile when path is empty.
// A missing default file is not an error; an explicitly named file must
// exist. Keys absent from the file keep their built-in defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
