// Package config loads webjump settings and user-defined webjumps.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/robottwo/webjump/internal/core"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables that override settings,
// e.g. WEBJUMP_PARTIAL_MATCH.
const EnvPrefix = "WEBJUMP_"

type Config struct {
	PartialMatch    bool   `mapstructure:"partial_match" yaml:"partial_match"`
	DefaultWebjumps bool   `mapstructure:"default_webjumps" yaml:"default_webjumps"`
	DeliciousUser   string `mapstructure:"delicious_user" yaml:"delicious_user"`
	LastfmUser      string `mapstructure:"lastfm_user" yaml:"lastfm_user"`
	WebjumpsFile    string `mapstructure:"webjumps_file" yaml:"webjumps_file"`
	History         bool   `mapstructure:"history" yaml:"history"`
	HistoryDB       string `mapstructure:"history_db" yaml:"history_db"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level"`
	Listen          string `mapstructure:"listen" yaml:"listen"`
	Conservative    bool   `mapstructure:"conservative" yaml:"conservative"`
}

// settingKeys lists every key Config understands, in file order.
var settingKeys = []string{
	"partial_match",
	"default_webjumps",
	"delicious_user",
	"lastfm_user",
	"webjumps_file",
	"history",
	"history_db",
	"log_level",
	"listen",
	"conservative",
}

// DefaultConfig returns the settings used when nothing is configured. Empty
// file paths are filled in by ResolvePaths.
func DefaultConfig() *Config {
	return &Config{
		PartialMatch:    true,
		DefaultWebjumps: true,
		History:         true,
		LogLevel:        "info",
		Listen:          "127.0.0.1:8087",
	}
}

// ResolvePaths fills empty file settings with the standard locations and
// expands a leading "~".
func (c *Config) ResolvePaths() {
	if c.WebjumpsFile == "" {
		c.WebjumpsFile = core.WebjumpsFile()
	}
	if c.HistoryDB == "" {
		c.HistoryDB = core.HistoryFile()
	}
	c.WebjumpsFile = core.ExpandHome(c.WebjumpsFile)
	c.HistoryDB = core.ExpandHome(c.HistoryDB)
}

// LoadResult holds the loaded settings and any problems found on the way.
// Problems are not fatal: the affected settings keep their defaults.
type LoadResult struct {
	Config *Config
	Errors []error
}

// Load reads the YAML settings file at path, overlays WEBJUMP_* environment
// variables and decodes the result over DefaultConfig. A missing file is not
// an error. The returned error is only set when the file exists but cannot
// be read.
func Load(path string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	raw := map[string]any{}
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(content, &raw); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("failed to parse config %s: %w", path, err))
				raw = map[string]any{}
			}
			if raw == nil {
				raw = map[string]any{}
			}
		}
	}

	for _, key := range settingKeys {
		if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	decoded := *result.Config
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &decoded,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("invalid config: %w", err))
		return result, nil
	}

	sort.Strings(md.Unused)
	for _, key := range md.Unused {
		result.Errors = append(result.Errors, fmt.Errorf("unknown config key %q", key))
	}

	if _, err := zap.ParseAtomicLevel(decoded.LogLevel); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("invalid log_level %q: %w", decoded.LogLevel, err))
		decoded.LogLevel = DefaultConfig().LogLevel
	}

	result.Config = &decoded
	return result, nil
}

// Marshal renders c as a YAML settings file.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
