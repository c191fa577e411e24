package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/keystorm-inflection/internal/config/loader"
	"github.com/dshills/keystorm-inflection/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "KEYSTORM_"

// Config holds every setting of the tool.
type Config struct {
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Inflection InflectionConfig `toml:"inflection" yaml:"inflection"`
	Lua        LuaConfig        `toml:"lua" yaml:"lua"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// InflectionConfig extends the built-in word tables.
type InflectionConfig struct {
	// Irregular maps singular forms to plural forms.
	Irregular map[string]string `toml:"irregular" yaml:"irregular"`
	// Uncountable words are returned unchanged by pluralize and singularize.
	Uncountable []string `toml:"uncountable" yaml:"uncountable"`
}

// LuaConfig limits script execution.
type LuaConfig struct {
	// InstructionLimit caps host API calls per script run. Zero disables it.
	InstructionLimit int64 `toml:"instruction_limit" yaml:"instruction_limit"`
	// Timeout is a Go duration string ("5s"). Empty means the default.
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Lua: LuaConfig{
			InstructionLimit: 1_000_000,
			Timeout:          "5s",
		},
	}
}

// Load builds a configuration from defaults, the file at path (skipped when
// path is empty or the file is missing) and the environment.
func Load(path string) (*Config, error) {
	return LoadWith(loader.NewFileLoader(), loader.NewEnvLoader(EnvPrefix), path)
}

// LoadWith is Load with explicit file and environment loaders.
func LoadWith(files *loader.FileLoader, env *loader.EnvLoader, path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := files.LoadInto(path, cfg); err != nil {
			return nil, err
		}
	}
	if env != nil {
		if err := cfg.applyEnv(env.Load()); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(values map[string]string) error {
	for path, raw := range values {
		switch path {
		case "logging.level":
			c.Logging.Level = raw
		case "logging.format":
			c.Logging.Format = raw
		case "lua.instruction_limit":
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return &ValidationError{Path: path, Value: raw, Message: "must be an integer"}
			}
			c.Lua.InstructionLimit = n
		case "lua.timeout":
			c.Lua.Timeout = raw
		}
	}
	return nil
}

// Validate checks every setting and joins all failures into one error.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{
			Path: "logging.level", Value: c.Logging.Level,
			Message: "must be one of " + strings.Join(logging.Levels, ", "),
		})
	}
	if f := strings.ToLower(c.Logging.Format); f != "" && !slices.Contains([]string{"text", "json"}, f) {
		errs = append(errs, &ValidationError{Path: "logging.format", Value: c.Logging.Format, Message: "must be text or json"})
	}
	if c.Lua.InstructionLimit < 0 {
		errs = append(errs, &ValidationError{Path: "lua.instruction_limit", Value: c.Lua.InstructionLimit, Message: "must not be negative"})
	}
	if _, err := c.LuaTimeout(); err != nil {
		errs = append(errs, &ValidationError{Path: "lua.timeout", Value: c.Lua.Timeout, Message: "must be a duration"})
	}
	for singular, plural := range c.Inflection.Irregular {
		if strings.TrimSpace(singular) == "" || strings.TrimSpace(plural) == "" {
			errs = append(errs, &ValidationError{
				Path: "inflection.irregular", Value: fmt.Sprintf("%q = %q", singular, plural),
				Message: "words must not be empty",
			})
		}
	}
	return errors.Join(errs...)
}

// LuaTimeout parses Lua.Timeout; an empty value yields zero.
func (c *Config) LuaTimeout() (time.Duration, error) {
	if c.Lua.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Lua.Timeout)
}

// LoggerConfig returns the settings in the logging package's form.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: c.Logging.Format}
}
