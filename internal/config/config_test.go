package config

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keystorm-inflection/internal/config/loader"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)

	d, err := cfg.LuaTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestLoadWithFile(t *testing.T) {
	fsys := fstest.MapFS{
		"settings.toml": {Data: []byte(`
[logging]
level = "debug"

[inflection]
uncountable = ["equipment"]

[inflection.irregular]
cactus = "cacti"

[lua]
instruction_limit = 10
`)},
	}

	cfg, err := LoadWith(loader.NewFileLoaderWithFS(fsys), nil, "settings.toml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "defaults survive a partial file")
	assert.Equal(t, map[string]string{"cactus": "cacti"}, cfg.Inflection.Irregular)
	assert.Equal(t, []string{"equipment"}, cfg.Inflection.Uncountable)
	assert.Equal(t, int64(10), cfg.Lua.InstructionLimit)
	assert.Equal(t, "5s", cfg.Lua.Timeout)
}

func TestLoadYAMLFile(t *testing.T) {
	fsys := fstest.MapFS{
		"settings.yaml": {Data: []byte("logging:\n  format: json\nlua:\n  timeout: 250ms\n")},
	}

	cfg, err := LoadWith(loader.NewFileLoaderWithFS(fsys), nil, "settings.yaml")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)

	d, err := cfg.LuaTimeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("KEYSTORM_LOG_LEVEL", "error")
	t.Setenv("KEYSTORM_LUA_INSTRUCTION_LIMIT", "42")
	fsys := fstest.MapFS{
		"settings.toml": {Data: []byte("[logging]\nlevel = \"debug\"\n")},
	}

	cfg, err := LoadWith(loader.NewFileLoaderWithFS(fsys), loader.NewEnvLoader(EnvPrefix), "settings.toml")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, int64(42), cfg.Lua.InstructionLimit)
}

func TestEnvBadInteger(t *testing.T) {
	t.Setenv("KEYSTORM_LUA_INSTRUCTION_LIMIT", "lots")

	_, err := LoadWith(loader.NewFileLoaderWithFS(fstest.MapFS{}), loader.NewEnvLoader(EnvPrefix), "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWith(loader.NewFileLoaderWithFS(fstest.MapFS{}), nil, "nowhere.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"
	cfg.Lua.InstructionLimit = -1
	cfg.Lua.Timeout = "soon"
	cfg.Inflection.Irregular = map[string]string{"ox": ""}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	for _, path := range []string{"logging.level", "logging.format", "lua.instruction_limit", "lua.timeout", "inflection.irregular"} {
		assert.Contains(t, err.Error(), path)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "json"
	lc := cfg.LoggerConfig()
	assert.Equal(t, "info", lc.Level)
	assert.Equal(t, "json", lc.Format)
}
