package loader

import (
	"os"
	"strings"
)

// EnvLoader loads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYSTORM_")
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYSTORM_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"KEYSTORM_LOG_LEVEL":  "logging.level",
		"KEYSTORM_LOG_FORMAT": "logging.format",
	}
}

// Load returns config path -> raw value for every mapped or prefixed
// variable that is set. Empty values count as set.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			out[path] = val
		}
	}

	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		out[l.envToPath(name)] = value
	}
	return out
}

// envToPath converts KEYSTORM_LUA_INSTRUCTION_LIMIT to lua.instruction_limit.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + key
}
