// Package config loads keystorm-inflect settings.
//
// Settings are layered, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file chosen by extension
//  3. Environment variables (KEYSTORM_LOG_LEVEL, KEYSTORM_LOG_FORMAT and
//     any KEYSTORM_<SECTION>_<KEY>)
//
// Command-line flags are applied by the caller on top of the result.
//
// Example settings.toml:
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[inflection]
//	uncountable = ["equipment", "sheep"]
//
//	[inflection.irregular]
//	cactus = "cacti"
//
//	[lua]
//	instruction_limit = 100000
//	timeout = "2s"
package config
