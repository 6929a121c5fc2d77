package config

import (
	"os"

	"github.com/bootstack/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceEnv indicates value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceArg indicates value came from a positional argument.
	SourceArg ConfigSource = "arg"
	// SourceFlag indicates value came from a command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceConfig indicates value came from the config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ProjectNameEnv is the environment override for the project name.
const ProjectNameEnv = "BOOTSTACK_PROJECT_NAME"

// ResolvedValue is a configuration value with its source.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveProjectNameOptions contains options for project name resolution.
type ResolveProjectNameOptions struct {
	// Args are the command's positional arguments (at most one is used).
	Args []string
	// ConfigValue is project.name from the config file (empty if not set).
	ConfigValue string
}

// ResolveProjectName resolves the project name using precedence:
// (1) BOOTSTACK_PROJECT_NAME env, (2) positional argument,
// (3) project.name from the config file, (4) DefaultProjectName.
func ResolveProjectName(opts ResolveProjectNameOptions) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceEnv, os.Getenv(ProjectNameEnv)},
		{SourceArg, firstArg(opts.Args)},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, DefaultProjectName},
	}
	return pick("project.name", candidates)
}

// ResolveFlag resolves a value that a flag may override:
// (1) flag when explicitly set, (2) config/env value, (3) fallback.
func ResolveFlag(key, flagValue string, flagChanged bool, configValue, fallback string) ResolvedValue {
	flag := ""
	if flagChanged {
		flag = flagValue
	}
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flag},
		{SourceConfig, configValue},
		{SourceDefault, fallback},
	}
	return pick(key, candidates)
}

func pick(key string, candidates []struct {
	source ConfigSource
	value  string
}) ResolvedValue {
	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			result.Shadowed[c.source] = c.value
		}
	}
	return result
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
