package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for bootstack configuration.
const envPrefix = "BOOTSTACK"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with defaults registered,
// so every key can be overridden by a BOOTSTACK_* environment variable.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("output.base", d.Output.Base)
	v.SetDefault("project.name", "")
	v.SetDefault("project.groupId", d.Project.GroupID)
	v.SetDefault("project.artifactId", "")
	v.SetDefault("project.packaging", d.Project.Packaging)
	v.SetDefault("project.javaVersion", d.Project.JavaVersion)
	v.SetDefault("project.bootVersion", d.Project.BootVersion)
	v.SetDefault("project.dependencies", d.Project.Dependencies)
	v.SetDefault("initializr.url", d.Initializr.URL)
	v.SetDefault("initializr.metadataUrl", d.Initializr.MetadataURL)
	v.SetDefault("initializr.type", d.Initializr.Type)
	v.SetDefault("initializr.language", d.Initializr.Language)
	v.SetDefault("initializr.timeout", d.Initializr.Timeout)
	v.SetDefault("initializr.metadataTimeout", d.Initializr.MetadataTimeout)
	v.SetDefault("initializr.skipValidation", false)
	v.SetDefault("backend.port", d.Backend.Port)
	v.SetDefault("backend.publicUrl", d.Backend.PublicURL)
	v.SetDefault("backend.memoryLimit", d.Backend.MemoryLimit)
	v.SetDefault("database.image", d.Database.Image)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("platforms", d.Platforms)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error. Environment variables take precedence
// over file values; file values take precedence over defaults.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
