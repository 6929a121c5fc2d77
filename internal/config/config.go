// Package config provides configuration loading and management.
package config

import "time"

// OutputConfig controls where projects are generated.
type OutputConfig struct {
	// Base is the directory the project root is created in.
	// Env: BOOTSTACK_OUTPUT_BASE, Default: /out
	Base string `mapstructure:"base" yaml:"base"`
}

// ProjectConfig holds project defaults used when flags are not given.
type ProjectConfig struct {
	// Name is the project name. BOOTSTACK_PROJECT_NAME and the positional
	// argument take precedence over this value.
	Name string `mapstructure:"name" yaml:"name,omitempty"`

	// GroupID is the namespace identifier (e.g. com.example).
	GroupID string `mapstructure:"groupId" yaml:"groupId"`

	// ArtifactID is the backend artifact name. Empty means derive from the project name.
	ArtifactID string `mapstructure:"artifactId" yaml:"artifactId,omitempty"`

	// Packaging is the artifact packaging kind (jar or war).
	Packaging string `mapstructure:"packaging" yaml:"packaging"`

	// JavaVersion is the runtime version of the generated backend.
	JavaVersion string `mapstructure:"javaVersion" yaml:"javaVersion"`

	// BootVersion is the template revision requested from the provider.
	BootVersion string `mapstructure:"bootVersion" yaml:"bootVersion"`

	// Dependencies is the provider dependency set.
	Dependencies []string `mapstructure:"dependencies" yaml:"dependencies"`
}

// InitializrConfig configures the remote template and metadata provider.
type InitializrConfig struct {
	// URL is the archive endpoint.
	URL string `mapstructure:"url" yaml:"url"`

	// MetadataURL is the revision metadata endpoint. Empty disables validation.
	MetadataURL string `mapstructure:"metadataUrl" yaml:"metadataUrl"`

	// Type is the template kind (e.g. maven-project).
	Type string `mapstructure:"type" yaml:"type"`

	// Language is the source-language marker (e.g. java).
	Language string `mapstructure:"language" yaml:"language"`

	// Timeout bounds the archive download.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// MetadataTimeout bounds the metadata query.
	MetadataTimeout time.Duration `mapstructure:"metadataTimeout" yaml:"metadataTimeout"`

	// SkipValidation skips the revision check entirely.
	SkipValidation bool `mapstructure:"skipValidation" yaml:"skipValidation"`
}

// BackendConfig configures the generated backend service.
type BackendConfig struct {
	// Port is the backend service port, inside and outside the container.
	Port int `mapstructure:"port" yaml:"port"`

	// PublicURL is the backend address reachable from a browser.
	PublicURL string `mapstructure:"publicUrl" yaml:"publicUrl"`

	// MemoryLimit is the JVM heap ceiling passed at launch (e.g. 512m).
	MemoryLimit string `mapstructure:"memoryLimit" yaml:"memoryLimit"`
}

// DatabaseConfig configures the generated database service.
type DatabaseConfig struct {
	Image    string `mapstructure:"image" yaml:"image"`
	Name     string `mapstructure:"name" yaml:"name,omitempty"`
	User     string `mapstructure:"user" yaml:"user,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the bootstack CLI configuration.
// Loaded from ~/.bootstack/config.yaml and BOOTSTACK_* environment variables.
type Config struct {
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Project    ProjectConfig    `mapstructure:"project" yaml:"project"`
	Initializr InitializrConfig `mapstructure:"initializr" yaml:"initializr"`
	Backend    BackendConfig    `mapstructure:"backend" yaml:"backend"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`

	// Platforms lists the host operating systems generation may run on.
	Platforms []string `mapstructure:"platforms" yaml:"platforms"`
}

// Defaults.
const (
	DefaultProjectName   = "demo"
	DefaultOutputBase    = "/out"
	DefaultGroupID       = "com.example"
	DefaultPackaging     = "jar"
	DefaultJavaVersion   = "17"
	DefaultBootVersion   = "3.3.5"
	DefaultInitializrURL = "https://start.spring.io/starter.zip"
	DefaultMetadataURL   = "https://start.spring.io/metadata/client"
	DefaultBackendPort   = 8080
	DefaultPublicURL     = "http://localhost:8080"
	DefaultMemoryLimit   = "512m"
	DefaultDatabaseImage = "postgres:16-alpine"

	// DefaultTimeout bounds the archive download.
	DefaultTimeout = 60 * time.Second

	// DefaultMetadataTimeout bounds the revision metadata query.
	DefaultMetadataTimeout = 10 * time.Second
)

// DefaultDependencies is the provider dependency set requested by default.
// postgresql and h2 back the prod/dev and test profiles respectively.
var DefaultDependencies = []string{"web", "data-jpa", "security", "validation", "postgresql", "h2"}

// DefaultConfig returns a Config with all default values populated.
// Used by `bootstack config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Base: DefaultOutputBase},
		Project: ProjectConfig{
			GroupID:      DefaultGroupID,
			Packaging:    DefaultPackaging,
			JavaVersion:  DefaultJavaVersion,
			BootVersion:  DefaultBootVersion,
			Dependencies: append([]string(nil), DefaultDependencies...),
		},
		Initializr: InitializrConfig{
			URL:             DefaultInitializrURL,
			MetadataURL:     DefaultMetadataURL,
			Type:            "maven-project",
			Language:        "java",
			Timeout:         DefaultTimeout,
			MetadataTimeout: DefaultMetadataTimeout,
		},
		Backend: BackendConfig{
			Port:        DefaultBackendPort,
			PublicURL:   DefaultPublicURL,
			MemoryLimit: DefaultMemoryLimit,
		},
		Database:  DatabaseConfig{Image: DefaultDatabaseImage},
		Platforms: []string{"linux", "darwin"},
	}
}
