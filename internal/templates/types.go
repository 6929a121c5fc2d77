package templates

import (
	"strings"

	"github.com/bootstack/cli/internal/config"
	"github.com/bootstack/cli/internal/project"
)

// FrontendPort is the port the static file server listens on.
const FrontendPort = 80

// Env is the environment variable contract shared by the configuration
// profiles and the orchestration descriptor. Every name the descriptor
// binds must be one a profile reads.
type Env struct {
	Profile  string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// DefaultEnv is the contract used by every generated project.
var DefaultEnv = Env{
	Profile:  "SPRING_PROFILES_ACTIVE",
	Host:     "DB_HOST",
	Port:     "DB_PORT",
	Name:     "DB_NAME",
	User:     "DB_USER",
	Password: "DB_PASSWORD",
}

// Database describes the generated database service.
type Database struct {
	Image    string
	Service  string
	Port     int
	Name     string
	User     string
	Password string
}

// Data is the parameter record every template renders from.
type Data struct {
	ProjectName      string
	ArtifactID       string
	GroupID          string
	PackageName      string
	PackagePath      string
	ApplicationClass string
	JavaVersion      string
	BootVersion      string
	Packaging        string
	Dependencies     []string

	// ServerPort is the backend port, inside and outside its container.
	ServerPort int

	// PublicURL is the backend address reachable from a browser.
	PublicURL string

	// FrontendPort is the static file server port.
	FrontendPort int

	// FrontendOrigin is the browser origin allowed by the backend CORS policy.
	FrontendOrigin string

	// MemoryLimit is the JVM heap ceiling (e.g. 512m).
	MemoryLimit string

	Database Database
	Env      Env
}

// NewData builds the parameter record from a validated spec and the loaded configuration.
// Database name, user and password default to the project name with
// characters outside [a-z0-9_] dropped.
func NewData(spec project.Spec, cfg *config.Config) Data {
	ident := dbIdentifier(spec.Name)
	db := Database{
		Image:    cfg.Database.Image,
		Service:  "db",
		Port:     5432,
		Name:     or(cfg.Database.Name, ident),
		User:     or(cfg.Database.User, ident),
		Password: or(cfg.Database.Password, ident),
	}

	return Data{
		ProjectName:      spec.Name,
		ArtifactID:       spec.ArtifactID,
		GroupID:          spec.GroupID,
		PackageName:      spec.PackageName(),
		PackagePath:      strings.ReplaceAll(spec.PackageName(), ".", "/"),
		ApplicationClass: spec.ApplicationClass(),
		JavaVersion:      spec.JavaVersion,
		BootVersion:      spec.BootVersion,
		Packaging:        spec.Packaging,
		Dependencies:     append([]string(nil), spec.Dependencies...),
		ServerPort:       cfg.Backend.Port,
		PublicURL:        strings.TrimSuffix(cfg.Backend.PublicURL, "/"),
		FrontendPort:     FrontendPort,
		FrontendOrigin:   "http://localhost",
		MemoryLimit:      cfg.Backend.MemoryLimit,
		Database:         db,
		Env:              DefaultEnv,
	}
}

func dbIdentifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == '-':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "app"
	}
	return b.String()
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
