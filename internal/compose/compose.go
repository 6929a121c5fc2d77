// Package compose models the orchestration descriptor that builds and wires
// the database, backend and frontend services of a generated project.
package compose

import (
	"bytes"
	"fmt"
	"path"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bootstack/cli/internal/project"
	"github.com/bootstack/cli/internal/templates"
)

// Service names in the descriptor.
const (
	ServiceDatabase = "db"
	ServiceBackend  = "backend"
	ServiceFrontend = "frontend"

	// NetworkName is the single network every service joins.
	NetworkName = "app-net"

	// VolumeName holds the database files across service recreation.
	VolumeName = "db-data"

	// ConditionHealthy waits for the dependency's health check to pass.
	ConditionHealthy = "service_healthy"

	postgresDataDir = "/var/lib/postgresql/data"
)

// File is a compose file.
type File struct {
	Services map[string]Service `yaml:"services"`
	Networks map[string]Network `yaml:"networks,omitempty"`
	Volumes  map[string]Volume  `yaml:"volumes,omitempty"`
}

// Service is one compose service.
type Service struct {
	Image       string                `yaml:"image,omitempty"`
	Build       *BuildSection         `yaml:"build,omitempty"`
	Restart     string                `yaml:"restart,omitempty"`
	Environment map[string]string     `yaml:"environment,omitempty"`
	Ports       []string              `yaml:"ports,omitempty"`
	Volumes     []string              `yaml:"volumes,omitempty"`
	DependsOn   map[string]Dependency `yaml:"depends_on,omitempty"`
	Healthcheck *Healthcheck          `yaml:"healthcheck,omitempty"`
	Networks    []string              `yaml:"networks,omitempty"`
}

// BuildSection is a service build section.
type BuildSection struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
}

// Dependency is a long-form depends_on entry.
type Dependency struct {
	Condition string `yaml:"condition"`
}

// Healthcheck is a service health check command.
type Healthcheck struct {
	Test     []string `yaml:"test"`
	Interval string   `yaml:"interval,omitempty"`
	Timeout  string   `yaml:"timeout,omitempty"`
	Retries  int      `yaml:"retries,omitempty"`
}

// Network is a compose network.
type Network struct {
	Driver string `yaml:"driver,omitempty"`
}

// Volume is a named compose volume. The operator removes it with
// `docker compose down -v`.
type Volume struct{}

// BackendContext is the backend build context relative to the project root.
func BackendContext(data templates.Data) string {
	return "./" + path.Join(project.BackendDirName(data.ProjectName), data.ArtifactID)
}

// FrontendContext is the frontend build context relative to the project root.
func FrontendContext(data templates.Data) string {
	return "./" + project.FrontendDirName(data.ProjectName)
}

// BackendEnvironment binds every variable of the env contract for the prod
// profile. The keys are exactly the names the profiles read.
func BackendEnvironment(data templates.Data) map[string]string {
	env := data.Env
	return map[string]string{
		env.Profile:  "prod",
		env.Host:     data.Database.Service,
		env.Port:     strconv.Itoa(data.Database.Port),
		env.Name:     data.Database.Name,
		env.User:     data.Database.User,
		env.Password: data.Database.Password,
	}
}

// Build assembles the descriptor for data. The database is not published
// on the host; the backend starts once the database reports healthy.
func Build(data templates.Data) File {
	db := data.Database
	port := strconv.Itoa(data.ServerPort)
	front := strconv.Itoa(data.FrontendPort)

	return File{
		Services: map[string]Service{
			ServiceDatabase: {
				Image:   db.Image,
				Restart: "unless-stopped",
				Environment: map[string]string{
					"POSTGRES_DB":       db.Name,
					"POSTGRES_USER":     db.User,
					"POSTGRES_PASSWORD": db.Password,
				},
				Volumes: []string{VolumeName + ":" + postgresDataDir},
				Healthcheck: &Healthcheck{
					Test:     []string{"CMD-SHELL", fmt.Sprintf("pg_isready -U %s -d %s", db.User, db.Name)},
					Interval: "5s",
					Timeout:  "5s",
					Retries:  10,
				},
				Networks: []string{NetworkName},
			},
			ServiceBackend: {
				Build:       &BuildSection{Context: BackendContext(data)},
				Restart:     "unless-stopped",
				Environment: BackendEnvironment(data),
				Ports:       []string{port + ":" + port},
				DependsOn: map[string]Dependency{
					ServiceDatabase: {Condition: ConditionHealthy},
				},
				Networks: []string{NetworkName},
			},
			ServiceFrontend: {
				Build:    &BuildSection{Context: FrontendContext(data)},
				Ports:    []string{front + ":" + front},
				Networks: []string{NetworkName},
			},
		},
		Networks: map[string]Network{NetworkName: {Driver: "bridge"}},
		Volumes:  map[string]Volume{VolumeName: {}},
	}
}

// Marshal encodes f as YAML. Map keys are sorted, so output is stable.
func (f File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	err := encoder.Encode(f)
	if closeErr := encoder.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("encoding compose file: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a compose file.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decoding compose file: %w", err)
	}
	return f, nil
}
