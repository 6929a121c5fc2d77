package version

import (
	"bytes"
	"os/exec"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// MinComposeVersion is the oldest compose release that honours
// depends_on conditions from the compose specification.
const MinComposeVersion = "v2.1.1"

// versionRegex matches versions like "27.3.1" or "v2.29.7-desktop.1".
var versionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// Hooks replaced in tests.
var (
	lookPath = exec.LookPath
	runCmd   = func(name string, args ...string) (string, error) {
		cmd := exec.Command(name, args...)
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out
		err := cmd.Run()
		return out.String(), err
	}
)

// RuntimeInfo describes the container runtime that will run a generated project.
type RuntimeInfo struct {
	// Path is the docker binary location.
	Path string `json:"path"`

	// Found indicates the docker binary is in PATH.
	Found bool `json:"found"`

	// Version is the docker engine client version.
	Version string `json:"version,omitempty"`

	// ComposeVersion is the compose plugin version, empty when unavailable.
	ComposeVersion string `json:"composeVersion,omitempty"`

	// Compatible indicates compose can start the generated descriptor.
	Compatible bool `json:"compatible"`

	// Message explains the result.
	Message string `json:"message,omitempty"`
}

// DetectDockerBinary finds docker and its compose plugin. A missing or old
// runtime never blocks generation; callers only warn.
func DetectDockerBinary() RuntimeInfo {
	path, err := lookPath("docker")
	if err != nil {
		return RuntimeInfo{Message: "docker binary not found in PATH"}
	}

	info := RuntimeInfo{Path: path, Found: true}

	out, err := runCmd(path, "version", "--format", "{{.Client.Version}}")
	if err != nil {
		info.Message = "failed to get docker version: " + strings.TrimSpace(firstLine(out, err))
		return info
	}
	info.Version, _ = extractVersion(out)

	out, err = runCmd(path, "compose", "version")
	if err != nil {
		info.Message = "docker compose plugin not available"
		return info
	}
	compose, err := extractVersion(out)
	if err != nil {
		info.Message = err.Error()
		return info
	}
	info.ComposeVersion = compose
	info.Compatible = ComposeCompatible(compose)
	if info.Compatible {
		info.Message = "compatible"
	} else {
		info.Message = "docker compose " + compose + " is older than " + MinComposeVersion
	}
	return info
}

// ComposeCompatible reports whether v is at least MinComposeVersion.
func ComposeCompatible(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(semver.Canonical(v), MinComposeVersion) >= 0
}

// extractVersion returns the first version in output with a "v" prefix.
func extractVersion(output string) (string, error) {
	match := versionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: output}
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}

func firstLine(out string, err error) string {
	if line, _, _ := strings.Cut(strings.TrimSpace(out), "\n"); line != "" {
		return line
	}
	return err.Error()
}

// versionParseError indicates version output could not be parsed.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + strings.TrimSpace(e.output)
}
