// Package project holds the immutable generation input and the directory
// layout derived from it.
package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	oerrors "github.com/bootstack/cli/internal/errors"
)

// Spec is the immutable input of one generation run.
type Spec struct {
	// Name is the project name; it names the project root and both service directories.
	Name string

	// BasePath is the directory the project root is created in.
	BasePath string

	// BootVersion is the template revision requested from the provider.
	BootVersion string

	// JavaVersion is the runtime version of the generated backend.
	JavaVersion string

	// Dependencies is the provider dependency set.
	Dependencies []string

	// GroupID is the dotted namespace identifier (e.g. com.example).
	GroupID string

	// ArtifactID names the backend artifact and its directory.
	ArtifactID string

	// Packaging is the artifact packaging kind (jar or war).
	Packaging string
}

var (
	groupSegment = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	javaVersion  = regexp.MustCompile(`^[1-9][0-9]*$`)
)

var packagingKinds = map[string]bool{"jar": true, "war": true}

// Validate checks every field before any filesystem or network work happens.
func (s Spec) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if strings.TrimSpace(s.BasePath) == "" {
		return oerrors.NewValidationError("output base path cannot be empty", "output", "")
	}
	if err := ValidateName(s.ArtifactID); err != nil {
		return oerrors.NewValidationError(
			fmt.Sprintf("invalid artifact id %q", s.ArtifactID), "artifact",
			"Artifact ids use letters, digits, hyphens and underscores and start with a letter.")
	}
	if s.GroupID == "" {
		return oerrors.NewValidationError("group id cannot be empty", "group", "")
	}
	for _, seg := range strings.Split(s.GroupID, ".") {
		if !groupSegment.MatchString(seg) {
			return oerrors.NewValidationError(
				fmt.Sprintf("invalid group id %q: segment %q", s.GroupID, seg), "group",
				"Group ids are dot-separated lowercase identifiers, e.g. com.example.")
		}
	}
	if !javaVersion.MatchString(s.JavaVersion) {
		return oerrors.NewValidationError(
			fmt.Sprintf("invalid java version %q", s.JavaVersion), "java-version",
			"Use a major version number such as 17 or 21.")
	}
	if !packagingKinds[s.Packaging] {
		return oerrors.NewValidationError(
			fmt.Sprintf("unknown packaging %q", s.Packaging), "packaging",
			"Valid packaging kinds: jar, war")
	}
	if s.BootVersion == "" {
		return oerrors.NewValidationError("template revision cannot be empty", "boot-version", "")
	}
	return nil
}

// ValidateName checks a project or artifact name: a letter followed by
// letters, digits, hyphens or underscores.
func ValidateName(name string) error {
	if name == "" {
		return oerrors.NewValidationError("project name cannot be empty", "name", "")
	}

	for _, r := range name {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_') {
			return oerrors.NewValidationError(
				fmt.Sprintf("invalid project name %q: contains invalid character %q", name, r), "name",
				"Use letters, digits, hyphens and underscores.")
		}
	}

	if !unicode.IsLetter(rune(name[0])) {
		return oerrors.NewValidationError(
			fmt.Sprintf("invalid project name %q: must start with a letter", name), "name", "")
	}

	return nil
}

// PackageName is the root source package: group and artifact joined with a
// dot, with characters that are not valid in a package segment dropped.
func (s Spec) PackageName() string {
	return s.GroupID + "." + sanitizeSegment(s.ArtifactID)
}

// ApplicationClass is the name of the provider-generated entry point class.
func (s Spec) ApplicationClass() string {
	return PascalCase(s.ArtifactID) + "Application"
}

// DependencyList is the comma-joined dependency set sent to the provider.
func (s Spec) DependencyList() string {
	return strings.Join(s.Dependencies, ",")
}

// NamespacePath converts a dotted namespace identifier into a relative
// filesystem path by replacing every separator.
func NamespacePath(id string) string {
	return filepath.FromSlash(strings.ReplaceAll(id, ".", "/"))
}

// sanitizeSegment lowercases s and drops characters a package segment cannot hold.
func sanitizeSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "app" + out
	}
	return out
}

// PascalCase converts a kebab-case or snake_case string to PascalCase.
// Examples: "my-app" -> "MyApp", "my_service" -> "MyService"
func PascalCase(s string) string {
	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '-' || r == '_' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
