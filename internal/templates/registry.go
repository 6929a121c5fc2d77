package templates

import (
	"fmt"
	"path"
	"strings"
)

// Role names one logical generated file.
type Role string

const (
	RoleAPI             Role = "api"
	RoleSecurity        Role = "security"
	RoleIntegrationTest Role = "integration-test"
	RoleProfileDefault  Role = "profile-default"
	RoleProfileDev      Role = "profile-dev"
	RoleProfileTest     Role = "profile-test"
	RoleProfileProd     Role = "profile-prod"
	RoleBackendDocker   Role = "backend-dockerfile"
	RoleFrontendDocker  Role = "frontend-dockerfile"
	RoleFrontendMarkup  Role = "frontend-markup"
	RoleFrontendStyle   Role = "frontend-stylesheet"
	RoleFrontendScript  Role = "frontend-script"
)

// Group is the generation step a template belongs to.
type Group string

const (
	// GroupBackend is written by the file synthesizer under the backend project.
	GroupBackend Group = "backend"

	// GroupDescriptor is written by the container descriptor writer.
	GroupDescriptor Group = "descriptor"

	// GroupFrontend is written by the frontend scaffolder.
	GroupFrontend Group = "frontend"
)

// packageToken in a Target is replaced with Data.PackagePath.
const packageToken = "__package__"

// Template is one registered file template.
type Template struct {
	Role  Role
	Group Group

	// Source is the template path inside TemplateFS, relative to files/.
	Source string

	// Target is the output path relative to the service directory, slash-separated.
	Target string

	// Description is shown next to the file in the generated tree.
	Description string

	// Requires names a provider dependency the file needs. Empty means always generated.
	Requires string

	// Profile marks configuration profiles, which must render to well-formed YAML.
	Profile bool
}

// TargetPath returns the output path for data, slash-separated.
func (t Template) TargetPath(data Data) string {
	return strings.ReplaceAll(t.Target, packageToken, data.PackagePath)
}

// registry lists every template in generation order.
var registry = []Template{
	{
		Role: RoleAPI, Group: GroupBackend, Requires: "web",
		Source:      "backend/src/main/java/__package__/api/TestController.java.tmpl",
		Target:      "src/main/java/__package__/api/TestController.java",
		Description: "API stub (/api/test)",
	},
	{
		Role: RoleSecurity, Group: GroupBackend, Requires: "security",
		Source:      "backend/src/main/java/__package__/config/SecurityConfig.java.tmpl",
		Target:      "src/main/java/__package__/config/SecurityConfig.java",
		Description: "Access-control policy",
	},
	{
		Role: RoleIntegrationTest, Group: GroupBackend, Requires: "web",
		Source:      "backend/src/test/java/__package__/api/TestControllerTests.java.tmpl",
		Target:      "src/test/java/__package__/api/TestControllerTests.java",
		Description: "Endpoint integration test",
	},
	{
		Role: RoleProfileDefault, Group: GroupBackend, Profile: true,
		Source:      "backend/src/main/resources/application.yml.tmpl",
		Target:      "src/main/resources/application.yml",
		Description: "Default profile",
	},
	{
		Role: RoleProfileDev, Group: GroupBackend, Profile: true,
		Source:      "backend/src/main/resources/application-dev.yml.tmpl",
		Target:      "src/main/resources/application-dev.yml",
		Description: "Dev profile (local database)",
	},
	{
		Role: RoleProfileTest, Group: GroupBackend, Profile: true,
		Source:      "backend/src/main/resources/application-test.yml.tmpl",
		Target:      "src/main/resources/application-test.yml",
		Description: "Test profile (in-memory database)",
	},
	{
		Role: RoleProfileProd, Group: GroupBackend, Profile: true,
		Source:      "backend/src/main/resources/application-prod.yml.tmpl",
		Target:      "src/main/resources/application-prod.yml",
		Description: "Prod profile (credentials from env)",
	},
	{
		Role: RoleBackendDocker, Group: GroupDescriptor,
		Source:      "backend/Dockerfile.tmpl",
		Target:      "Dockerfile",
		Description: "Backend image (two-stage build)",
	},
	{
		Role: RoleFrontendDocker, Group: GroupDescriptor,
		Source:      "frontend/Dockerfile.tmpl",
		Target:      "Dockerfile",
		Description: "Frontend image",
	},
	{
		Role: RoleFrontendMarkup, Group: GroupFrontend,
		Source:      "frontend/index.html.tmpl",
		Target:      "index.html",
		Description: "Markup",
	},
	{
		Role: RoleFrontendStyle, Group: GroupFrontend,
		Source:      "frontend/style.css.tmpl",
		Target:      "style.css",
		Description: "Stylesheet",
	},
	{
		Role: RoleFrontendScript, Group: GroupFrontend,
		Source:      "frontend/script.js.tmpl",
		Target:      "script.js",
		Description: "Calls the backend test endpoint",
	},
}

// Get returns the template registered for role.
func Get(role Role) (Template, error) {
	for _, t := range registry {
		if t.Role == role {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q", role)
}

// List returns every registered template in generation order.
func List() []Template {
	return append([]Template(nil), registry...)
}

// ForGroup returns the templates of one group in generation order.
func ForGroup(g Group) []Template {
	var out []Template
	for _, t := range registry {
		if t.Group == g {
			out = append(out, t)
		}
	}
	return out
}

func sourcePath(t Template) string {
	return path.Join(sourceRoot, t.Source)
}
