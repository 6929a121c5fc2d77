package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/bootstack/cli/internal/config"
	"github.com/bootstack/cli/internal/project"
)

func testData() Data {
	spec := project.Spec{
		Name:         "demo",
		BasePath:     "/out",
		BootVersion:  "3.3.5",
		JavaVersion:  "17",
		Dependencies: config.DefaultDependencies,
		GroupID:      "com.example",
		ArtifactID:   "demo",
		Packaging:    "jar",
	}
	return NewData(spec, config.DefaultConfig())
}

func TestNewData(t *testing.T) {
	d := testData()

	assert.Equal(t, "com.example.demo", d.PackageName)
	assert.Equal(t, "com/example/demo", d.PackagePath)
	assert.Equal(t, "DemoApplication", d.ApplicationClass)
	assert.Equal(t, 8080, d.ServerPort)
	assert.Equal(t, "demo", d.Database.Name)
	assert.Equal(t, "demo", d.Database.User)
	assert.Equal(t, "db", d.Database.Service)
	assert.Equal(t, DefaultEnv, d.Env)
}

func TestNewData_DatabaseIdentifiers(t *testing.T) {
	spec := project.Spec{Name: "Shop-Front", ArtifactID: "shop", GroupID: "com.example"}
	cfg := config.DefaultConfig()
	cfg.Database.Password = "s3cret"

	d := NewData(spec, cfg)

	assert.Equal(t, "shop_front", d.Database.Name)
	assert.Equal(t, "shop_front", d.Database.User)
	assert.Equal(t, "s3cret", d.Database.Password)
}

func TestRegistry(t *testing.T) {
	seen := map[Role]bool{}
	for _, tmpl := range List() {
		assert.False(t, seen[tmpl.Role], "duplicate role %s", tmpl.Role)
		seen[tmpl.Role] = true
		assert.NotEmpty(t, tmpl.Description)
	}

	assert.Len(t, ForGroup(GroupBackend), 7)
	assert.Len(t, ForGroup(GroupDescriptor), 2)
	assert.Len(t, ForGroup(GroupFrontend), 3)

	_, err := Get("nope")
	assert.Error(t, err)
}

func TestTargetPath(t *testing.T) {
	tmpl, err := Get(RoleAPI)
	require.NoError(t, err)

	assert.Equal(t, "src/main/java/com/example/demo/api/TestController.java", tmpl.TargetPath(testData()))
}

func TestRenderAll(t *testing.T) {
	data := testData()
	for _, tmpl := range List() {
		t.Run(string(tmpl.Role), func(t *testing.T) {
			out, err := RenderTemplate(tmpl, data)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
			assert.NotContains(t, string(out), "{{")
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	data := testData()
	for _, tmpl := range List() {
		first, err := RenderTemplate(tmpl, data)
		require.NoError(t, err)
		second, err := RenderTemplate(tmpl, data)
		require.NoError(t, err)
		assert.Equal(t, first, second, tmpl.Role)
	}
}

func TestRender_ProfilesAreYAML(t *testing.T) {
	data := testData()
	for _, tmpl := range List() {
		if !tmpl.Profile {
			continue
		}
		out, err := RenderTemplate(tmpl, data)
		require.NoError(t, err)
		_, err = yaml.YAMLToJSON(out)
		assert.NoError(t, err, tmpl.Role)
	}
}

func TestRender_ProdProfileHasNoCredentialDefaults(t *testing.T) {
	out, err := Render(RoleProfileProd, testData())
	require.NoError(t, err)
	prod := string(out)

	assert.Contains(t, prod, "username: ${DB_USER}\n")
	assert.Contains(t, prod, "password: ${DB_PASSWORD}\n")
	assert.Contains(t, prod, "ddl-auto: validate")
	assert.Contains(t, prod, "show-sql: false")
	assert.Contains(t, prod, "mode: never")
	for _, name := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD"} {
		assert.NotContains(t, prod, "${"+name+":", "prod must not default %s", name)
	}
}

func TestRender_DevAndTestProfilesHaveDefaults(t *testing.T) {
	dev, err := Render(RoleProfileDev, testData())
	require.NoError(t, err)
	assert.Contains(t, string(dev), "${DB_HOST:localhost}")
	assert.Contains(t, string(dev), "${DB_PORT:5432}")
	assert.Contains(t, string(dev), "username: ${DB_USER:demo}")
	assert.Contains(t, string(dev), "password: ${DB_PASSWORD:demo}")
	assert.Contains(t, string(dev), "ddl-auto: update")
	assert.Contains(t, string(dev), "show-sql: true")

	test, err := Render(RoleProfileTest, testData())
	require.NoError(t, err)
	assert.Contains(t, string(test), "jdbc:h2:mem:demo")
	assert.Contains(t, string(test), "username: sa")
	assert.Contains(t, string(test), "password: sa")
	assert.Contains(t, string(test), "ddl-auto: create-drop")
	assert.Contains(t, string(test), "show-sql: false")
	assert.Contains(t, string(test), "enabled: false")
}

func TestRender_DefaultProfile(t *testing.T) {
	out, err := Render(RoleProfileDefault, testData())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "port: 8080")
	assert.Contains(t, s, "active: ${SPRING_PROFILES_ACTIVE:dev}")
	assert.Contains(t, s, "open-in-view: false")
	assert.Contains(t, s, "non_contextual_creation: true")
	assert.Contains(t, s, "com.example.demo: DEBUG")
}

func TestRender_BackendDockerfile(t *testing.T) {
	out, err := Render(RoleBackendDocker, testData())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "FROM maven:3.9-eclipse-temurin-17 AS build")
	assert.Less(t, strings.Index(s, "dependency:go-offline"), strings.Index(s, "COPY src"),
		"dependencies must resolve before sources are copied")
	assert.Contains(t, s, "FROM eclipse-temurin:17-jre-alpine")
	assert.Contains(t, s, "EXPOSE 8080")
	assert.Contains(t, s, `"-Xmx512m"`)
}

func TestRender_FrontendFiles(t *testing.T) {
	data := testData()

	markup, err := Render(RoleFrontendMarkup, data)
	require.NoError(t, err)
	assert.Contains(t, string(markup), "<title>demo</title>")
	assert.Contains(t, string(markup), "<h1>demo</h1>")

	script, err := Render(RoleFrontendScript, data)
	require.NoError(t, err)
	assert.Contains(t, string(script), "fetch('/api/test')")

	docker, err := Render(RoleFrontendDocker, data)
	require.NoError(t, err)
	assert.Contains(t, string(docker), "rm -rf /usr/share/nginx/html/*")
	assert.Contains(t, string(docker), "EXPOSE 80")
}

func TestRenderString_MissingField(t *testing.T) {
	_, err := RenderString("broken", "hello {{.Nope}}", testData())

	require.Error(t, err)
	var mpe *MissingPlaceholderError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, "broken", mpe.Template)
}

func TestRenderString_LeftoverToken(t *testing.T) {
	_, err := RenderString("literal", `{{"{{"}}.Name}}`, testData())

	require.Error(t, err)
	var mpe *MissingPlaceholderError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, "{{", mpe.Token)
}

func TestFilter(t *testing.T) {
	got := Filter(ForGroup(GroupBackend), []string{"web", "data-jpa"})

	for _, tmpl := range got {
		assert.NotEqual(t, RoleSecurity, tmpl.Role)
	}
	assert.Len(t, got, 6)
}

func TestSkipped(t *testing.T) {
	got := Skipped(ForGroup(GroupBackend), []string{"data-jpa", "postgresql"})

	roles := make([]Role, 0, len(got))
	for _, tmpl := range got {
		roles = append(roles, tmpl.Role)
	}
	assert.ElementsMatch(t, []Role{RoleAPI, RoleSecurity, RoleIntegrationTest}, roles)
	assert.Empty(t, Skipped(ForGroup(GroupBackend), []string{"web", "security"}))
}
