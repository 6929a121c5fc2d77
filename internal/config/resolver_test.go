package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProjectName(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		args       []string
		config     string
		wantValue  string
		wantSource ConfigSource
		wantShadow map[ConfigSource]string
	}{
		{
			name:       "default when nothing set",
			wantValue:  DefaultProjectName,
			wantSource: SourceDefault,
			wantShadow: map[ConfigSource]string{},
		},
		{
			name:       "config file value",
			config:     "shop",
			wantValue:  "shop",
			wantSource: SourceConfig,
			wantShadow: map[ConfigSource]string{},
		},
		{
			name:       "argument beats config",
			args:       []string{"billing"},
			config:     "shop",
			wantValue:  "billing",
			wantSource: SourceArg,
			wantShadow: map[ConfigSource]string{SourceConfig: "shop"},
		},
		{
			name:       "env beats argument",
			env:        "inventory",
			args:       []string{"billing"},
			wantValue:  "inventory",
			wantSource: SourceEnv,
			wantShadow: map[ConfigSource]string{SourceArg: "billing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ProjectNameEnv, tt.env)

			got := ResolveProjectName(ResolveProjectNameOptions{Args: tt.args, ConfigValue: tt.config})

			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantShadow, got.Shadowed)
		})
	}
}

func TestResolveFlag(t *testing.T) {
	got := ResolveFlag("project.bootVersion", "3.2.0", true, "3.3.5", "3.3.5")
	assert.Equal(t, "3.2.0", got.Value)
	assert.Equal(t, SourceFlag, got.Source)
	assert.Equal(t, "3.3.5", got.Shadowed[SourceConfig])

	got = ResolveFlag("project.bootVersion", "3.2.0", false, "3.3.4", "3.3.5")
	assert.Equal(t, "3.3.4", got.Value, "unchanged flag defaults must not win")
	assert.Equal(t, SourceConfig, got.Source)

	got = ResolveFlag("project.artifactId", "", false, "", "demo")
	assert.Equal(t, "demo", got.Value)
	assert.Equal(t, SourceDefault, got.Source)
}
