package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestVersionCmd_Execute(t *testing.T) {
	// Note: output.Println writes to stdout, not cmd.SetOut()
	// We just verify the command executes without error
	assert.NoError(t, execute(NewVersionCmd()))
}
