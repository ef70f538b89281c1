package integration

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	markers := map[string]string{
		Bash:       "bash completion V2 for dupfind",
		Zsh:        "#compdef dupfind",
		Fish:       "fish completion for dupfind",
		PowerShell: "powershell completion for dupfind",
	}

	for _, shell := range Shells {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{Use: "dupfind", Run: func(*cobra.Command, []string) {}}

			var buf bytes.Buffer
			require.NoError(t, Render(shell, cmd, &buf))
			assert.Contains(t, buf.String(), markers[shell])
		})
	}
}

func TestRenderUnknownShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Render("tcsh", &cobra.Command{Use: "dupfind"}, &buf)
	require.ErrorIs(t, err, ErrUnknownShell)
	assert.Zero(t, buf.Len())
}
