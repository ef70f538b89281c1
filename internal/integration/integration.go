// Package integration renders shell integration (completion) scripts.
package integration

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	Bash       = "bash"
	Zsh        = "zsh"
	Fish       = "fish"
	PowerShell = "powershell"
)

// Shells lists the shells a completion script can be generated for.
//
//nolint:gochecknoglobals // Config constant
var Shells = []string{Bash, Zsh, Fish, PowerShell}

// ErrUnknownShell is returned for a shell without completion support.
var ErrUnknownShell = errors.New("unknown shell")

// Render writes the completion script of cmd for shell to w.
func Render(shell string, cmd *cobra.Command, w io.Writer) error {
	var err error

	switch strings.ToLower(shell) {
	case Bash:
		err = cmd.GenBashCompletionV2(w, true)
	case Zsh:
		err = cmd.GenZshCompletion(w)
	case Fish:
		err = cmd.GenFishCompletion(w, true)
	case PowerShell:
		err = cmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("%w %q: must be one of %v", ErrUnknownShell, shell, Shells)
	}

	if err != nil {
		return fmt.Errorf("rendering %s completion: %w", shell, err)
	}

	return nil
}
