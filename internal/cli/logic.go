package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// output holds the presentation settings for a run.
type output struct {
	format string
	clear  bool
	time   bool
	out    io.Writer
	errOut io.Writer
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func logic(ctx context.Context, options dupfind.Options, o output) error {
	enableProgress := o.format == FormatPersonal &&
		!options.Verbose &&
		isTerminal(o.errOut)

	// Simple progress callback that prints directly to stderr
	var progressHook func(dupfind.Progress)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(o.errOut, "\033[?25l")
		defer fmt.Fprint(o.errOut, "\033[?25h")

		progressHook = func(p dupfind.Progress) {
			fmt.Fprintf(o.errOut, "\r\033[2K%s\r", progressLine(p))
		}
	}

	result, err := dupfind.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(o.errOut, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if o.clear && isTerminal(o.out) {
		clearScreen(o.out)
	}

	switch o.format {
	case FormatJSON:
		err = PrintJSON(result, o.out)
	case FormatYAML:
		err = PrintYAML(result, o.out)
	case FormatPersonal:
		err = PrintPersonal(result, o.out)
	default:
		err = fmt.Errorf("unknown output format: %s", o.format)
	}

	if err != nil {
		return err
	}

	if o.time {
		fmt.Fprintf(o.errOut, "Elapsed: %v\n", result.Summary.Elapsed)
	}

	return nil
}

// progressLine renders a progress snapshot.
func progressLine(p dupfind.Progress) string {
	bytes := humanize.IBytes(uint64(p.Bytes)) //nolint:gosec // Bytes is always positive

	if p.Stage == dupfind.StageHash {
		return fmt.Sprintf("Hashing… %d/%d files, %s", p.Files, p.Total, bytes)
	}

	return fmt.Sprintf("Scanning… %d files, %s", p.Files, bytes)
}

// clearScreen clears the terminal and moves the cursor home.
func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J\033[3J")
}
