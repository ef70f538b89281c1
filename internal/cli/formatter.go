package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v2"

	"github.com/idelchi/dupfind/internal/dupfind"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the result in JSON format.
func PrintJSON(result *dupfind.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintYAML outputs the result in YAML format.
func PrintYAML(result *dupfind.Result, writer io.Writer) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return err
	}

	return nil
}

//nolint:gochecknoglobals // Shared styles
var (
	headerStyle = color.New(color.Bold, color.FgCyan)
	sizeStyle   = color.New(color.FgYellow)
	totalStyle  = color.New(color.Bold, color.FgGreen)
)

// PrintPersonal outputs the result in human-readable form: one block per group,
// followed by a summary table. Colors are dropped when writer is not a terminal.
//
//nolint:forbidigo // This function prints output to the console.
func PrintPersonal(result *dupfind.Result, writer io.Writer) error {
	colored := isTerminal(writer) && !color.NoColor

	paint := func(c *color.Color, format string, args ...any) string {
		if !colored {
			return fmt.Sprintf(format, args...)
		}

		return c.Sprintf(format, args...)
	}

	for i, group := range result.Groups {
		fmt.Fprintf(writer, "%s %s\n",
			paint(headerStyle, "%d) %d files,", i+1, len(group.Members)),
			paint(sizeStyle, "%s each (%d bytes), %s: %s",
				humanize.IBytes(group.Size), group.Size, result.Summary.Algorithm, group.Hash))

		for _, member := range group.Members {
			fmt.Fprintf(writer, "    %s\n", member)
		}

		fmt.Fprintln(writer)
	}

	s := result.Summary
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, paint(totalStyle, "Summary:"))
	fmt.Fprintf(w, "Algorithm:\t%s\n", s.Algorithm)
	fmt.Fprintf(w, "Files scanned:\t%d\n", s.Files)
	fmt.Fprintf(w, "Size candidates:\t%d\n", s.Candidates)
	fmt.Fprintf(w, "Files hashed:\t%d\n", s.Hashed)
	fmt.Fprintf(w, "Duplicate groups:\t%d\n", s.Groups)
	fmt.Fprintf(w, "Duplicate files:\t%d\n", s.Duplicates)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", humanize.IBytes(s.TotalBytes), s.TotalBytes)
	fmt.Fprintf(w, "Reclaimable:\t%s (%d bytes)\n", humanize.IBytes(s.ReclaimableBytes), s.ReclaimableBytes)

	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped entries:\t%d\n", s.Skipped)
	}

	return w.Flush()
}
