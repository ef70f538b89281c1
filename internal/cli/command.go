package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idelchi/dupfind/internal/config"
	"github.com/idelchi/dupfind/internal/dupfind"
	"github.com/idelchi/dupfind/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Result formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatPersonal = "personal"
)

// AllowedFormats lists the accepted values of --result-format.
//
//nolint:gochecknoglobals // Config constant
var AllowedFormats = []string{FormatJSON, FormatYAML, FormatPersonal}

// flags holds the raw flag values before they are layered over the config file and environment.
type flags struct {
	path         string
	configPath   string
	generate     string
	algorithm    string
	resultFormat string
	minSize      string
	maxSize      string
	minDepth     uint
	maxDepth     uint
	workers      int
	omitHidden   bool
	sortByCount  bool
	fullPath     bool
	clear        bool
	time         bool
	verbose      bool
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dupfind [flags] [path]",
		Short: "Find duplicate files by content",
		Long: heredoc.Doc(`
			dupfind finds duplicate files under a directory by comparing their content.

			Files are first grouped by size. Only files sharing their size with another
			file are hashed, and files with the same size and digest are reported together.

			Defaults can be set in an INI file (see --config) and in DUPFIND_* environment
			variables. Flags take precedence over the environment, which takes precedence
			over the file.
		`),
		Example: heredoc.Doc(`
			# Search the current directory
			dupfind

			# Files of at least 1 MiB, up to two levels deep, sorted by count
			dupfind -b 1MiB -D 2 -s ~/Downloads

			# JSON output with absolute paths
			dupfind -r json -f /data

			# Write zsh completions
			dupfind -g zsh > ~/.oh-my-zsh/functions/_dupfind
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.generate != "" {
				return integration.Render(f.generate, cmd.Root(), cmd.OutOrStdout())
			}

			if len(args) > 0 {
				if cmd.Flags().Changed("path") {
					return fmt.Errorf("path given both as argument %q and with --path %q", args[0], f.path)
				}

				f.path = args[0]
			}

			options, format, err := resolve(cmd, f)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), options, output{
				format: format,
				clear:  f.clear,
				time:   f.time,
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			})
		},
	}

	algorithms := make([]string, len(dupfind.Algorithms))
	for i, alg := range dupfind.Algorithms {
		algorithms[i] = alg.String()
	}

	fs := cmd.Flags()
	fs.SortFlags = false

	fs.StringVarP(&f.algorithm, "algorithm", "a", dupfind.DefaultAlgorithm.String(),
		fmt.Sprintf("Hash algorithm: %s", strings.Join(algorithms, ", ")))
	fs.BoolVarP(&f.clear, "clear", "c", false, "Clear the terminal screen before listing the duplicate files")
	fs.BoolVarP(&f.fullPath, "full-path", "f", false, "Print absolute paths of duplicate files")
	fs.StringVarP(&f.generate, "generate", "g", "",
		fmt.Sprintf("Write the completion script for a shell (%s) and exit", strings.Join(integration.Shells, ", ")))
	fs.UintVarP(&f.minDepth, "min-depth", "d", 0, "Minimum depth of files to compare (root = 0)")
	fs.UintVarP(&f.maxDepth, "max-depth", "D", 0, "Maximum depth of files to compare (unlimited if unset)")
	fs.StringVarP(&f.minSize, "min-size", "b", "0B", "Minimum file size (e.g., 1KB)")
	fs.StringVarP(&f.maxSize, "max-size", "B", "", "Maximum file size (e.g., 4GiB, unlimited if unset)")
	fs.BoolVarP(&f.omitHidden, "omit-hidden", "o", false, "Omit hidden files and directories (starting with '.')")
	fs.StringVarP(&f.path, "path", "p", ".", "Directory to search")
	fs.StringVarP(&f.resultFormat, "result-format", "r", FormatPersonal,
		fmt.Sprintf("Output format: %s", strings.Join(AllowedFormats, ", ")))
	fs.BoolVarP(&f.sortByCount, "sort", "s", false, "Sort by number of duplicate files instead of file size")
	fs.BoolVarP(&f.time, "time", "t", false, "Show total execution time")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Show intermediate runtime messages")
	fs.IntVarP(&f.workers, "workers", "w", 0, "Number of parallel workers (0 = number of CPUs)")
	fs.StringVar(&f.configPath, "config", "", "INI configuration file (default $XDG_CONFIG_HOME/dupfind/config.ini)")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", cobra.FixedCompletions(algorithms, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("result-format",
		cobra.FixedCompletions(AllowedFormats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("generate",
		cobra.FixedCompletions(integration.Shells, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagDirname("path")

	return cmd
}

// resolve layers the config file, the environment and the changed flags into search options.
func resolve(cmd *cobra.Command, f flags) (dupfind.Options, string, error) {
	fromFile, err := config.Load(f.configPath)
	if err != nil {
		return dupfind.Options{}, "", err
	}

	fromEnv, err := config.FromEnv()
	if err != nil {
		return dupfind.Options{}, "", err
	}

	fromFlags, err := flagSettings(cmd, f)
	if err != nil {
		return dupfind.Options{}, "", err
	}

	settings := fromFile.Merge(fromEnv).Merge(fromFlags)

	options := dupfind.DefaultOptions()
	options.Path = f.path
	options.Verbose = f.verbose

	if err := settings.Apply(&options); err != nil {
		return dupfind.Options{}, "", err
	}

	format := FormatPersonal
	if settings.ResultFormat != nil {
		format = strings.ToLower(*settings.ResultFormat)
	}

	if !slices.Contains(AllowedFormats, format) {
		return dupfind.Options{}, "", fmt.Errorf("invalid result format %q: must be one of %v", format, AllowedFormats)
	}

	if options.Workers < 0 {
		return dupfind.Options{}, "", fmt.Errorf("workers cannot be negative: %d", options.Workers)
	}

	return options, format, nil
}

// flagSettings returns the settings for flags given explicitly on the command line.
func flagSettings(cmd *cobra.Command, f flags) (config.Settings, error) {
	var s config.Settings

	changed := cmd.Flags().Changed

	if changed("min-depth") {
		s.MinDepth = &f.minDepth
	}

	if changed("max-depth") {
		s.MaxDepth = &f.maxDepth
	}

	if changed("min-size") {
		size, err := humanize.ParseBytes(f.minSize)
		if err != nil {
			return s, fmt.Errorf("invalid min-size: %w", err)
		}

		s.MinSize = &size
	}

	if changed("max-size") {
		size, err := humanize.ParseBytes(f.maxSize)
		if err != nil {
			return s, fmt.Errorf("invalid max-size: %w", err)
		}

		s.MaxSize = &size
	}

	if changed("omit-hidden") {
		s.OmitHidden = &f.omitHidden
	}

	if changed("workers") {
		s.Workers = &f.workers
	}

	if changed("algorithm") {
		s.Algorithm = &f.algorithm
	}

	if changed("result-format") {
		s.ResultFormat = &f.resultFormat
	}

	if changed("sort") {
		s.SortByCount = &f.sortByCount
	}

	if changed("full-path") {
		s.FullPath = &f.fullPath
	}

	return s, nil
}
