// Package config loads layered defaults for dupfind from an INI file and the environment.
//
// Explicit command-line flags take precedence over the environment, which
// takes precedence over the configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-ini/ini"
	"github.com/kelseyhightower/envconfig"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// EnvPrefix is the prefix of environment variables, e.g. DUPFIND_ALGORITHM.
const EnvPrefix = "DUPFIND"

// Settings holds optional overrides. A nil field is unset.
type Settings struct {
	// MinDepth is the minimum file depth.
	MinDepth *uint
	// MaxDepth is the maximum file depth.
	MaxDepth *uint
	// MinSize is the minimum file size in bytes.
	MinSize *uint64
	// MaxSize is the maximum file size in bytes.
	MaxSize *uint64
	// OmitHidden skips hidden files and directories.
	OmitHidden *bool
	// Workers is the pool size.
	Workers *int
	// Algorithm is the hash algorithm name.
	Algorithm *string
	// ResultFormat is the output format name.
	ResultFormat *string
	// SortByCount sorts groups by member count.
	SortByCount *bool
	// FullPath reports absolute paths.
	FullPath *bool
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}

	return filepath.Join(dir, "dupfind", "config.ini"), nil
}

// Load reads the file at path. An empty path selects DefaultPath, which may be absent.
func Load(path string) (Settings, error) {
	if path != "" {
		return LoadFile(path)
	}

	path, err := DefaultPath()
	if err != nil {
		return Settings{}, nil //nolint:nilerr // No config directory means no config file
	}

	settings, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, nil
	}

	return settings, err
}

// LoadFile reads settings from an INI file with [scan], [hash] and [output] sections.
//
//nolint:cyclop // One branch per key
func LoadFile(path string) (Settings, error) {
	if _, err := os.Stat(path); err != nil {
		return Settings{}, fmt.Errorf("accessing config file %q: %w", path, err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return Settings{}, fmt.Errorf("loading config file %q: %w", path, err)
	}

	var s Settings

	scan := file.Section("scan")

	if s.MinDepth, err = uintKey(scan, "min_depth"); err != nil {
		return Settings{}, err
	}

	if s.MaxDepth, err = uintKey(scan, "max_depth"); err != nil {
		return Settings{}, err
	}

	if s.MinSize, err = sizeKey(scan, "min_size"); err != nil {
		return Settings{}, err
	}

	if s.MaxSize, err = sizeKey(scan, "max_size"); err != nil {
		return Settings{}, err
	}

	if s.OmitHidden, err = boolKey(scan, "omit_hidden"); err != nil {
		return Settings{}, err
	}

	if scan.HasKey("workers") {
		workers, err := scan.Key("workers").Int()
		if err != nil {
			return Settings{}, fmt.Errorf("parsing [scan] workers: %w", err)
		}

		s.Workers = &workers
	}

	s.Algorithm = stringKey(file.Section("hash"), "algorithm")

	output := file.Section("output")
	s.ResultFormat = stringKey(output, "format")

	if s.SortByCount, err = boolKey(output, "sort_by_count"); err != nil {
		return Settings{}, err
	}

	if s.FullPath, err = boolKey(output, "full_path"); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func uintKey(section *ini.Section, name string) (*uint, error) {
	if !section.HasKey(name) {
		return nil, nil //nolint:nilnil // Absent key
	}

	v, err := section.Key(name).Uint()
	if err != nil {
		return nil, fmt.Errorf("parsing [%s] %s: %w", section.Name(), name, err)
	}

	return &v, nil
}

func sizeKey(section *ini.Section, name string) (*uint64, error) {
	if !section.HasKey(name) {
		return nil, nil //nolint:nilnil // Absent key
	}

	v, err := humanize.ParseBytes(section.Key(name).String())
	if err != nil {
		return nil, fmt.Errorf("parsing [%s] %s: %w", section.Name(), name, err)
	}

	return &v, nil
}

func boolKey(section *ini.Section, name string) (*bool, error) {
	if !section.HasKey(name) {
		return nil, nil //nolint:nilnil // Absent key
	}

	v, err := section.Key(name).Bool()
	if err != nil {
		return nil, fmt.Errorf("parsing [%s] %s: %w", section.Name(), name, err)
	}

	return &v, nil
}

func stringKey(section *ini.Section, name string) *string {
	if !section.HasKey(name) {
		return nil
	}

	v := section.Key(name).String()

	return &v
}

// environment mirrors Settings for envconfig. Sizes are humanized strings.
type environment struct {
	MinDepth     *uint  `split_words:"true"`
	MaxDepth     *uint  `split_words:"true"`
	MinSize      string `split_words:"true"`
	MaxSize      string `split_words:"true"`
	OmitHidden   *bool  `split_words:"true"`
	Workers      *int
	Algorithm    string
	ResultFormat string `split_words:"true"`
	SortByCount  *bool  `split_words:"true"`
	FullPath     *bool  `split_words:"true"`
}

// FromEnv reads settings from DUPFIND_* environment variables.
func FromEnv() (Settings, error) {
	var env environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Settings{}, fmt.Errorf("reading environment: %w", err)
	}

	s := Settings{
		MinDepth:    env.MinDepth,
		MaxDepth:    env.MaxDepth,
		OmitHidden:  env.OmitHidden,
		Workers:     env.Workers,
		SortByCount: env.SortByCount,
		FullPath:    env.FullPath,
	}

	if env.MinSize != "" {
		v, err := humanize.ParseBytes(env.MinSize)
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s_MIN_SIZE: %w", EnvPrefix, err)
		}

		s.MinSize = &v
	}

	if env.MaxSize != "" {
		v, err := humanize.ParseBytes(env.MaxSize)
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s_MAX_SIZE: %w", EnvPrefix, err)
		}

		s.MaxSize = &v
	}

	if env.Algorithm != "" {
		s.Algorithm = &env.Algorithm
	}

	if env.ResultFormat != "" {
		s.ResultFormat = &env.ResultFormat
	}

	return s, nil
}

// Merge returns s with every field set in over replacing its own.
func (s Settings) Merge(over Settings) Settings {
	s.MinDepth = pick(s.MinDepth, over.MinDepth)
	s.MaxDepth = pick(s.MaxDepth, over.MaxDepth)
	s.MinSize = pick(s.MinSize, over.MinSize)
	s.MaxSize = pick(s.MaxSize, over.MaxSize)
	s.OmitHidden = pick(s.OmitHidden, over.OmitHidden)
	s.Workers = pick(s.Workers, over.Workers)
	s.Algorithm = pick(s.Algorithm, over.Algorithm)
	s.ResultFormat = pick(s.ResultFormat, over.ResultFormat)
	s.SortByCount = pick(s.SortByCount, over.SortByCount)
	s.FullPath = pick(s.FullPath, over.FullPath)

	return s
}

func pick[T any](base, over *T) *T {
	if over != nil {
		return over
	}

	return base
}

// Apply copies the set fields into opt. The result format is not part of the
// search options; callers read it from ResultFormat.
func (s Settings) Apply(opt *dupfind.Options) error {
	if s.MinDepth != nil {
		opt.MinDepth = s.MinDepth
	}

	if s.MaxDepth != nil {
		opt.MaxDepth = s.MaxDepth
	}

	if s.MinSize != nil {
		opt.MinSize = *s.MinSize
	}

	if s.MaxSize != nil {
		opt.MaxSize = *s.MaxSize
	}

	if s.OmitHidden != nil {
		opt.OmitHidden = *s.OmitHidden
	}

	if s.Workers != nil {
		opt.Workers = *s.Workers
	}

	if s.SortByCount != nil {
		opt.SortByCount = *s.SortByCount
	}

	if s.FullPath != nil {
		opt.FullPath = *s.FullPath
	}

	if s.Algorithm != nil {
		alg, err := dupfind.ParseAlgorithm(*s.Algorithm)
		if err != nil {
			return err
		}

		opt.Algorithm = alg
	}

	return nil
}
