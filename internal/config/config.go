// Package config holds the options of one analysis run and loads them from
// an optional YAML file, the environment, and tsconfig path aliases.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFiles are looked up in the project root when no explicit
// config path is given.
var DefaultConfigFiles = []string{"mp-lens.config.yaml", "mp-lens.config.yml"}

// Options is the explicit context of one analysis run.
type Options struct {
	RootDirectory string `yaml:"root"`
	MiniAppRoot   string `yaml:"miniappRoot"`
	EntryFile     string `yaml:"entryFile"`
	// EntryContent is raw manifest JSON supplied in-process. It takes
	// precedence over EntryFile.
	EntryContent    []byte            `yaml:"-"`
	FileTypes       []string          `yaml:"types"`
	ExcludePatterns []string          `yaml:"exclude"`
	EssentialFiles  []string          `yaml:"essentialFiles"`
	KeepAssets      []string          `yaml:"keepAssets"`
	IncludeAssets   bool              `yaml:"includeAssets"`
	Aliases         map[string]string `yaml:"aliases"`
	Workers         int               `yaml:"workers"`
}

// Defaults returns options with every collection initialised.
func Defaults() Options {
	return Options{
		FileTypes:       fileutil.DefaultFileTypes(),
		ExcludePatterns: []string{},
		EssentialFiles:  []string{},
		KeepAssets:      []string{},
		Aliases:         map[string]string{},
		Workers:         runtime.NumCPU(),
	}
}

// Load reads a YAML config file on top of Defaults, then applies MPLENS_*
// environment overrides (a .env file in the working directory is honoured).
// An empty path skips the file.
func Load(path string) (Options, error) {
	_ = godotenv.Load()

	opts := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return opts, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if opts.RootDirectory != "" && !filepath.IsAbs(opts.RootDirectory) {
			opts.RootDirectory = filepath.Join(filepath.Dir(path), opts.RootDirectory)
		}
	}

	if err := applyEnv(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// FindConfigFile returns the first default config file present in root.
func FindConfigFile(root string) string {
	for _, name := range DefaultConfigFiles {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func applyEnv(opts *Options) error {
	if v := os.Getenv("MPLENS_MINIAPP_ROOT"); v != "" {
		opts.MiniAppRoot = v
	}
	if v := os.Getenv("MPLENS_ENTRY_FILE"); v != "" {
		opts.EntryFile = v
	}
	if v := os.Getenv("MPLENS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MPLENS_WORKERS %q: %w", v, err)
		}
		opts.Workers = n
	}
	if v := os.Getenv("MPLENS_INCLUDE_ASSETS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MPLENS_INCLUDE_ASSETS %q: %w", v, err)
		}
		opts.IncludeAssets = b
	}
	return nil
}

// Normalize makes every path absolute and fills unset fields. It does not
// touch the filesystem.
func (o *Options) Normalize() error {
	if o.RootDirectory == "" {
		o.RootDirectory = "."
	}
	root, err := filepath.Abs(o.RootDirectory)
	if err != nil {
		return fmt.Errorf("failed to resolve root %q: %w", o.RootDirectory, err)
	}
	o.RootDirectory = root

	switch {
	case o.MiniAppRoot == "":
		o.MiniAppRoot = root
	case !filepath.IsAbs(o.MiniAppRoot):
		o.MiniAppRoot = filepath.Join(root, o.MiniAppRoot)
	default:
		o.MiniAppRoot = filepath.Clean(o.MiniAppRoot)
	}

	if o.EntryFile != "" && !filepath.IsAbs(o.EntryFile) {
		o.EntryFile = filepath.Join(o.MiniAppRoot, o.EntryFile)
	}

	if len(o.FileTypes) == 0 {
		o.FileTypes = fileutil.DefaultFileTypes()
	}
	types := make([]string, 0, len(o.FileTypes)+len(fileutil.ImageExtensions))
	for _, ext := range o.FileTypes {
		if ext = fileutil.NormalizeExtension(ext); ext != "" {
			types = append(types, ext)
		}
	}
	if o.IncludeAssets {
		types = append(types, fileutil.ImageExtensions...)
	} else {
		types = fileutil.Without(types, fileutil.ImageExtensions)
	}
	o.FileTypes = fileutil.DedupeStrings(types)

	aliases := make(map[string]string, len(o.Aliases))
	for prefix, target := range o.Aliases {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" || strings.TrimSpace(target) == "" {
			continue
		}
		aliases[prefix] = absUnder(root, target)
	}
	o.Aliases = aliases

	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return nil
}

// MergeAliases adds extra aliases that are not already configured.
func (o *Options) MergeAliases(extra map[string]string) {
	if o.Aliases == nil {
		o.Aliases = make(map[string]string, len(extra))
	}
	for prefix, target := range extra {
		if _, ok := o.Aliases[prefix]; ok {
			continue
		}
		o.Aliases[prefix] = target
	}
}

func absUnder(root, target string) string {
	trailing := strings.HasSuffix(target, "/")
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)
	if trailing {
		target += string(filepath.Separator)
	}
	return target
}
