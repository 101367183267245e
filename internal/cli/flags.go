package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/config"
	"github.com/spf13/cobra"
)

func addAnalysisFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("config", "", "Config file (default: mp-lens.config.yaml in the project root)")
	flags.String("miniapp-root", "", "Mini-program root, relative to the project root")
	flags.String("entry-file", "", "App manifest, relative to the mini-program root (default: app.json)")
	flags.StringSlice("types", nil, "File extensions to scan (default: js,ts,wxml,wxss,less,scss,css,json,wxs)")
	flags.StringSlice("exclude", nil, "Extra exclude patterns (gitignore syntax)")
	flags.StringSlice("essential", nil, "Files that are always kept, relative to the project root")
	flags.StringSlice("keep", nil, "Patterns never reported as unused")
	flags.Bool("include-assets", false, "Scan and report image assets too")
	flags.Int("workers", 0, "Parallel extraction workers (default: number of CPUs)")
	flags.BoolP("verbose", "v", false, "Print trace output")
}

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return false, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// LoadOptions resolves the project root from args, loads the config file
// (explicit or discovered) and applies flags that were set on top.
func LoadOptions(cmd *cobra.Command, args []string) (config.Options, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return config.Options{}, fmt.Errorf("failed to resolve path %q: %w", root, err)
	}

	configPath, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return config.Options{}, err
	}
	if configPath == "" {
		configPath = config.FindConfigFile(root)
	}

	opts, err := config.Load(configPath)
	if err != nil {
		return config.Options{}, err
	}
	if len(args) > 0 || opts.RootDirectory == "" {
		opts.RootDirectory = root
	}

	if err := applyFlags(cmd, &opts); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

func applyFlags(cmd *cobra.Command, opts *config.Options) error {
	flags := cmd.Flags()

	for name, target := range map[string]*string{
		"miniapp-root": &opts.MiniAppRoot,
		"entry-file":   &opts.EntryFile,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, err := OptionalStringFlag(cmd, name)
		if err != nil {
			return err
		}
		*target = value
	}

	if flags.Changed("types") {
		types, err := flags.GetStringSlice("types")
		if err != nil {
			return fmt.Errorf("failed to read --types flag: %w", err)
		}
		opts.FileTypes = types
	}
	for name, target := range map[string]*[]string{
		"exclude":   &opts.ExcludePatterns,
		"essential": &opts.EssentialFiles,
		"keep":      &opts.KeepAssets,
	} {
		values, err := flags.GetStringSlice(name)
		if err != nil {
			return fmt.Errorf("failed to read --%s flag: %w", name, err)
		}
		*target = append(*target, values...)
	}

	if flags.Changed("include-assets") {
		value, err := OptionalBoolFlag(cmd, "include-assets")
		if err != nil {
			return err
		}
		opts.IncludeAssets = value
	}
	if flags.Changed("workers") {
		workers, err := flags.GetInt("workers")
		if err != nil {
			return fmt.Errorf("failed to read --workers flag: %w", err)
		}
		opts.Workers = workers
	}
	return nil
}
