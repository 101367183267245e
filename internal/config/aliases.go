package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var tsConfigFiles = []string{"tsconfig.json", "jsconfig.json"}

type tsConfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// LoadTSConfigAliases reads compilerOptions.paths from tsconfig.json (or
// jsconfig.json) in root. "@/*": ["src/*"] becomes "@/" -> "<root>/src/".
// Only the first target of each pattern is used. A missing file yields no
// aliases and no error.
func LoadTSConfigAliases(root string) (map[string]string, error) {
	for _, name := range tsConfigFiles {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var cfg tsConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return aliasesFromPaths(root, cfg), nil
	}
	return map[string]string{}, nil
}

func aliasesFromPaths(root string, cfg tsConfig) map[string]string {
	base := root
	if cfg.CompilerOptions.BaseURL != "" {
		base = filepath.Join(root, cfg.CompilerOptions.BaseURL)
	}

	aliases := make(map[string]string, len(cfg.CompilerOptions.Paths))
	for pattern, targets := range cfg.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		target := targets[0]
		if strings.HasSuffix(pattern, "*") {
			prefix := strings.TrimSuffix(pattern, "*")
			dir := strings.TrimSuffix(target, "*")
			if prefix == "" {
				continue
			}
			aliases[prefix] = filepath.Join(base, dir) + string(filepath.Separator)
			continue
		}
		aliases[pattern] = filepath.Join(base, target)
	}
	return aliases
}
