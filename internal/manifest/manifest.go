// Package manifest parses app, page and component JSON manifests into a
// typed form and lists the semantic dependencies they declare.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// PluginPrefixes mark host-provided components with no local source.
var PluginPrefixes = []string{"plugin://", "plugin-private://"}

// DefaultThemeLocation is probed when themeLocation is not set.
const DefaultThemeLocation = "theme.json"

// CustomTabBarPath is the component used when tabBar.custom is true.
const CustomTabBarPath = "custom-tab-bar/index"

// Manifest is the typed form of app.json and of page/component *.json.
// Every collection is non-nil after Parse.
type Manifest struct {
	Pages             []string
	SubPackages       []SubPackage
	TabBar            TabBar
	UsingComponents   map[string]string
	ComponentGenerics map[string]string // generic name -> default component path
	ThemeLocation     string
	SitemapLocation   string
	Workers           string
	Component         bool
}

// SubPackage is one entry of subPackages/subpackages.
type SubPackage struct {
	Root        string
	Name        string
	Pages       []string
	Independent bool
}

// TabBar holds the tab-bar fields that reference files.
type TabBar struct {
	Custom bool
	Icons  []string
}

type wireManifest struct {
	Pages             []string                      `json:"pages"`
	SubPackages       []wireSubPackage              `json:"subPackages"`
	SubPackagesLower  []wireSubPackage              `json:"subpackages"`
	TabBar            *wireTabBar                   `json:"tabBar"`
	UsingComponents   map[string]string             `json:"usingComponents"`
	ComponentGenerics map[string]wireGenericDefault `json:"componentGenerics"`
	ThemeLocation     string                        `json:"themeLocation"`
	SitemapLocation   string                        `json:"sitemapLocation"`
	Workers           json.RawMessage               `json:"workers"`
	Component         bool                          `json:"component"`
}

type wireSubPackage struct {
	Root        string   `json:"root"`
	Name        string   `json:"name"`
	Pages       []string `json:"pages"`
	Independent bool     `json:"independent"`
}

type wireTabBar struct {
	Custom bool `json:"custom"`
	List   []struct {
		IconPath         string `json:"iconPath"`
		SelectedIconPath string `json:"selectedIconPath"`
	} `json:"list"`
}

type wireGenericDefault struct {
	Default string
}

// UnmarshalJSON accepts both `"generic": true` and `"generic": {"default": "..."}`.
func (g *wireGenericDefault) UnmarshalJSON(data []byte) error {
	var obj struct {
		Default string `json:"default"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		g.Default = obj.Default
		return nil
	}
	var flag bool
	if err := json.Unmarshal(data, &flag); err != nil {
		return fmt.Errorf("componentGenerics entry must be an object or boolean")
	}
	return nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest JSON. Absent fields become empty collections.
func Parse(data []byte) (*Manifest, error) {
	var wire wireManifest
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	m := &Manifest{
		Pages:             cleanList(wire.Pages),
		SubPackages:       make([]SubPackage, 0, len(wire.SubPackages)+len(wire.SubPackagesLower)),
		UsingComponents:   make(map[string]string, len(wire.UsingComponents)),
		ComponentGenerics: make(map[string]string, len(wire.ComponentGenerics)),
		ThemeLocation:     strings.TrimSpace(wire.ThemeLocation),
		SitemapLocation:   strings.TrimSpace(wire.SitemapLocation),
		Component:         wire.Component,
		TabBar:            TabBar{Icons: make([]string, 0)},
	}

	for _, sp := range append(wire.SubPackages, wire.SubPackagesLower...) {
		m.SubPackages = append(m.SubPackages, SubPackage{
			Root:        strings.Trim(strings.TrimSpace(sp.Root), "/"),
			Name:        sp.Name,
			Pages:       cleanList(sp.Pages),
			Independent: sp.Independent,
		})
	}

	if wire.TabBar != nil {
		m.TabBar.Custom = wire.TabBar.Custom
		for _, item := range wire.TabBar.List {
			m.TabBar.Icons = append(m.TabBar.Icons, cleanList([]string{item.IconPath, item.SelectedIconPath})...)
		}
	}

	for tag, path := range wire.UsingComponents {
		if path = strings.TrimSpace(path); path != "" {
			m.UsingComponents[tag] = path
		}
	}
	for name, generic := range wire.ComponentGenerics {
		if def := strings.TrimSpace(generic.Default); def != "" {
			m.ComponentGenerics[name] = def
		}
	}

	workers, err := parseWorkers(wire.Workers)
	if err != nil {
		return nil, err
	}
	m.Workers = workers
	return m, nil
}

// parseWorkers accepts "workers": "dir" and "workers": {"path": "dir"}.
func parseWorkers(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var path string
	if err := json.Unmarshal(raw, &path); err == nil {
		return strings.TrimSpace(path), nil
	}
	var obj struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("workers must be a string or an object with path")
	}
	return strings.TrimSpace(obj.Path), nil
}

// IsPluginComponent reports component paths provided by the host runtime.
func IsPluginComponent(path string) bool {
	for _, prefix := range PluginPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
