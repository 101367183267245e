package manifest

import (
	"path"
	"sort"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
)

// Kind is the intent of a manifest reference.
type Kind string

const (
	KindPage      Kind = "page"
	KindComponent Kind = "component"
	KindAsset     Kind = "asset"
	KindTheme     Kind = "theme"
	KindWorker    Kind = "worker"
	KindConfig    Kind = "config"
)

// UnitExtensions are the sibling files a page or component base path may
// expand into.
var UnitExtensions = []string{".js", ".ts", ".wxml", ".wxss", ".less", ".scss", ".json"}

// Extensions returns the probe list for a dependency kind.
func (k Kind) Extensions() []string {
	switch k {
	case KindPage, KindComponent:
		return UnitExtensions
	case KindAsset:
		return fileutil.ImageExtensions
	case KindTheme, KindConfig:
		return fileutil.ManifestExtensions
	case KindWorker:
		return fileutil.ScriptExtensions
	default:
		return nil
	}
}

// SemanticDependency is an unresolved manifest reference with known intent.
// Root-relative RawPaths start with "/"; others are relative to the
// declaring manifest.
type SemanticDependency struct {
	Kind       Kind
	RawPath    string
	Extensions []string
	// Tag is the usingComponents tag or generic name for components.
	Tag string
	// Package is the subpackage root a page belongs to.
	Package string
	// Implicit marks conventional locations that may legitimately be absent.
	Implicit bool
}

func newDependency(kind Kind, raw string) SemanticDependency {
	return SemanticDependency{Kind: kind, RawPath: raw, Extensions: kind.Extensions()}
}

func rootRelative(p string) string {
	return "/" + strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(p)), "/")
}

// AppDependencies lists everything an app manifest declares: pages,
// subpackage pages, tab-bar icons and custom tab bar, global components,
// theme, sitemap and worker entry.
func (m *Manifest) AppDependencies() (deps []SemanticDependency, plugins []string) {
	for _, page := range m.Pages {
		deps = append(deps, newDependency(KindPage, rootRelative(page)))
	}
	for _, sp := range m.SubPackages {
		for _, page := range sp.Pages {
			dep := newDependency(KindPage, rootRelative(path.Join(sp.Root, page)))
			dep.Package = sp.Root
			deps = append(deps, dep)
		}
	}

	for _, icon := range m.TabBar.Icons {
		deps = append(deps, newDependency(KindAsset, rootRelative(icon)))
	}
	if m.TabBar.Custom {
		dep := newDependency(KindComponent, "/"+CustomTabBarPath)
		dep.Tag = "custom-tab-bar"
		deps = append(deps, dep)
	}

	components, plugins := m.ComponentDependencies()
	deps = append(deps, components...)

	if m.ThemeLocation != "" {
		deps = append(deps, newDependency(KindTheme, rootRelative(m.ThemeLocation)))
	} else {
		dep := newDependency(KindTheme, "/"+DefaultThemeLocation)
		dep.Implicit = true
		deps = append(deps, dep)
	}
	if m.SitemapLocation != "" {
		deps = append(deps, newDependency(KindConfig, rootRelative(m.SitemapLocation)))
	}
	if m.Workers != "" {
		deps = append(deps, newDependency(KindWorker, rootRelative(m.Workers)))
	}
	return deps, plugins
}

// ComponentDependencies lists usingComponents and componentGenerics
// defaults, ordered by tag. Plugin-protocol paths are returned separately.
func (m *Manifest) ComponentDependencies() (deps []SemanticDependency, plugins []string) {
	for _, tag := range sortedKeys(m.UsingComponents) {
		raw := m.UsingComponents[tag]
		if IsPluginComponent(raw) {
			plugins = append(plugins, raw)
			continue
		}
		dep := newDependency(KindComponent, raw)
		dep.Tag = tag
		deps = append(deps, dep)
	}
	for _, name := range sortedKeys(m.ComponentGenerics) {
		raw := m.ComponentGenerics[name]
		if IsPluginComponent(raw) {
			plugins = append(plugins, raw)
			continue
		}
		dep := newDependency(KindComponent, raw)
		dep.Tag = name
		deps = append(deps, dep)
	}
	return deps, plugins
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
