package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appJSON = `{
  "pages": ["pages/index/index", " pages/logs/logs ", ""],
  "subPackages": [
    {"root": "packageA/", "pages": ["pages/cat/cat"], "independent": true}
  ],
  "subpackages": [
    {"root": "packageB", "name": "b", "pages": ["pages/dog/dog"]}
  ],
  "tabBar": {
    "custom": true,
    "list": [
      {"pagePath": "pages/index/index", "iconPath": "images/home.png", "selectedIconPath": "images/home-active.png"},
      {"pagePath": "pages/logs/logs", "text": "Logs"}
    ]
  },
  "usingComponents": {
    "nav-bar": "/components/nav-bar/index",
    "live-player": "plugin://live/player",
    "secret": "plugin-private://wx123/secret"
  },
  "componentGenerics": {
    "selectable": {"default": "components/default-item/index"},
    "flag": true
  },
  "sitemapLocation": "sitemap.json",
  "workers": {"path": "workers", "isSubpackage": false}
}`

func TestParse_AppManifest(t *testing.T) {
	m, err := Parse([]byte(appJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"pages/index/index", "pages/logs/logs"}, m.Pages)
	require.Len(t, m.SubPackages, 2)
	assert.Equal(t, "packageA", m.SubPackages[0].Root)
	assert.True(t, m.SubPackages[0].Independent)
	assert.Equal(t, "packageB", m.SubPackages[1].Root)
	assert.True(t, m.TabBar.Custom)
	assert.Equal(t, []string{"images/home.png", "images/home-active.png"}, m.TabBar.Icons)
	assert.Equal(t, map[string]string{"selectable": "components/default-item/index"}, m.ComponentGenerics)
	assert.Equal(t, "workers", m.Workers)
	assert.Equal(t, "", m.ThemeLocation)
}

func TestParse_EmptyDefaults(t *testing.T) {
	m, err := Parse([]byte(`{"component": true}`))
	require.NoError(t, err)

	assert.NotNil(t, m.Pages)
	assert.NotNil(t, m.SubPackages)
	assert.NotNil(t, m.UsingComponents)
	assert.NotNil(t, m.ComponentGenerics)
	assert.NotNil(t, m.TabBar.Icons)
	assert.True(t, m.Component)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"pages": [`))
	require.Error(t, err)

	_, err = Parse([]byte(`{"workers": 3}`))
	require.Error(t, err)

	m, err := Parse([]byte(`{"workers": "workers"}`))
	require.NoError(t, err)
	assert.Equal(t, "workers", m.Workers)
}

func TestAppDependencies(t *testing.T) {
	m, err := Parse([]byte(appJSON))
	require.NoError(t, err)

	deps, plugins := m.AppDependencies()
	assert.ElementsMatch(t, []string{"plugin://live/player", "plugin-private://wx123/secret"}, plugins)

	type key struct {
		kind Kind
		raw  string
	}
	got := map[key]SemanticDependency{}
	for _, dep := range deps {
		got[key{dep.Kind, dep.RawPath}] = dep
	}

	expected := []key{
		{KindPage, "/pages/index/index"},
		{KindPage, "/pages/logs/logs"},
		{KindPage, "/packageA/pages/cat/cat"},
		{KindPage, "/packageB/pages/dog/dog"},
		{KindAsset, "/images/home.png"},
		{KindAsset, "/images/home-active.png"},
		{KindComponent, "/custom-tab-bar/index"},
		{KindComponent, "/components/nav-bar/index"},
		{KindComponent, "components/default-item/index"},
		{KindTheme, "/theme.json"},
		{KindConfig, "/sitemap.json"},
		{KindWorker, "/workers"},
	}
	assert.Len(t, deps, len(expected))
	for _, k := range expected {
		dep, ok := got[k]
		require.True(t, ok, "missing %v", k)
		assert.Equal(t, k.kind.Extensions(), dep.Extensions)
	}

	assert.Equal(t, "packageA", got[key{KindPage, "/packageA/pages/cat/cat"}].Package)
	assert.True(t, got[key{KindTheme, "/theme.json"}].Implicit)
	assert.Equal(t, "nav-bar", got[key{KindComponent, "/components/nav-bar/index"}].Tag)
	assert.Equal(t, fileutil.ImageExtensions, got[key{KindAsset, "/images/home.png"}].Extensions)
}

func TestAppDependencies_ExplicitTheme(t *testing.T) {
	m, err := Parse([]byte(`{"pages": [], "themeLocation": "config/theme.json"}`))
	require.NoError(t, err)
	deps, _ := m.AppDependencies()
	require.Len(t, deps, 1)
	assert.Equal(t, "/config/theme.json", deps[0].RawPath)
	assert.False(t, deps[0].Implicit)
}

func TestComponentDependencies_PluginsSkipped(t *testing.T) {
	m, err := Parse([]byte(`{"usingComponents": {"b": "../b/index", "a": "./a", "p": "plugin://x/y"}}`))
	require.NoError(t, err)

	deps, plugins := m.ComponentDependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, "a", deps[0].Tag)
	assert.Equal(t, "./a", deps[0].RawPath)
	assert.Equal(t, "b", deps[1].Tag)
	assert.Equal(t, []string{"plugin://x/y"}, plugins)
	assert.True(t, IsPluginComponent("plugin-private://z"))
	assert.False(t, IsPluginComponent("/components/plugin"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pages": ["pages/a/a"]}`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages/a/a"}, m.Pages)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
