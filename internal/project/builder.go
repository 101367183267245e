// Package project assembles the typed project graph from the root manifest,
// the scanned file set and the per-file extraction results.
package project

import (
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/chess99/mp-lens-sub000/internal/graph"
	"github.com/chess99/mp-lens-sub000/internal/logger"
	"github.com/chess99/mp-lens-sub000/internal/manifest"
	"github.com/chess99/mp-lens-sub000/internal/parser"
	"github.com/chess99/mp-lens-sub000/internal/resolver"
)

// ImplicitGlobalFiles are always loaded by the runtime, relative to the
// mini-app root.
var ImplicitGlobalFiles = []string{
	"app.js",
	"app.ts",
	"app.wxss",
	"app.less",
	"app.scss",
	"app.json",
	"sitemap.json",
	"theme.json",
}

// Input is everything the builder consumes. Files and References are keyed
// by absolute path.
type Input struct {
	RootDirectory string
	MiniAppRoot   string
	Files         []string
	References    map[string]*parser.FileReferences
	// Manifest is the parsed root manifest, nil when missing or invalid.
	Manifest *manifest.Manifest
	// ManifestPath anchors relative references of the root manifest.
	ManifestPath string
}

// Result is the assembled graph.
type Result struct {
	Graph     *graph.Graph
	Structure *graph.ProjectStructure
	// ManifestNodes are the node IDs produced from the manifest tree.
	ManifestNodes []string
}

// Builder assembles one project graph. A Builder is single-use and must not
// be shared between goroutines.
type Builder struct {
	resolver *resolver.Resolver
	log      logger.Logger

	graph              *graph.Graph
	in                 Input
	files              map[string]bool
	processedManifests map[string]bool
	manifestNodes      map[string]bool
}

// NewBuilder creates a builder resolving references through r.
func NewBuilder(r *resolver.Resolver, log logger.Logger) *Builder {
	return &Builder{
		resolver: r,
		log:      logger.OrNoop(log),
	}
}

// Build runs the assembly: module nodes, manifest tree with recursive
// component discovery, then per-file reference links.
func (b *Builder) Build(in Input) *Result {
	b.in = in
	b.graph = graph.NewGraph()
	b.files = fileutil.ToSet(in.Files)
	b.processedManifests = make(map[string]bool)
	b.manifestNodes = make(map[string]bool)
	if b.in.ManifestPath == "" {
		b.in.ManifestPath = filepath.Join(in.MiniAppRoot, "app.json")
	}

	b.addModules()

	rootNodeID := ""
	if in.Manifest != nil {
		rootNodeID = graph.AppNodeID
		b.addApp(in.Manifest)
	}

	b.addReferenceLinks()

	return &Result{
		Graph:         b.graph,
		Structure:     b.graph.Structure(rootNodeID, in.RootDirectory, in.MiniAppRoot),
		ManifestNodes: fileutil.MapKeysSorted(b.manifestNodes),
	}
}

func (b *Builder) addModules() {
	for _, path := range b.in.Files {
		b.graph.AddNode(path, graph.NodeModule, b.rel(path), map[string]string{
			"ext": strings.ToLower(filepath.Ext(path)),
		})
	}
}

func (b *Builder) addApp(m *manifest.Manifest) {
	b.graph.AddNode(graph.AppNodeID, graph.NodeApp, "App", nil)
	b.manifestNodes[graph.AppNodeID] = true
	b.processedManifests[b.in.ManifestPath] = true
	b.link(graph.AppNodeID, b.in.ManifestPath, graph.LinkStructure, nil)

	for _, name := range ImplicitGlobalFiles {
		b.link(graph.AppNodeID, filepath.Join(b.in.MiniAppRoot, name), graph.LinkStructure, nil)
	}

	deps, plugins := m.AppDependencies()
	b.tracePlugins(b.in.ManifestPath, plugins)

	for _, dep := range deps {
		switch dep.Kind {
		case manifest.KindPage:
			b.addPage(dep)
		case manifest.KindComponent:
			b.addComponent(dep, b.in.ManifestPath, graph.AppNodeID)
		case manifest.KindAsset:
			b.addResolved(dep, graph.LinkResource)
		case manifest.KindTheme, manifest.KindConfig:
			b.addResolved(dep, graph.LinkConfig)
		case manifest.KindWorker:
			b.addWorkers(dep)
		}
	}
}

func (b *Builder) addPage(dep manifest.SemanticDependency) {
	base, ok := b.resolver.ResolveBase(dep.RawPath, b.in.ManifestPath)
	if !ok {
		return
	}
	files := b.unitFiles(base, dep.Extensions)
	if len(files) == 0 {
		b.log.Warnf("page %s declared in %s has no files", dep.RawPath, b.rel(b.in.ManifestPath))
		return
	}

	parentID := graph.AppNodeID
	if dep.Package != "" {
		parentID = b.addPackage(dep.Package)
	}

	pageID := graph.PageNodeID(strings.TrimPrefix(dep.RawPath, "/"))
	props := map[string]string{}
	if dep.Package != "" {
		props["package"] = dep.Package
	}
	b.graph.AddNode(pageID, graph.NodePage, strings.TrimPrefix(dep.RawPath, "/"), props)
	b.manifestNodes[pageID] = true
	b.graph.AddLink(parentID, pageID, graph.LinkStructure, nil)

	for _, file := range files {
		b.link(pageID, file, graph.LinkStructure, nil)
	}
	b.processOwnManifest(base, pageID)
}

func (b *Builder) addPackage(root string) string {
	id := graph.PackageNodeID(root)
	if !b.graph.HasNode(id) {
		props := map[string]string{"root": root}
		for _, sp := range b.in.Manifest.SubPackages {
			if sp.Root == root && sp.Independent {
				props["independent"] = "true"
			}
		}
		b.graph.AddNode(id, graph.NodePackage, root, props)
		b.manifestNodes[id] = true
		b.graph.AddLink(graph.AppNodeID, id, graph.LinkStructure, nil)
	}
	return id
}

// addComponent resolves a component relative to the manifest declaring it,
// links its files and recurses into its own manifest once.
func (b *Builder) addComponent(dep manifest.SemanticDependency, fromManifest, parentID string) {
	base, ok := b.resolver.ResolveBase(dep.RawPath, fromManifest)
	if !ok {
		b.log.Tracef("component %s in %s is not a local path", dep.RawPath, b.rel(fromManifest))
		return
	}

	files := b.unitFiles(base, dep.Extensions)
	if len(files) == 0 {
		base = filepath.Join(base, "index")
		files = b.unitFiles(base, dep.Extensions)
	}
	if len(files) == 0 {
		b.log.Tracef("component %s in %s did not resolve", dep.RawPath, b.rel(fromManifest))
		return
	}

	componentID := graph.ComponentNodeID(base)
	b.graph.AddNode(componentID, graph.NodeComponent, b.rel(base), nil)
	b.manifestNodes[componentID] = true

	var props map[string]string
	if dep.Tag != "" {
		props = map[string]string{"tag": dep.Tag}
	}
	b.graph.AddLink(parentID, componentID, graph.LinkStructure, props)

	for _, file := range files {
		b.link(componentID, file, graph.LinkStructure, nil)
	}
	b.processOwnManifest(base, componentID)
}

// processOwnManifest loads base.json and follows its components. The path
// is marked processed before recursing so cycles terminate.
func (b *Builder) processOwnManifest(base, ownerID string) {
	manifestPath := base + ".json"
	if b.processedManifests[manifestPath] || !b.resolver.Exists(manifestPath) {
		return
	}
	b.processedManifests[manifestPath] = true

	m, err := manifest.Load(manifestPath)
	if err != nil {
		b.log.Warnf("ignoring manifest %s: %v", b.rel(manifestPath), err)
		return
	}

	deps, plugins := m.ComponentDependencies()
	b.tracePlugins(manifestPath, plugins)
	for _, dep := range deps {
		b.addComponent(dep, manifestPath, ownerID)
	}
}

func (b *Builder) addResolved(dep manifest.SemanticDependency, typ graph.LinkType) {
	resolved, ok := b.resolver.Resolve(dep.RawPath, b.in.ManifestPath, dep.Extensions)
	if !ok || !b.files[resolved] {
		if !dep.Implicit {
			b.log.Tracef("%s %s declared in %s did not resolve", dep.Kind, dep.RawPath, b.rel(b.in.ManifestPath))
		}
		return
	}
	b.link(graph.AppNodeID, resolved, typ, nil)
}

// addWorkers links every scanned script under the worker directory. Workers
// are started by path at runtime, so any of them may be an entry.
func (b *Builder) addWorkers(dep manifest.SemanticDependency) {
	dir, ok := b.resolver.ResolveBase(dep.RawPath, b.in.ManifestPath)
	if !ok {
		return
	}
	prefix := dir + string(filepath.Separator)
	linked := 0
	for _, path := range b.in.Files {
		if !strings.HasPrefix(path, prefix) || !fileutil.HasExtension(path, dep.Extensions) {
			continue
		}
		b.link(graph.AppNodeID, path, graph.LinkWorkerEntry, nil)
		linked++
	}
	if linked == 0 {
		b.log.Tracef("worker directory %s declared in %s has no scripts", dep.RawPath, b.rel(b.in.ManifestPath))
	}
}

// unitFiles returns the scanned siblings base+ext, in probe order.
func (b *Builder) unitFiles(base string, exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if candidate := base + ext; b.files[candidate] {
			out = append(out, candidate)
		}
	}
	return out
}

func (b *Builder) link(source, target string, typ graph.LinkType, props map[string]string) {
	if b.graph.AddLink(source, target, typ, props) {
		b.manifestNodes[target] = true
	}
}

func (b *Builder) tracePlugins(manifestPath string, plugins []string) {
	for _, plugin := range plugins {
		b.log.Tracef("skipping plugin component %s in %s", plugin, b.rel(manifestPath))
	}
}

func (b *Builder) addReferenceLinks() {
	paths := make([]string, 0, len(b.in.References))
	for path := range b.in.References {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if !b.graph.HasNode(path) {
			continue
		}
		for _, ref := range b.in.References[path].References {
			exts := referenceExtensions(path, ref.Kind)
			resolved, ok := b.resolver.Resolve(ref.Path, path, exts)
			if !ok && ref.Kind == parser.RefStyle {
				resolved, ok = b.resolver.Resolve(partialRef(ref.Path), path, exts)
			}
			if !ok || !b.graph.HasNode(resolved) {
				continue
			}
			b.graph.AddLink(path, resolved, linkTypeFor(ref.Kind), map[string]string{
				"ref":  ref.Path,
				"line": strconv.Itoa(ref.Line),
			})
		}
	}
}

// partialRef turns "dir/name" into "dir/_name", the Sass partial naming.
func partialRef(ref string) string {
	dir, name := path.Split(ref)
	if name == "" || strings.HasPrefix(name, "_") {
		return ref
	}
	return dir + "_" + name
}

func linkTypeFor(kind parser.ReferenceKind) graph.LinkType {
	switch kind {
	case parser.RefStyle:
		return graph.LinkStyle
	case parser.RefTemplate:
		return graph.LinkTemplate
	case parser.RefResource:
		return graph.LinkResource
	default:
		return graph.LinkImport
	}
}

// referenceExtensions is the probe list for a reference of kind found in
// from. Stylesheets prefer their own dialect first.
func referenceExtensions(from string, kind parser.ReferenceKind) []string {
	ext := strings.ToLower(filepath.Ext(from))
	switch kind {
	case parser.RefStyle:
		out := []string{ext}
		return fileutil.DedupeStrings(append(out, fileutil.StylesheetExtensions...))
	case parser.RefTemplate:
		return fileutil.MarkupExtensions
	case parser.RefResource:
		return fileutil.ImageExtensions
	default:
		if ext == ".wxs" || ext == ".wxml" {
			return fileutil.ScriptModuleExts
		}
		exts := append([]string{}, fileutil.ScriptExtensions...)
		exts = append(exts, fileutil.ManifestExtensions...)
		return append(exts, fileutil.ScriptModuleExts...)
	}
}

func (b *Builder) rel(path string) string {
	if rel, err := filepath.Rel(b.in.RootDirectory, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
