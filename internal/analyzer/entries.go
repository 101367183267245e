package analyzer

import (
	"path/filepath"
	"sort"

	"github.com/chess99/mp-lens-sub000/internal/config"
	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/chess99/mp-lens-sub000/internal/graph"
	"github.com/chess99/mp-lens-sub000/internal/parser"
	"github.com/chess99/mp-lens-sub000/internal/project"
)

// EssentialConfigFiles are kept at both the project root and the mini-app
// root.
var EssentialConfigFiles = []string{
	"project.config.json",
	"project.private.config.json",
	"tsconfig.json",
	"jsconfig.json",
	"package.json",
	"mp-lens.config.yaml",
	"mp-lens.config.yml",
}

// EntryPoints builds the reachability seed set: the App node, everything the
// manifest tree produced, implicit global files and essential files. Only
// IDs present in g are returned, sorted.
func EntryPoints(opts config.Options, built *project.Result, refs map[string]*parser.FileReferences) []string {
	g := built.Graph
	seeds := make(map[string]bool)
	add := func(id string) {
		if g.HasNode(id) {
			seeds[id] = true
		}
	}

	if built.Structure.RootNodeID != "" {
		add(built.Structure.RootNodeID)
	}
	for _, id := range built.ManifestNodes {
		add(id)
	}
	for _, name := range project.ImplicitGlobalFiles {
		add(filepath.Join(opts.MiniAppRoot, name))
	}
	for _, path := range EssentialFiles(opts, refs) {
		add(path)
	}
	return fileutil.MapKeysSorted(seeds)
}

// EssentialFiles lists the absolute paths that are never reported unused:
// user-specified paths, project config files and ambient declaration files.
func EssentialFiles(opts config.Options, refs map[string]*parser.FileReferences) []string {
	out := make([]string, 0, len(opts.EssentialFiles)+2*len(EssentialConfigFiles))

	for _, path := range opts.EssentialFiles {
		if filepath.IsAbs(path) {
			out = append(out, filepath.Clean(path))
			continue
		}
		out = append(out,
			filepath.Join(opts.RootDirectory, path),
			filepath.Join(opts.MiniAppRoot, path),
		)
	}
	for _, name := range EssentialConfigFiles {
		out = append(out,
			filepath.Join(opts.RootDirectory, name),
			filepath.Join(opts.MiniAppRoot, name),
		)
	}

	ambient := make([]string, 0)
	for path, file := range refs {
		if file != nil && file.AmbientOnly {
			ambient = append(ambient, path)
		}
	}
	sort.Strings(ambient)
	out = append(out, ambient...)

	return fileutil.DedupeStrings(out)
}

// isModule reports whether id names a file node.
func isModule(g *graph.Graph, id string) bool {
	node, ok := g.Nodes[id]
	return ok && node.Type == graph.NodeModule
}
