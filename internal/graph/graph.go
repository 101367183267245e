// Package graph holds the typed project graph and the reachability sweep
// over it.
package graph

import (
	"sort"
)

type linkKey struct {
	source string
	target string
	typ    LinkType
}

// Graph is the mutable form used while assembling a ProjectStructure. It is
// not safe for concurrent writes.
type Graph struct {
	Nodes    map[string]*Node
	order    []string
	links    []Link
	linkSet  map[linkKey]bool
	outLinks map[string][]string // source ID -> target IDs
}

// NewGraph creates a new empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes:    make(map[string]*Node),
		linkSet:  make(map[linkKey]bool),
		outLinks: make(map[string][]string),
	}
}

// AddNode inserts a node unless its ID exists and returns the stored node.
func (g *Graph) AddNode(id string, typ NodeType, label string, props map[string]string) *Node {
	if existing, ok := g.Nodes[id]; ok {
		return existing
	}
	node := &Node{ID: id, Type: typ, Label: label, Properties: props}
	g.Nodes[id] = node
	g.order = append(g.order, id)
	return node
}

// HasNode reports whether id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// AddLink records a link when both endpoints exist. Dangling and duplicate
// links are dropped; the return value reports whether a link was added.
func (g *Graph) AddLink(source, target string, typ LinkType, props map[string]string) bool {
	if source == target || !g.HasNode(source) || !g.HasNode(target) {
		return false
	}
	key := linkKey{source: source, target: target, typ: typ}
	if g.linkSet[key] {
		return false
	}
	g.linkSet[key] = true
	g.links = append(g.links, Link{Source: source, Target: target, Type: typ, Properties: props})
	g.outLinks[source] = append(g.outLinks[source], target)
	return true
}

// Links returns links in insertion order.
func (g *Graph) Links() []Link {
	return g.links
}

// Successors returns the targets of all outgoing links of id.
func (g *Graph) Successors(id string) []string {
	return g.outLinks[id]
}

// ModuleIDs returns every Module node ID, sorted.
func (g *Graph) ModuleIDs() []string {
	out := make([]string, 0, len(g.Nodes))
	for id, node := range g.Nodes {
		if node.Type == NodeModule {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Structure snapshots the graph into its serialisable form. Nodes keep
// insertion order.
func (g *Graph) Structure(rootNodeID, rootDirectory, miniAppRoot string) *ProjectStructure {
	nodes := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, *g.Nodes[id])
	}
	links := make([]Link, len(g.links))
	copy(links, g.links)

	if rootNodeID != "" && !g.HasNode(rootNodeID) {
		rootNodeID = ""
	}
	return &ProjectStructure{
		Nodes:         nodes,
		Links:         links,
		RootNodeID:    rootNodeID,
		RootDirectory: rootDirectory,
		MiniAppRoot:   miniAppRoot,
	}
}
