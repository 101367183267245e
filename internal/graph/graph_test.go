package graph

import (
	"encoding/json"
	"testing"
)

func TestAddNodeIsIdempotent(t *testing.T) {
	g := NewGraph()
	first := g.AddNode("/p/a.js", NodeModule, "a.js", nil)
	second := g.AddNode("/p/a.js", NodePage, "other", nil)

	if first != second {
		t.Fatalf("expected the stored node to be returned on duplicate add")
	}
	if second.Type != NodeModule {
		t.Fatalf("expected original node to be kept, got %s", second.Type)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(g.Nodes))
	}
}

func TestAddLinkIntegrity(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", NodeModule, "a", nil)
	g.AddNode("b", NodeModule, "b", nil)

	if !g.AddLink("a", "b", LinkImport, nil) {
		t.Fatalf("expected link a->b to be added")
	}
	if g.AddLink("a", "b", LinkImport, nil) {
		t.Fatalf("expected duplicate link to be dropped")
	}
	if !g.AddLink("a", "b", LinkStyle, nil) {
		t.Fatalf("expected link of another type to be added")
	}
	if g.AddLink("a", "missing", LinkImport, nil) || g.AddLink("missing", "a", LinkImport, nil) {
		t.Fatalf("expected dangling links to be dropped")
	}
	if g.AddLink("a", "a", LinkImport, nil) {
		t.Fatalf("expected self link to be dropped")
	}

	for _, link := range g.Links() {
		if !g.HasNode(link.Source) || !g.HasNode(link.Target) {
			t.Fatalf("dangling link stored: %+v", link)
		}
	}
	if len(g.Links()) != 2 {
		t.Fatalf("expected 2 links, got %d", len(g.Links()))
	}
}

func TestReachableFollowsEveryLinkType(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{AppNodeID, "page:index", "/p/index.js", "/p/util.js", "/p/bg.png", "/p/orphan.js", "/p/orphan-dep.js"} {
		typ := NodeModule
		switch id {
		case AppNodeID:
			typ = NodeApp
		case "page:index":
			typ = NodePage
		}
		g.AddNode(id, typ, id, nil)
	}
	g.AddLink(AppNodeID, "page:index", LinkStructure, nil)
	g.AddLink("page:index", "/p/index.js", LinkStructure, nil)
	g.AddLink("/p/index.js", "/p/util.js", LinkImport, nil)
	g.AddLink("/p/util.js", "/p/index.js", LinkImport, nil)
	g.AddLink("/p/util.js", "/p/bg.png", LinkResource, nil)
	g.AddLink("/p/orphan.js", "/p/orphan-dep.js", LinkImport, nil)

	reachable := g.Reachable([]string{AppNodeID, "not-a-node"})
	for _, id := range []string{AppNodeID, "page:index", "/p/index.js", "/p/util.js", "/p/bg.png"} {
		if !reachable[id] {
			t.Fatalf("expected %s to be reachable", id)
		}
	}
	if reachable["not-a-node"] {
		t.Fatalf("unknown seeds must be ignored")
	}

	unused := g.Unreachable(reachable)
	want := []string{"/p/orphan-dep.js", "/p/orphan.js"}
	if len(unused) != len(want) || unused[0] != want[0] || unused[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, unused)
	}
}

func TestReachableEmptySeeds(t *testing.T) {
	g := NewGraph()
	g.AddNode("/p/a.js", NodeModule, "a.js", nil)
	if got := g.Reachable(nil); len(got) != 0 {
		t.Fatalf("expected nothing reachable, got %v", got)
	}
}

func TestStructureSnapshot(t *testing.T) {
	g := NewGraph()
	g.AddNode(AppNodeID, NodeApp, "App", nil)
	g.AddNode("/p/app.js", NodeModule, "app.js", map[string]string{"ext": ".js"})
	g.AddLink(AppNodeID, "/p/app.js", LinkStructure, nil)

	s := g.Structure(AppNodeID, "/p", "/p")
	if s.RootNodeID != AppNodeID || len(s.Nodes) != 2 || len(s.Links) != 1 {
		t.Fatalf("unexpected structure: %+v", s)
	}
	if s.Nodes[0].ID != AppNodeID {
		t.Fatalf("expected insertion order to be kept, got %v", s.Nodes)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded ProjectStructure
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Links[0].Type != LinkStructure || decoded.Nodes[1].Properties["ext"] != ".js" {
		t.Fatalf("unexpected decoded structure: %+v", decoded)
	}

	if missing := g.Structure("nope", "/p", "/p"); missing.RootNodeID != "" {
		t.Fatalf("expected unknown root node to be cleared, got %q", missing.RootNodeID)
	}
}
