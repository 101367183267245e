package graph

// NodeType is the kind of a graph node.
type NodeType string

const (
	NodeApp       NodeType = "App"
	NodePackage   NodeType = "Package"
	NodePage      NodeType = "Page"
	NodeComponent NodeType = "Component"
	NodeModule    NodeType = "Module"
)

// LinkType is the kind of a graph link.
type LinkType string

const (
	LinkStructure   LinkType = "Structure"
	LinkImport      LinkType = "Import"
	LinkStyle       LinkType = "Style"
	LinkTemplate    LinkType = "Template"
	LinkConfig      LinkType = "Config"
	LinkResource    LinkType = "Resource"
	LinkWorkerEntry LinkType = "WorkerEntry"
)

// AppNodeID is the ID of the single App node.
const AppNodeID = "app"

// Node is a logical unit (app, package, page, component) or a physical file
// (module). Module IDs are absolute file paths.
type Node struct {
	ID         string            `json:"id"`
	Type       NodeType          `json:"type"`
	Label      string            `json:"label"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Link is a typed, directed edge between two existing nodes.
type Link struct {
	Source     string            `json:"source"`
	Target     string            `json:"target"`
	Type       LinkType          `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

// ProjectStructure is the complete output graph of one analysis run.
type ProjectStructure struct {
	Nodes         []Node `json:"nodes"`
	Links         []Link `json:"links"`
	RootNodeID    string `json:"rootNodeId,omitempty"`
	RootDirectory string `json:"rootDirectory"`
	MiniAppRoot   string `json:"miniappRoot"`
}

// PackageNodeID returns the node ID of a subpackage.
func PackageNodeID(root string) string {
	return "package:" + root
}

// PageNodeID returns the node ID of a page given its mini-app relative base.
func PageNodeID(base string) string {
	return "page:" + base
}

// ComponentNodeID returns the node ID of a component given its absolute base.
func ComponentNodeID(base string) string {
	return "component:" + base
}
