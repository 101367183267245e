package parser

// ReferenceKind classifies an outgoing reference found in a file.
type ReferenceKind int

const (
	RefImport ReferenceKind = iota
	RefStyle
	RefTemplate
	RefResource
)

func (k ReferenceKind) String() string {
	switch k {
	case RefImport:
		return "import"
	case RefStyle:
		return "style"
	case RefTemplate:
		return "template"
	case RefResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Reference is one raw, unresolved outgoing reference.
type Reference struct {
	Path string        `json:"path"`
	Kind ReferenceKind `json:"kind"`
	Line int           `json:"line,omitempty"`
}

// FileReferences holds everything extracted from a single file
type FileReferences struct {
	Path       string
	Format     string
	References []Reference
	// AmbientOnly marks declaration-only files (*.d.ts, files holding only
	// declare/interface/type statements).
	AmbientOnly bool
}

// ParseIssue captures non-fatal extraction problems.
type ParseIssue struct {
	File     string `json:"file"`
	Format   string `json:"format,omitempty"`
	Severity string `json:"severity"` // warning | error
	Message  string `json:"message"`
}

// ParseResult holds the extraction result for a whole scan, keyed by
// absolute path.
type ParseResult struct {
	Files  map[string]*FileReferences
	Issues []ParseIssue
}
