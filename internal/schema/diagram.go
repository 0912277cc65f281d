package schema

import "fmt"

// ViewMode selects which table/column names the diagram shows.
type ViewMode int

const (
	ViewLogical ViewMode = iota
	ViewPhysical
	ViewLogicalPhysical
)

func (m ViewMode) String() string {
	switch m {
	case ViewLogical:
		return "logical"
	case ViewPhysical:
		return "physical"
	case ViewLogicalPhysical:
		return "logical-physical"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// Settings are the global diagram settings.
type Settings struct {
	Database string
	ViewMode ViewMode
}

// VirtualTable overrides the placement of one real table inside a virtual diagram.
type VirtualTable struct {
	TableID  string // reference of the real table
	X        int
	Y        int
	FontName string
	FontSize int
}

// VirtualDiagram is a named sub-view over a subset of the tables.
type VirtualDiagram struct {
	VDiagramName string
	Color        *Color
	VTables      []VirtualTable

	// WalkerNotes and WalkerGroups are reserved and passed through untouched.
	WalkerNotes  map[string]any
	WalkerGroups map[string]any
}
