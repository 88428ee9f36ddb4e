package codefmt

import "fmt"

// Pos locates a declaration element in the schema source that the host
// collaborator parsed. The generator never reads source files itself; it only
// carries positions through to diagnostics.
type Pos struct {
	File string
	Line int
	Col  int
}

// IsValid reports whether the position points at a real location.
func (p Pos) IsValid() bool { return p.File != "" && p.Line > 0 }

// String formats the position as "file:line:col". An invalid position is
// rendered as "-:-".
func (p Pos) String() string {
	if !p.IsValid() {
		return "-:-"
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Poser is anything carrying a source position.
type Poser interface{ Pos() Pos }
