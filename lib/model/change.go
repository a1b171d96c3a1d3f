package model

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeDelete
	ChangeModify
	ChangeCopy
	ChangeMove
)

func (t ChangeType) String() string {
	switch t {
	case ChangeAdd:
		return "ADD"
	case ChangeDelete:
		return "DELETE"
	case ChangeModify:
		return "MODIFY"
	case ChangeCopy:
		return "COPY"
	case ChangeMove:
		return "MOVE"
	default:
		return "UNKNOWN"
	}
}

func ParseChangeType(s string) (ChangeType, bool) {
	for _, t := range []ChangeType{ChangeAdd, ChangeDelete, ChangeModify, ChangeCopy, ChangeMove} {
		if t.String() == s {
			return t, true
		}
	}
	return ChangeModify, false
}

// Change is one file touched by a commit.
// OldPath is only set for ChangeCopy and ChangeMove.
type Change struct {
	Path         string
	OldPath      string
	LinesAdded   int
	LinesRemoved int
	Type         ChangeType

	// Binary changes are reported but their lines are not counted.
	Binary bool
}
