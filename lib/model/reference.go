package model

type ReferenceType int

const (
	BranchReference ReferenceType = iota
	TagReference
)

func (t ReferenceType) String() string {
	switch t {
	case BranchReference:
		return "BRANCH"
	case TagReference:
		return "TAG"
	default:
		return "UNKNOWN"
	}
}

// Reference is a branch or tag as read from the repository.
type Reference struct {
	Name string
	Path string
	Type ReferenceType
}

func NewReference(path string, t ReferenceType) *Reference {
	return &Reference{
		Name: ShortReferenceName(path),
		Path: path,
		Type: t,
	}
}

// ShortReferenceName returns the text after the last path separator.
func ShortReferenceName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
