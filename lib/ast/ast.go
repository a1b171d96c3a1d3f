package ast

type Archetype int

const (
	ClassOrInterface Archetype = iota
	Enum
	Annotation
)

func (a Archetype) String() string {
	switch a {
	case ClassOrInterface:
		return "CLASS_OR_INTERFACE"
	case Enum:
		return "ENUM"
	case Annotation:
		return "ANNOTATION"
	default:
		return "UNKNOWN"
	}
}

// AST is the parsed content of one source file.
type AST struct {
	Path     string
	Language string
	Source   []byte
	Types    []*Type
}

type Type struct {
	Name      string
	Archetype Archetype
	Modifiers Modifiers
	StartLine int
	EndLine   int

	Methods []*Method
	Fields  []*Field

	Metrics Values
}

func NewType(name string, archetype Archetype, modifiers Modifiers) *Type {
	return &Type{
		Name:      name,
		Archetype: archetype,
		Modifiers: modifiers,
		Metrics:   Values{},
	}
}

func (t *Type) AddMethod(m *Method) *Method {
	t.Methods = append(t.Methods, m)
	return m
}

func (t *Type) AddField(f *Field) *Field {
	t.Fields = append(t.Fields, f)
	return f
}

func (t *Type) FieldNames() []string {
	result := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		result[i] = f.Name
	}
	return result
}

type Method struct {
	Name       string
	Modifiers  Modifiers
	Parameters []string
	StartLine  int
	EndLine    int

	// Body is nil for methods without implementation.
	Body *Node

	Metrics Values
}

func NewMethod(name string, modifiers Modifiers) *Method {
	return &Method{
		Name:      name,
		Modifiers: modifiers,
		Metrics:   Values{},
	}
}

type Field struct {
	Name      string
	Type      string
	Modifiers Modifiers
}
