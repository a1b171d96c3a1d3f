package metrics

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
)

type ID string

const (
	NProtM     ID = "NProtM"
	MLOC       ID = "MLOC"
	CYCLO      ID = "CYCLO"
	MAXNESTING ID = "MAXNESTING"
	NOAV       ID = "NOAV"
	COGC       ID = "COGC"
	LOC        ID = "LOC"
	NOM        ID = "NOM"
	NOA        ID = "NOA"
	WMC        ID = "WMC"
	AMW        ID = "AMW"
)

func (i ID) String() string {
	return string(i)
}

// Metric computes one value for each type or method of an AST and stores it under its ID.
// Calculate may read the values of the metrics in Requires, which are always computed before.
type Metric interface {
	ID() ID
	Requires() []ID
	Calculate(a *ast.AST)
}

type typeMetric struct {
	id       ID
	requires []ID
	compute  func(t *ast.Type) float64
}

// NewTypeMetric creates a metric stored in ast.Type.Metrics.
func NewTypeMetric(id ID, compute func(t *ast.Type) float64, requires ...ID) Metric {
	return &typeMetric{
		id:       id,
		requires: requires,
		compute:  compute,
	}
}

func (m *typeMetric) ID() ID {
	return m.id
}

func (m *typeMetric) Requires() []ID {
	return m.requires
}

func (m *typeMetric) Calculate(a *ast.AST) {
	for _, t := range a.Types {
		t.Metrics.Set(string(m.id), m.compute(t))
	}
}

type methodMetric struct {
	id       ID
	requires []ID
	compute  func(t *ast.Type, method *ast.Method) float64
}

// NewMethodMetric creates a metric stored in ast.Method.Metrics.
func NewMethodMetric(id ID, compute func(t *ast.Type, method *ast.Method) float64, requires ...ID) Metric {
	return &methodMetric{
		id:       id,
		requires: requires,
		compute:  compute,
	}
}

func (m *methodMetric) ID() ID {
	return m.id
}

func (m *methodMetric) Requires() []ID {
	return m.requires
}

func (m *methodMetric) Calculate(a *ast.AST) {
	for _, t := range a.Types {
		for _, method := range t.Methods {
			method.Metrics.Set(string(m.id), m.compute(t, method))
		}
	}
}
