package smells

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/metrics"
	"github.com/Lucineia/RepositoryMiner/lib/model"
)

const (
	BrainMethodID   = "BRAIN_METHOD"
	ComplexMethodID = "COMPLEX_METHOD"
	LongMethodID    = "LONG_METHOD"
)

// Detector decides if a type has one smell. Detect returns nil when it does not, and must only
// read the metrics listed in Requires.
type Detector interface {
	ID() string
	Requires() []metrics.ID
	Thresholds() model.Thresholds
	Detect(t *ast.Type, a *ast.AST) *model.Verdict
}

// methodDetector flags the methods of a type that match a predicate.
type methodDetector struct {
	id         string
	requires   []metrics.ID
	thresholds model.Thresholds
	applies    func(t *ast.Type) bool
	matches    func(m *ast.Method) bool
}

func (d *methodDetector) ID() string {
	return d.id
}

func (d *methodDetector) Requires() []metrics.ID {
	return d.requires
}

func (d *methodDetector) Thresholds() model.Thresholds {
	return append(model.Thresholds(nil), d.thresholds...)
}

func (d *methodDetector) Detect(t *ast.Type, _ *ast.AST) *model.Verdict {
	if d.applies != nil && !d.applies(t) {
		return nil
	}

	var members []string
	for _, m := range t.Methods {
		if d.matches(m) {
			members = append(members, m.Name)
		}
	}

	if len(members) == 0 {
		return nil
	}

	return &model.Verdict{
		Smell:      d.id,
		Members:    members,
		Thresholds: d.Thresholds(),
	}
}

func value(m *ast.Method, id metrics.ID) float64 {
	v, _ := m.Metrics.Get(string(id))
	return v
}

// threshold returns def for a zero value and zero for a negative one.
func threshold[T int | float64](v, def T) T {
	switch {
	case v == 0:
		return def
	case v < 0:
		return 0
	default:
		return v
	}
}
