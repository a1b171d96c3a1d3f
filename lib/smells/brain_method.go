package smells

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/metrics"
	"github.com/Lucineia/RepositoryMiner/lib/model"
)

// BrainMethodOptions are the thresholds of NewBrainMethod. Zero values use the defaults and
// negative values set a threshold of zero.
type BrainMethodOptions struct {
	MLOC       int
	CYCLO      float64
	MaxNesting int
	NOAV       int
}

func DefaultBrainMethodOptions() BrainMethodOptions {
	return BrainMethodOptions{
		MLOC:       65,
		CYCLO:      10,
		MaxNesting: 5,
		NOAV:       5,
	}
}

func (o BrainMethodOptions) withDefaults() BrainMethodOptions {
	d := DefaultBrainMethodOptions()
	return BrainMethodOptions{
		MLOC:       threshold(o.MLOC, d.MLOC),
		CYCLO:      threshold(o.CYCLO, d.CYCLO),
		MaxNesting: threshold(o.MaxNesting, d.MaxNesting),
		NOAV:       threshold(o.NOAV, d.NOAV),
	}
}

// NewBrainMethod detects methods that centralize the behaviour of a class: long, complex, deeply
// nested and using many variables.
//
// A method is flagged when MLOC > MLOC threshold / 2 && CYCLO >= CYCLO threshold &&
// MAXNESTING >= MaxNesting threshold && NOAV > NOAV threshold.
func NewBrainMethod(opts ...BrainMethodOptions) Detector {
	var o BrainMethodOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	o = o.withDefaults()

	return &methodDetector{
		id:       BrainMethodID,
		requires: []metrics.ID{metrics.MLOC, metrics.CYCLO, metrics.MAXNESTING, metrics.NOAV},
		thresholds: model.Thresholds{
			{Name: string(metrics.MLOC), Value: float64(o.MLOC)},
			{Name: string(metrics.CYCLO), Value: o.CYCLO},
			{Name: string(metrics.NOAV), Value: float64(o.NOAV)},
			{Name: string(metrics.MAXNESTING), Value: float64(o.MaxNesting)},
		},
		applies: func(t *ast.Type) bool {
			return t.Archetype == ast.ClassOrInterface
		},
		matches: func(m *ast.Method) bool {
			return value(m, metrics.MLOC) > float64(o.MLOC/2) &&
				value(m, metrics.CYCLO) >= o.CYCLO &&
				value(m, metrics.MAXNESTING) >= float64(o.MaxNesting) &&
				value(m, metrics.NOAV) > float64(o.NOAV)
		},
	}
}
