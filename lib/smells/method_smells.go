package smells

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/metrics"
	"github.com/Lucineia/RepositoryMiner/lib/model"
)

type ComplexMethodOptions struct {
	CYCLO float64
}

func DefaultComplexMethodOptions() ComplexMethodOptions {
	return ComplexMethodOptions{CYCLO: 10}
}

// NewComplexMethod flags methods with CYCLO >= threshold.
func NewComplexMethod(opts ...ComplexMethodOptions) Detector {
	o := DefaultComplexMethodOptions()
	for _, oi := range opts {
		o.CYCLO = threshold(oi.CYCLO, o.CYCLO)
	}

	return &methodDetector{
		id:         ComplexMethodID,
		requires:   []metrics.ID{metrics.CYCLO},
		thresholds: model.Thresholds{{Name: string(metrics.CYCLO), Value: o.CYCLO}},
		matches: func(m *ast.Method) bool {
			return value(m, metrics.CYCLO) >= o.CYCLO
		},
	}
}

type LongMethodOptions struct {
	MLOC int
}

func DefaultLongMethodOptions() LongMethodOptions {
	return LongMethodOptions{MLOC: 30}
}

// NewLongMethod flags methods with MLOC > threshold.
func NewLongMethod(opts ...LongMethodOptions) Detector {
	o := DefaultLongMethodOptions()
	for _, oi := range opts {
		o.MLOC = threshold(oi.MLOC, o.MLOC)
	}

	return &methodDetector{
		id:         LongMethodID,
		requires:   []metrics.ID{metrics.MLOC},
		thresholds: model.Thresholds{{Name: string(metrics.MLOC), Value: float64(o.MLOC)}},
		matches: func(m *ast.Method) bool {
			return value(m, metrics.MLOC) > float64(o.MLOC)
		},
	}
}
