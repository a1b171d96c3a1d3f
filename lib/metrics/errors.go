package metrics

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	ErrMetricCycle   = errors.New("cyclic metric prerequisites")
	ErrUnknownMetric = errors.New("unknown metric")
)

// CycleError lists the metrics that depend on each other.
type CycleError struct {
	Cycles [][]ID
}

func (e *CycleError) Error() string {
	cycles := lo.Map(e.Cycles, func(c []ID, _ int) string {
		return strings.Join(lo.Map(c, func(id ID, _ int) string { return string(id) }), " -> ")
	})
	return ErrMetricCycle.Error() + ": " + strings.Join(cycles, ", ")
}

func (e *CycleError) Is(target error) bool {
	return target == ErrMetricCycle
}
