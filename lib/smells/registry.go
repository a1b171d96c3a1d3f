package smells

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/metrics"
	"github.com/Lucineia/RepositoryMiner/lib/model"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

type Options struct {
	BrainMethod   BrainMethodOptions
	ComplexMethod ComplexMethodOptions
	LongMethod    LongMethodOptions
}

// Registry keeps detectors by ID, in registration order.
type Registry struct {
	detectors []Detector
	byID      map[string]int
}

func NewRegistry(ds ...Detector) *Registry {
	r := &Registry{
		byID: map[string]int{},
	}
	for _, d := range ds {
		r.Register(d)
	}
	return r
}

func DefaultRegistry(opts Options) *Registry {
	return NewRegistry(
		NewBrainMethod(opts.BrainMethod),
		NewComplexMethod(opts.ComplexMethod),
		NewLongMethod(opts.LongMethod),
	)
}

func (r *Registry) Register(d Detector) {
	if i, ok := r.byID[d.ID()]; ok {
		r.detectors[i] = d
		return
	}

	r.byID[d.ID()] = len(r.detectors)
	r.detectors = append(r.detectors, d)
}

func (r *Registry) Get(id string) (Detector, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.detectors[i], true
}

func (r *Registry) IDs() []string {
	return lo.Map(r.detectors, func(d Detector, _ int) string { return d.ID() })
}

func (r *Registry) List() []Detector {
	return append([]Detector(nil), r.detectors...)
}

// Requires lists the metrics needed by all detectors.
func Requires(detectors ...Detector) []metrics.ID {
	return lo.Uniq(lo.FlatMap(detectors, func(d Detector, _ int) []metrics.ID { return d.Requires() }))
}

// TypeVerdicts are the smells found in one type.
type TypeVerdicts struct {
	Type     *ast.Type
	Verdicts []*model.Verdict
}

// Run computes the metrics the detectors need and then runs them over every type of a, in parallel.
// The result follows the order of a.Types, and the verdicts the order of detectors.
func Run(ctx context.Context, engine *metrics.Engine, a *ast.AST, detectors ...Detector) ([]*TypeVerdicts, error) {
	err := engine.Calculate(a, Requires(detectors...)...)
	if err != nil {
		return nil, errors.Wrap(err, "error computing metrics for smells")
	}

	return Detect(ctx, a, detectors...)
}

// Detect runs the detectors over a, whose metrics must already be computed.
func Detect(ctx context.Context, a *ast.AST, detectors ...Detector) ([]*TypeVerdicts, error) {
	return utils.ParallelFor(a.Types, func(t *ast.Type) (*TypeVerdicts, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result := &TypeVerdicts{
			Type:     t,
			Verdicts: make([]*model.Verdict, 0),
		}

		for _, d := range detectors {
			v := d.Detect(t, a)
			if v != nil {
				result.Verdicts = append(result.Verdicts, v)
			}
		}

		return result, nil
	})
}
