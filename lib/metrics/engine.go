package metrics

import (
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"v.io/x/lib/toposort"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
)

// Engine computes metrics after their prerequisites. It is safe for concurrent use as long as each
// goroutine works on its own AST.
type Engine struct {
	registry *Registry
	order    []ID
}

// NewEngine validates the prerequisites graph. No metric is computed when it has cycles or unknown
// metrics.
func NewEngine(registry *Registry) (*Engine, error) {
	for _, m := range registry.List() {
		for _, r := range m.Requires() {
			if _, ok := registry.Get(r); !ok {
				return nil, errors.Wrapf(ErrUnknownMetric, "%v requires %v", m.ID(), r)
			}
		}
	}

	graph := toposort.Sorter{}
	for _, m := range registry.List() {
		graph.AddNode(m.ID())
		for _, r := range m.Requires() {
			graph.AddEdge(m.ID(), r)
		}
	}

	_, cycles := graph.Sort()
	if len(cycles) > 0 {
		return nil, &CycleError{
			Cycles: lo.Map(cycles, func(c []interface{}, _ int) []ID {
				return lo.Map(c, func(id interface{}, _ int) ID { return id.(ID) })
			}),
		}
	}

	e := &Engine{registry: registry}
	e.order = e.computeOrder()
	return e, nil
}

// computeOrder lists every metric after its prerequisites, keeping registration order otherwise.
func (e *Engine) computeOrder() []ID {
	result := make([]ID, 0, len(e.registry.IDs()))
	visited := set.New[ID](len(e.registry.IDs()))

	var visit func(id ID)
	visit = func(id ID) {
		if visited.Contains(id) {
			return
		}
		visited.Insert(id)

		m, _ := e.registry.Get(id)
		for _, r := range m.Requires() {
			visit(r)
		}

		result = append(result, id)
	}

	for _, id := range e.registry.IDs() {
		visit(id)
	}

	return result
}

// Order is the computation order of all registered metrics.
func (e *Engine) Order() []ID {
	return append([]ID(nil), e.order...)
}

// Closure returns ids plus all their transitive prerequisites.
func (e *Engine) Closure(ids ...ID) (*set.Set[ID], error) {
	result := set.New[ID](len(e.order))

	pending := append([]ID(nil), ids...)
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if result.Contains(id) {
			continue
		}

		m, ok := e.registry.Get(id)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownMetric, "%v", id)
		}

		result.Insert(id)
		pending = append(pending, m.Requires()...)
	}

	return result, nil
}

// Calculate computes ids, and what they require, on every type of a. Without ids all metrics are
// computed.
func (e *Engine) Calculate(a *ast.AST, ids ...ID) error {
	selected, err := e.Closure(ids...)
	if err != nil {
		return err
	}

	for _, id := range e.order {
		if len(ids) > 0 && !selected.Contains(id) {
			continue
		}

		m, _ := e.registry.Get(id)
		m.Calculate(a)
	}

	return nil
}
