package metrics

import (
	"github.com/samber/lo"
)

// Registry keeps metrics by ID, in registration order.
type Registry struct {
	metrics []Metric
	byID    map[ID]int
}

func NewRegistry(ms ...Metric) *Registry {
	r := &Registry{
		byID: map[ID]int{},
	}
	for _, m := range ms {
		r.Register(m)
	}
	return r
}

// DefaultRegistry has the whole catalogue.
func DefaultRegistry() *Registry {
	return NewRegistry(All()...)
}

// Register adds m. A metric with the same ID is replaced, keeping its position.
func (r *Registry) Register(m Metric) {
	if i, ok := r.byID[m.ID()]; ok {
		r.metrics[i] = m
		return
	}

	r.byID[m.ID()] = len(r.metrics)
	r.metrics = append(r.metrics, m)
}

func (r *Registry) Get(id ID) (Metric, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.metrics[i], true
}

func (r *Registry) IDs() []ID {
	return lo.Map(r.metrics, func(m Metric, _ int) ID { return m.ID() })
}

func (r *Registry) List() []Metric {
	return append([]Metric(nil), r.metrics...)
}
