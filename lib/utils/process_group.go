package utils

import (
	"runtime"
	"sync"
)

type ParallelOptions struct {
	Routines     int
	InputFactor  int
	OutputFactor int
}

// ParallelFor runs proc over every element of col and returns the outputs in input order.
// The first error aborts the remaining work and is returned.
func ParallelFor[T, O any](col []T, proc func(T) (O, error), opts ...ParallelOptions) ([]O, error) {
	type indexed[V any] struct {
		index int
		value V
	}

	group := NewProcessGroup(func(in indexed[T]) (indexed[O], error) {
		out, err := proc(in.value)
		return indexed[O]{in.index, out}, err
	}, opts...)

	go func() {
		defer group.FinishedInput()

		for i, w := range col {
			select {
			case group.Input <- indexed[T]{i, w}:
			case <-group.abort:
				return
			}
		}
	}()

	result := make([]O, len(col))
	for out := range group.Output {
		result[out.index] = out.value
	}

	err := group.Error()
	if err != nil {
		return nil, err
	}

	return result, nil
}

type ProcessGroup[I, O any] struct {
	proc      func(I) (O, error)
	abort     chan struct{}
	abortOnce sync.Once
	err       error
	wg        sync.WaitGroup

	Input  chan I
	Output chan O
}

func NewProcessGroup[I, O any](proc func(I) (O, error), opts ...ParallelOptions) *ProcessGroup[I, O] {
	o := ParallelOptions{
		Routines:     Max(Min(runtime.GOMAXPROCS(-1), runtime.NumCPU()/2)-1, 1),
		InputFactor:  2,
		OutputFactor: 2,
	}
	for _, oi := range opts {
		if oi.Routines > 0 {
			o.Routines = oi.Routines
		}
		if oi.InputFactor > 0 {
			o.InputFactor = oi.InputFactor
		}
		if oi.OutputFactor > 0 {
			o.OutputFactor = oi.OutputFactor
		}
	}

	group := ProcessGroup[I, O]{
		proc:  proc,
		abort: make(chan struct{}),

		Input:  make(chan I, o.InputFactor*o.Routines),
		Output: make(chan O, o.OutputFactor*o.Routines),
	}

	for i := 0; i < o.Routines; i++ {
		group.wg.Add(1)
		go group.runProcessor()
	}

	go func() {
		group.wg.Wait()
		close(group.Output)
	}()

	return &group
}

func (g *ProcessGroup[I, O]) runProcessor() {
	defer g.wg.Done()

	for {
		select {
		case <-g.abort:
			return

		case input, ok := <-g.Input:
			if !ok || g.Aborted() {
				return
			}

			output, err := g.proc(input)
			if err != nil {
				g.Abort(err)
				return
			}

			select {
			case g.Output <- output:
			case <-g.abort:
				return
			}
		}
	}
}

func (g *ProcessGroup[I, O]) FinishedInput() {
	close(g.Input)
}

// Abort stops all processors. Only the first error is kept.
func (g *ProcessGroup[I, O]) Abort(err error) {
	g.abortOnce.Do(func() {
		g.err = err
		close(g.abort)
	})
}

func (g *ProcessGroup[I, O]) Aborted() bool {
	select {
	case <-g.abort:
		return true
	default:
		return false
	}
}

// Error must be called after Output was drained.
func (g *ProcessGroup[I, O]) Error() error {
	g.wg.Wait()
	return g.err
}
