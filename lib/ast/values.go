package ast

import (
	"sort"
)

// Values holds metric results by metric identifier.
type Values map[string]float64

func (v Values) Set(id string, value float64) {
	v[id] = value
}

func (v Values) Get(id string) (float64, bool) {
	r, ok := v[id]
	return r, ok
}

// Int returns the value truncated, or -1 when missing.
func (v Values) Int(id string) int {
	r, ok := v[id]
	if !ok {
		return -1
	}
	return int(r)
}

func (v Values) Keys() []string {
	result := make([]string, 0, len(v))
	for k := range v {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func (v Values) Clone() map[string]float64 {
	result := make(map[string]float64, len(v))
	for k, x := range v {
		result[k] = x
	}
	return result
}
