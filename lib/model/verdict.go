package model

import "github.com/samber/lo"

type Threshold struct {
	Name  string
	Value float64
}

type Thresholds []Threshold

func (t Thresholds) Get(name string) (float64, bool) {
	r, ok := lo.Find(t, func(i Threshold) bool { return i.Name == name })
	return r.Value, ok
}

func (t Thresholds) ToMap() map[string]float64 {
	return lo.Associate(t, func(i Threshold) (string, float64) { return i.Name, i.Value })
}

// Verdict is the result of one smell detector for one type.
type Verdict struct {
	Smell      string
	Members    []string
	Thresholds Thresholds
}
