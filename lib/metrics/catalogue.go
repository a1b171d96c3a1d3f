package metrics

import (
	"github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/metrics/complexity"
)

// All returns every known metric, in a stable order.
func All() []Metric {
	return []Metric{
		NewTypeMetric(NProtM, computeNProtM),
		NewMethodMetric(MLOC, computeMLOC),
		NewMethodMetric(CYCLO, computeCYCLO),
		NewMethodMetric(MAXNESTING, computeMaxNesting),
		NewMethodMetric(NOAV, computeNOAV),
		NewMethodMetric(COGC, computeCOGC),
		NewTypeMetric(LOC, computeLOC),
		NewTypeMetric(NOM, computeNOM),
		NewTypeMetric(NOA, computeNOA),
		NewTypeMetric(WMC, computeWMC, CYCLO),
		NewTypeMetric(AMW, computeAMW, WMC, NOM),
	}
}

// isProtected counts explicit protected and package private members.
func isProtected(m ast.Modifiers) bool {
	if m.Has(ast.Protected) {
		return true
	}
	return !m.Has(ast.Public) && !m.Has(ast.Private)
}

func computeNProtM(t *ast.Type) float64 {
	fields := lo.CountBy(t.Fields, func(f *ast.Field) bool { return isProtected(f.Modifiers) })
	methods := lo.CountBy(t.Methods, func(m *ast.Method) bool { return isProtected(m.Modifiers) })
	return float64(fields + methods)
}

func computeMLOC(_ *ast.Type, m *ast.Method) float64 {
	if m.Body == nil || m.EndLine < m.StartLine {
		return 0
	}
	return float64(m.EndLine - m.StartLine + 1)
}

func computeCYCLO(_ *ast.Type, m *ast.Method) float64 {
	return float64(complexity.Compute(m).CyclomaticComplexity)
}

func computeMaxNesting(_ *ast.Type, m *ast.Method) float64 {
	return float64(complexity.Compute(m).MaxNesting)
}

func computeCOGC(_ *ast.Type, m *ast.Method) float64 {
	return float64(complexity.Compute(m).CognitiveComplexity)
}

func computeNOAV(_ *ast.Type, m *ast.Method) float64 {
	vars := set.New[string](20)

	ast.Walk(m.Body, func(n *ast.Node) bool {
		if n.Kind == ast.NodeVarAccess && n.Name != "" {
			vars.Insert(n.Name)
		}
		return true
	}, nil)

	return float64(vars.Size())
}

func computeLOC(t *ast.Type) float64 {
	if t.EndLine < t.StartLine {
		return 0
	}
	return float64(t.EndLine - t.StartLine + 1)
}

func computeNOM(t *ast.Type) float64 {
	return float64(len(t.Methods))
}

func computeNOA(t *ast.Type) float64 {
	return float64(len(t.Fields))
}

func computeWMC(t *ast.Type) float64 {
	return lo.SumBy(t.Methods, func(m *ast.Method) float64 {
		v, _ := m.Metrics.Get(string(CYCLO))
		return v
	})
}

func computeAMW(t *ast.Type) float64 {
	nom, _ := t.Metrics.Get(string(NOM))
	if nom == 0 {
		return 0
	}

	wmc, _ := t.Metrics.Get(string(WMC))
	return wmc / nom
}
