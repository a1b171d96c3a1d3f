package complexity

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

type Result struct {
	CyclomaticComplexity int
	CognitiveComplexity  int
	MaxNesting           int
}

type counter interface {
	enter(n *ast.Node, parent ast.NodeKind)
	exit(n *ast.Node)
}

// Compute walks the method body once, feeding all the counters.
// Methods without a body have cyclomatic complexity 1 and everything else 0.
func Compute(method *ast.Method) Result {
	cc := newCyclomatic()
	cog := newCognitive(method.Name)
	mn := newMaxNesting()

	w := &walker{counters: []counter{cc, cog, mn}}
	ast.Walk(method.Body, w.enter, w.exit)

	return Result{
		CyclomaticComplexity: cc.value,
		CognitiveComplexity:  cog.value,
		MaxNesting:           mn.max,
	}
}

type walker struct {
	parents  []*ast.Node
	counters []counter
}

func (w *walker) enter(n *ast.Node) bool {
	parent := ast.NodeOther
	if len(w.parents) > 0 {
		parent = utils.Last(w.parents).Kind
	}

	for _, c := range w.counters {
		c.enter(n, parent)
	}

	w.parents = append(w.parents, n)
	return true
}

func (w *walker) exit(n *ast.Node) {
	w.parents = utils.RemoveLast(w.parents)

	for _, c := range w.counters {
		c.exit(n)
	}
}
