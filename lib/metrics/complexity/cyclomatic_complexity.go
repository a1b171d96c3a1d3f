package complexity

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
)

// cyclomatic is McCabe's number: one for the method plus one per decision point.
type cyclomatic struct {
	value int
}

func newCyclomatic() *cyclomatic {
	return &cyclomatic{value: 1}
}

func (c *cyclomatic) enter(n *ast.Node, _ ast.NodeKind) {
	switch n.Kind {
	case ast.NodeIf, ast.NodeElseIf, ast.NodeConditional,
		ast.NodeFor, ast.NodeForEach, ast.NodeWhile, ast.NodeDoWhile,
		ast.NodeCase, ast.NodeCatch,
		ast.NodeAnd, ast.NodeOr:
		c.value++
	}
}

func (c *cyclomatic) exit(*ast.Node) {
}
