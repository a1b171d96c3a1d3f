package complexity

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

// https://www.sonarsource.com/docs/CognitiveComplexity.pdf

type cognitive struct {
	method  string
	value   int
	nesting int
}

func newCognitive(method string) *cognitive {
	return &cognitive{method: method}
}

// structural kinds add one plus the current nesting, and nest what is inside them
func (c *cognitive) structural(k ast.NodeKind) bool {
	switch k {
	case ast.NodeIf, ast.NodeConditional,
		ast.NodeFor, ast.NodeForEach, ast.NodeWhile, ast.NodeDoWhile,
		ast.NodeSwitch, ast.NodeCatch:
		return true
	default:
		return false
	}
}

func (c *cognitive) enter(n *ast.Node, parent ast.NodeKind) {
	switch {
	case c.structural(n.Kind):
		c.value += 1 + utils.Max(c.nesting, 0)
		c.nesting++

	case n.Kind == ast.NodeElseIf, n.Kind == ast.NodeElse:
		// Same nesting as the if that owns it
		c.value++

	case n.Kind == ast.NodeAnd, n.Kind == ast.NodeOr:
		// Only the first operator of a sequence counts
		if parent != n.Kind {
			c.value++
		}

	case n.Kind == ast.NodeBreak, n.Kind == ast.NodeContinue:
		if n.Name != "" {
			c.value++
		}

	case n.Kind == ast.NodeCall:
		if n.Name == c.method {
			c.value++
		}

	case n.Kind == ast.NodeLambda:
		c.nesting++
	}
}

func (c *cognitive) exit(n *ast.Node) {
	if c.structural(n.Kind) || n.Kind == ast.NodeLambda {
		c.nesting--
	}
}
