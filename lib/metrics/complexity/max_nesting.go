package complexity

import (
	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

// maxNesting tracks the deepest stack of nested control structures.
// Else and else-if branches, as well as catch and finally clauses, live at the level of their owner.
type maxNesting struct {
	depth int
	max   int
}

func newMaxNesting() *maxNesting {
	return &maxNesting{}
}

func (c *maxNesting) nests(k ast.NodeKind) bool {
	return k == ast.NodeIf || k.IsLoop() || k == ast.NodeSwitch || k == ast.NodeTry
}

func (c *maxNesting) enter(n *ast.Node, _ ast.NodeKind) {
	if c.nests(n.Kind) {
		c.depth++
		c.max = utils.Max(c.max, c.depth)
	}
}

func (c *maxNesting) exit(n *ast.Node) {
	if c.nests(n.Kind) {
		c.depth--
	}
}
