package ast

type NodeKind int

const (
	NodeOther NodeKind = iota
	NodeBlock
	NodeIf
	NodeElseIf
	NodeElse
	NodeFor
	NodeForEach
	NodeWhile
	NodeDoWhile
	NodeSwitch
	NodeCase
	NodeDefault
	NodeTry
	NodeCatch
	NodeFinally
	NodeConditional
	NodeAnd
	NodeOr
	NodeVarDecl
	NodeVarAccess
	NodeCall
	NodeReturn
	NodeBreak
	NodeContinue
	NodeThrow
	NodeLambda
)

var nodeKindNames = map[NodeKind]string{
	NodeOther:       "Other",
	NodeBlock:       "Block",
	NodeIf:          "If",
	NodeElseIf:      "ElseIf",
	NodeElse:        "Else",
	NodeFor:         "For",
	NodeForEach:     "ForEach",
	NodeWhile:       "While",
	NodeDoWhile:     "DoWhile",
	NodeSwitch:      "Switch",
	NodeCase:        "Case",
	NodeDefault:     "Default",
	NodeTry:         "Try",
	NodeCatch:       "Catch",
	NodeFinally:     "Finally",
	NodeConditional: "Conditional",
	NodeAnd:         "And",
	NodeOr:          "Or",
	NodeVarDecl:     "VarDecl",
	NodeVarAccess:   "VarAccess",
	NodeCall:        "Call",
	NodeReturn:      "Return",
	NodeBreak:       "Break",
	NodeContinue:    "Continue",
	NodeThrow:       "Throw",
	NodeLambda:      "Lambda",
}

func (k NodeKind) String() string {
	if n, ok := nodeKindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// IsClause is true for the kinds that continue the statement that owns them.
func (k NodeKind) IsClause() bool {
	switch k {
	case NodeElseIf, NodeElse, NodeCase, NodeDefault, NodeCatch, NodeFinally:
		return true
	default:
		return false
	}
}

// IsLoop is true for the kinds that repeat their body.
func (k NodeKind) IsLoop() bool {
	return k == NodeFor || k == NodeForEach || k == NodeWhile || k == NodeDoWhile
}

// Node is a language independent statement/expression tree of a method body.
// Name is the variable name for NodeVarDecl/NodeVarAccess, the callee for NodeCall and the label
// for NodeBreak/NodeContinue.
//
// Clauses are children of the statement that owns them: NodeElseIf and NodeElse of their NodeIf,
// NodeCase and NodeDefault of their NodeSwitch, NodeCatch and NodeFinally of their NodeTry.
type Node struct {
	Kind     NodeKind
	Name     string
	Line     int
	Children []*Node
}

func NewNode(kind NodeKind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits the tree depth first. exit may be nil.
// When enter returns false the children of that node are skipped, but exit is still called.
func Walk(n *Node, enter func(*Node) bool, exit func(*Node)) {
	if n == nil {
		return
	}

	if enter(n) {
		for _, c := range n.Children {
			Walk(c, enter, exit)
		}
	}

	if exit != nil {
		exit(n)
	}
}
