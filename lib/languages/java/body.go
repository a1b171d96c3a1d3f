package java

import (
	"github.com/hashicorp/go-set/v2"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
)

// bodyBuilder maps a tree-sitter method body to ast.Node.
type bodyBuilder struct {
	file   *fileParser
	fields *set.Set[string]
}

func (b *bodyBuilder) text(n *sitter.Node) string {
	return b.file.text(n)
}

func (b *bodyBuilder) newNode(kind ast.NodeKind, n *sitter.Node) *ast.Node {
	return &ast.Node{Kind: kind, Line: startLine(n)}
}

// declareLocals registers every variable declared in the body, so accesses can be told apart from
// other identifiers.
func (b *bodyBuilder) declareLocals(n *sitter.Node) {
	declare := func(name *sitter.Node) {
		if name != nil {
			b.file.tracker.DeclareVariable(b.text(name))
		}
	}

	switch n.Type() {
	case "class_body", "class_declaration":
		return

	case "local_variable_declaration":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if d := n.NamedChild(i); d.Type() == "variable_declarator" {
				declare(d.ChildByFieldName("name"))
			}
		}

	case "enhanced_for_statement", "catch_formal_parameter", "resource", "formal_parameter":
		declare(n.ChildByFieldName("name"))

	case "lambda_expression":
		params := n.ChildByFieldName("parameters")
		if params != nil && params.Type() == "identifier" {
			declare(params)
		}

	case "inferred_parameters":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			declare(n.NamedChild(i))
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.declareLocals(n.NamedChild(i))
	}
}

func (b *bodyBuilder) visitChildren(n *sitter.Node, parent *ast.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.visit(n.NamedChild(i), parent)
	}
}

func (b *bodyBuilder) visitField(n *sitter.Node, field string, parent *ast.Node) {
	if child := n.ChildByFieldName(field); child != nil {
		b.visit(child, parent)
	}
}

func (b *bodyBuilder) visit(n *sitter.Node, parent *ast.Node) {
	switch n.Type() {
	case "line_comment", "block_comment", "class_body", "class_declaration", "interface_declaration",
		"enum_declaration", "record_declaration":
		// Local and anonymous types are not part of the method

	case "formal_parameters", "inferred_parameters", "catch_formal_parameter":
		// Declarations only

	case "block", "constructor_body":
		b.visitChildren(n, b.add(parent, ast.NodeBlock, n))

	case "if_statement":
		b.visitIf(n, parent, ast.NodeIf)

	case "for_statement":
		b.visitChildren(n, b.add(parent, ast.NodeFor, n))

	case "enhanced_for_statement":
		node := b.add(parent, ast.NodeForEach, n)
		node.Add(&ast.Node{Kind: ast.NodeVarDecl, Name: b.text(n.ChildByFieldName("name")), Line: startLine(n)})
		b.visitField(n, "value", node)
		b.visitField(n, "body", node)

	case "while_statement":
		b.visitChildren(n, b.add(parent, ast.NodeWhile, n))

	case "do_statement":
		b.visitChildren(n, b.add(parent, ast.NodeDoWhile, n))

	case "switch_expression", "switch_statement":
		b.visitSwitch(n, parent)

	case "try_statement", "try_with_resources_statement":
		b.visitTry(n, parent)

	case "ternary_expression":
		b.visitChildren(n, b.add(parent, ast.NodeConditional, n))

	case "binary_expression":
		operator := n.ChildByFieldName("operator")
		if operator == nil {
			b.visitChildren(n, parent)
			return
		}

		switch operator.Type() {
		case "&&":
			b.visitChildren(n, b.add(parent, ast.NodeAnd, n))
		case "||":
			b.visitChildren(n, b.add(parent, ast.NodeOr, n))
		default:
			b.visitChildren(n, parent)
		}

	case "local_variable_declaration":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			d := n.NamedChild(i)
			if d.Type() != "variable_declarator" {
				continue
			}

			node := b.add(parent, ast.NodeVarDecl, d)
			node.Name = b.text(d.ChildByFieldName("name"))
			b.visitField(d, "value", node)
		}

	case "identifier":
		name := b.text(n)
		if b.file.tracker.IsVariable(name) || b.fields.Contains(name) {
			node := b.add(parent, ast.NodeVarAccess, n)
			node.Name = name
		}

	case "field_access":
		object := n.ChildByFieldName("object")
		if object != nil && object.Type() == "this" {
			name := b.text(n.ChildByFieldName("field"))
			if b.fields.Contains(name) {
				node := b.add(parent, ast.NodeVarAccess, n)
				node.Name = name
			}
		} else if object != nil {
			b.visit(object, parent)
		}

	case "method_invocation":
		node := b.add(parent, ast.NodeCall, n)
		node.Name = b.text(n.ChildByFieldName("name"))
		b.visitField(n, "object", node)
		b.visitField(n, "arguments", node)

	case "return_statement", "yield_statement":
		b.visitChildren(n, b.add(parent, ast.NodeReturn, n))

	case "throw_statement":
		b.visitChildren(n, b.add(parent, ast.NodeThrow, n))

	case "break_statement", "continue_statement":
		kind := ast.NodeBreak
		if n.Type() == "continue_statement" {
			kind = ast.NodeContinue
		}

		node := b.add(parent, kind, n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if l := n.NamedChild(i); l.Type() == "identifier" {
				node.Name = b.text(l)
			}
		}

	case "labeled_statement":
		// The label is not a variable
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c.Type() != "identifier" {
				b.visit(c, parent)
			}
		}

	case "lambda_expression":
		b.visitField(n, "body", b.add(parent, ast.NodeLambda, n))

	default:
		b.visitChildren(n, parent)
	}
}

func (b *bodyBuilder) add(parent *ast.Node, kind ast.NodeKind, n *sitter.Node) *ast.Node {
	node := b.newNode(kind, n)
	parent.Add(node)
	return node
}

// visitIf keeps the else-if chain as children of the first if.
func (b *bodyBuilder) visitIf(n *sitter.Node, parent *ast.Node, kind ast.NodeKind) {
	node := b.add(parent, kind, n)
	b.visitField(n, "condition", node)
	b.visitField(n, "consequence", node)

	alternative := n.ChildByFieldName("alternative")
	if alternative == nil {
		return
	}

	if alternative.Type() == "if_statement" {
		b.visitIf(alternative, node, ast.NodeElseIf)
	} else {
		b.visit(alternative, b.add(node, ast.NodeElse, alternative))
	}
}

func (b *bodyBuilder) visitSwitch(n *sitter.Node, parent *ast.Node) {
	node := b.add(parent, ast.NodeSwitch, n)
	b.visitField(n, "condition", node)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		group := body.NamedChild(i)

		switch group.Type() {
		case "switch_block_statement_group", "switch_rule":
			var clause *ast.Node
			for j := 0; j < int(group.NamedChildCount()); j++ {
				child := group.NamedChild(j)

				if child.Type() == "switch_label" {
					clause = b.add(node, b.labelKind(child), child)
					b.visitChildren(child, clause)
				} else if clause != nil {
					b.visit(child, clause)
				}
			}

		default:
			b.visit(group, node)
		}
	}
}

func (b *bodyBuilder) labelKind(label *sitter.Node) ast.NodeKind {
	for i := 0; i < int(label.ChildCount()); i++ {
		if label.Child(i).Type() == "default" {
			return ast.NodeDefault
		}
	}
	return ast.NodeCase
}

func (b *bodyBuilder) visitTry(n *sitter.Node, parent *ast.Node) {
	node := b.add(parent, ast.NodeTry, n)

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		switch child.Type() {
		case "catch_clause":
			clause := b.add(node, ast.NodeCatch, child)
			for j := 0; j < int(child.NamedChildCount()); j++ {
				c := child.NamedChild(j)
				if c.Type() == "catch_formal_parameter" {
					clause.Add(&ast.Node{Kind: ast.NodeVarDecl, Name: b.text(c.ChildByFieldName("name")), Line: startLine(c)})
				} else {
					b.visit(c, clause)
				}
			}

		case "finally_clause":
			b.visitChildren(child, b.add(node, ast.NodeFinally, child))

		default:
			b.visit(child, node)
		}
	}
}
