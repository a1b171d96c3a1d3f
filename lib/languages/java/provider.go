package java

import (
	"context"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/languages"
)

const Language = "Java"

type Provider struct {
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Language() string {
	return Language
}

func (p *Provider) Parse(ctx context.Context, path string, content []byte) (*ast.AST, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing %v", path)
	}

	result := &ast.AST{
		Path:     path,
		Language: Language,
		Source:   content,
	}

	f := &fileParser{
		content: content,
		tracker: languages.NewLocationTracker(path),
		result:  result,
	}
	f.visitDeclarations(tree.RootNode())

	return result, nil
}

type fileParser struct {
	content []byte
	tracker *languages.LocationTracker
	result  *ast.AST
}

func (f *fileParser) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.content)
}

func (f *fileParser) visitDeclarations(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		switch child.Type() {
		case "class_declaration", "interface_declaration", "record_declaration":
			f.visitType(child, ast.ClassOrInterface)
		case "enum_declaration":
			f.visitType(child, ast.Enum)
		case "annotation_type_declaration":
			f.visitType(child, ast.Annotation)
		}
	}
}

func (f *fileParser) visitType(n *sitter.Node, archetype ast.Archetype) {
	f.tracker.EnterType(f.text(n.ChildByFieldName("name")))
	defer f.tracker.ExitType()

	t := ast.NewType(f.tracker.CurrentTypeName(), archetype, f.modifiers(n))
	t.StartLine = startLine(n)
	t.EndLine = endLine(n)
	f.result.Types = append(f.result.Types, t)

	if n.Type() == "record_declaration" {
		for _, name := range f.parameters(n.ChildByFieldName("parameters")) {
			t.AddField(&ast.Field{Name: name, Modifiers: ast.Private | ast.Final})
		}
	}

	members := f.members(n.ChildByFieldName("body"))

	for _, m := range members {
		switch m.Type() {
		case "field_declaration", "constant_declaration":
			f.visitField(t, m)
		}
	}

	fields := set.From(t.FieldNames())

	for _, m := range members {
		switch m.Type() {
		case "method_declaration", "constructor_declaration", "compact_constructor_declaration",
			"annotation_type_element_declaration":
			f.visitMethod(t, m, fields)

		case "class_declaration", "interface_declaration", "record_declaration":
			f.visitType(m, ast.ClassOrInterface)
		case "enum_declaration":
			f.visitType(m, ast.Enum)
		case "annotation_type_declaration":
			f.visitType(m, ast.Annotation)
		}
	}
}

// members lists the declarations of a type body. Enum members live inside enum_body_declarations.
func (f *fileParser) members(body *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	if body == nil {
		return result
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)

		if child.Type() == "enum_body_declarations" {
			result = append(result, f.members(child)...)
		} else {
			result = append(result, child)
		}
	}

	return result
}

func (f *fileParser) visitField(t *ast.Type, n *sitter.Node) {
	mods := f.modifiers(n)
	typeName := f.text(n.ChildByFieldName("type"))

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}

		t.AddField(&ast.Field{
			Name:      f.text(child.ChildByFieldName("name")),
			Type:      typeName,
			Modifiers: mods,
		})
	}
}

func (f *fileParser) visitMethod(t *ast.Type, n *sitter.Node, fields *set.Set[string]) {
	name := f.text(n.ChildByFieldName("name"))
	params := f.parameters(n.ChildByFieldName("parameters"))

	f.tracker.EnterMethod(name, params)
	defer f.tracker.ExitMethod()

	m := ast.NewMethod(name, f.modifiers(n))
	m.Parameters = params
	m.StartLine = startLine(n)
	m.EndLine = endLine(n)

	if body := n.ChildByFieldName("body"); body != nil {
		b := &bodyBuilder{
			file:   f,
			fields: fields,
		}
		b.declareLocals(body)

		m.Body = ast.NewNode(ast.NodeBlock)
		m.Body.Line = startLine(body)
		b.visitChildren(body, m.Body)
	}

	t.AddMethod(m)
}

func (f *fileParser) parameters(n *sitter.Node) []string {
	result := make([]string, 0)
	if n == nil {
		return result
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		switch child.Type() {
		case "formal_parameter":
			result = append(result, f.text(child.ChildByFieldName("name")))

		case "spread_parameter":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if d := child.NamedChild(j); d.Type() == "variable_declarator" {
					result = append(result, f.text(d.ChildByFieldName("name")))
				}
			}
		}
	}

	return result
}

func (f *fileParser) modifiers(n *sitter.Node) ast.Modifiers {
	var names []string

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "modifiers" {
			continue
		}

		for j := 0; j < int(child.ChildCount()); j++ {
			m := child.Child(j)
			switch m.Type() {
			case "marker_annotation", "annotation", "line_comment", "block_comment":
				continue
			}
			names = append(names, f.text(m))
		}
	}

	return ast.ParseModifiers(names...)
}

func startLine(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func endLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}
