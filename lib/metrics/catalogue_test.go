package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
)

func calculate(t *testing.T, typ *ast.Type, ids ...ID) {
	t.Helper()

	e, err := NewEngine(DefaultRegistry())
	require.NoError(t, err)
	require.NoError(t, e.Calculate(&ast.AST{Types: []*ast.Type{typ}}, ids...))
}

func access(name string) *ast.Node {
	return &ast.Node{Kind: ast.NodeVarAccess, Name: name}
}

func TestNProtM(t *testing.T) {
	t.Parallel()

	typ := ast.NewType("A", ast.ClassOrInterface, ast.Public)
	typ.AddField(&ast.Field{Name: "a", Modifiers: ast.Private})
	typ.AddField(&ast.Field{Name: "b", Modifiers: ast.Protected})
	typ.AddField(&ast.Field{Name: "c", Modifiers: ast.Static})
	typ.AddMethod(ast.NewMethod("d", ast.Public))
	typ.AddMethod(ast.NewMethod("e", ast.Protected|ast.Final))
	typ.AddMethod(ast.NewMethod("f", 0))

	calculate(t, typ, NProtM)

	assert.Equal(t, 4, typ.Metrics.Int(string(NProtM)))
}

func TestNProtMGrowsWithProtectedMembers(t *testing.T) {
	t.Parallel()

	typ := ast.NewType("A", ast.ClassOrInterface, ast.Public)
	typ.AddField(&ast.Field{Name: "a", Modifiers: ast.Public})
	calculate(t, typ, NProtM)
	before := typ.Metrics.Int(string(NProtM))

	typ.AddMethod(ast.NewMethod("m", ast.Protected))
	calculate(t, typ, NProtM)

	assert.Equal(t, before+1, typ.Metrics.Int(string(NProtM)))
}

func TestMethodMetrics(t *testing.T) {
	t.Parallel()

	typ := ast.NewType("A", ast.ClassOrInterface, ast.Public)
	typ.StartLine = 1
	typ.EndLine = 50
	typ.AddField(&ast.Field{Name: "count"})

	m := typ.AddMethod(ast.NewMethod("run", ast.Public))
	m.StartLine = 10
	m.EndLine = 29
	m.Body = ast.NewNode(ast.NodeBlock,
		ast.NewNode(ast.NodeIf,
			access("a"),
			ast.NewNode(ast.NodeBlock,
				ast.NewNode(ast.NodeFor, access("b"), access("count"), access("a")),
			),
		),
		ast.NewNode(ast.NodeOr, access("a"), access("c")),
	)

	abstract := typ.AddMethod(ast.NewMethod("todo", ast.Public|ast.Abstract))
	abstract.StartLine = 31
	abstract.EndLine = 31

	calculate(t, typ)

	assert.Equal(t, 20, m.Metrics.Int(string(MLOC)))
	assert.Equal(t, 4, m.Metrics.Int(string(CYCLO)))
	assert.Equal(t, 2, m.Metrics.Int(string(MAXNESTING)))
	assert.Equal(t, 4, m.Metrics.Int(string(NOAV)))
	assert.Equal(t, 4, m.Metrics.Int(string(COGC)))

	assert.Equal(t, 0, abstract.Metrics.Int(string(MLOC)))
	assert.Equal(t, 1, abstract.Metrics.Int(string(CYCLO)))
	assert.Equal(t, 0, abstract.Metrics.Int(string(MAXNESTING)))
	assert.Equal(t, 0, abstract.Metrics.Int(string(NOAV)))

	assert.Equal(t, 50, typ.Metrics.Int(string(LOC)))
	assert.Equal(t, 2, typ.Metrics.Int(string(NOM)))
	assert.Equal(t, 1, typ.Metrics.Int(string(NOA)))
	assert.Equal(t, 5, typ.Metrics.Int(string(WMC)))

	amw, ok := typ.Metrics.Get(string(AMW))
	require.True(t, ok)
	assert.InDelta(t, 2.5, amw, 0.0001)
}

func TestAMWWithoutMethods(t *testing.T) {
	t.Parallel()

	typ := ast.NewType("E", ast.Enum, ast.Public)
	calculate(t, typ, AMW)

	assert.Equal(t, 0, typ.Metrics.Int(string(AMW)))
	assert.Equal(t, 0, typ.Metrics.Int(string(WMC)))
	assert.Equal(t, 0, typ.Metrics.Int(string(NOM)))
	assert.Equal(t, -1, typ.Metrics.Int(string(LOC)))
}
