package java

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucineia/RepositoryMiner/lib/ast"
	"github.com/Lucineia/RepositoryMiner/lib/metrics"
)

const sample = `package demo;

import java.util.List;

public abstract class Sample {
    private int count;
    protected String name;
    List<String> items, others;

    public Sample(String name) {
        this.name = name;
    }

    public int process(List<String> input, int limit) {
        int total = 0;
        for (String s : input) {
            if (s.isEmpty() && limit > 0) {
                continue;
            } else if (s.length() > limit) {
                total += s.length();
            } else {
                total++;
            }
        }
        switch (total) {
            case 1:
            case 2:
                return 1;
            default:
                break;
        }
        try {
            count = total > 10 ? 10 : total;
        } catch (RuntimeException e) {
            throw e;
        } finally {
            items.clear();
        }
        return total;
    }

    abstract void todo();

    static class Inner {
        void run() {
        }
    }

    enum Color {
        RED, GREEN;

        void paint() {
        }
    }
}
`

func parseSample(t *testing.T) *ast.AST {
	t.Helper()

	a, err := NewProvider().Parse(context.Background(), "demo/Sample.java", []byte(sample))
	require.NoError(t, err)
	return a
}

func findMethod(t *testing.T, typ *ast.Type, name string) *ast.Method {
	t.Helper()

	m, ok := lo.Find(typ.Methods, func(m *ast.Method) bool { return m.Name == name })
	require.True(t, ok, "method %v not found", name)
	return m
}

func TestTypes(t *testing.T) {
	t.Parallel()

	a := parseSample(t)

	assert.Equal(t, Language, a.Language)
	assert.Equal(t, "demo/Sample.java", a.Path)
	require.Len(t, a.Types, 3)

	assert.Equal(t, "Sample", a.Types[0].Name)
	assert.Equal(t, ast.ClassOrInterface, a.Types[0].Archetype)
	assert.True(t, a.Types[0].Modifiers.Has(ast.Public))
	assert.True(t, a.Types[0].Modifiers.Has(ast.Abstract))
	assert.Equal(t, 5, a.Types[0].StartLine)

	assert.Equal(t, "Sample.Inner", a.Types[1].Name)
	assert.Equal(t, ast.ClassOrInterface, a.Types[1].Archetype)

	assert.Equal(t, "Sample.Color", a.Types[2].Name)
	assert.Equal(t, ast.Enum, a.Types[2].Archetype)
	assert.Equal(t, []string{"paint"}, lo.Map(a.Types[2].Methods, func(m *ast.Method, _ int) string { return m.Name }))
}

func TestMembers(t *testing.T) {
	t.Parallel()

	typ := parseSample(t).Types[0]

	assert.Equal(t, []string{"count", "name", "items", "others"}, typ.FieldNames())
	assert.Equal(t, ast.Private, typ.Fields[0].Modifiers)
	assert.Equal(t, "int", typ.Fields[0].Type)
	assert.True(t, typ.Fields[2].Modifiers.IsPackagePrivate())

	assert.Equal(t, []string{"Sample", "process", "todo"}, lo.Map(typ.Methods, func(m *ast.Method, _ int) string { return m.Name }))

	constructor := findMethod(t, typ, "Sample")
	assert.Equal(t, []string{"name"}, constructor.Parameters)
	assert.Equal(t, 10, constructor.StartLine)
	assert.Equal(t, 12, constructor.EndLine)

	process := findMethod(t, typ, "process")
	assert.Equal(t, []string{"input", "limit"}, process.Parameters)
	assert.NotNil(t, process.Body)

	todo := findMethod(t, typ, "todo")
	assert.Nil(t, todo.Body)
	assert.True(t, todo.Modifiers.Has(ast.Abstract))
}

func TestBodyMetrics(t *testing.T) {
	t.Parallel()

	a := parseSample(t)

	engine, err := metrics.NewEngine(metrics.DefaultRegistry())
	require.NoError(t, err)
	require.NoError(t, engine.Calculate(a))

	typ := a.Types[0]
	process := findMethod(t, typ, "process")

	assert.Equal(t, 9, process.Metrics.Int(string(metrics.CYCLO)))
	assert.Equal(t, 2, process.Metrics.Int(string(metrics.MAXNESTING)))
	assert.Equal(t, 7, process.Metrics.Int(string(metrics.NOAV)))
	assert.Equal(t, 27, process.Metrics.Int(string(metrics.MLOC)))

	constructor := findMethod(t, typ, "Sample")
	assert.Equal(t, 1, constructor.Metrics.Int(string(metrics.NOAV)))
	assert.Equal(t, 1, constructor.Metrics.Int(string(metrics.CYCLO)))
	assert.Equal(t, 3, constructor.Metrics.Int(string(metrics.MLOC)))

	todo := findMethod(t, typ, "todo")
	assert.Equal(t, 0, todo.Metrics.Int(string(metrics.MLOC)))

	// name, items, others and todo
	assert.Equal(t, 4, typ.Metrics.Int(string(metrics.NProtM)))
}

func TestElseIfChain(t *testing.T) {
	t.Parallel()

	process := findMethod(t, parseSample(t).Types[0], "process")

	var kinds []ast.NodeKind
	ast.Walk(process.Body, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.NodeIf, ast.NodeElseIf, ast.NodeElse, ast.NodeCase, ast.NodeDefault, ast.NodeCatch, ast.NodeFinally:
			kinds = append(kinds, n.Kind)
		}
		return true
	}, nil)

	assert.Equal(t, []ast.NodeKind{
		ast.NodeIf, ast.NodeElseIf, ast.NodeElse,
		ast.NodeCase, ast.NodeCase, ast.NodeDefault,
		ast.NodeCatch, ast.NodeFinally,
	}, kinds)
}
