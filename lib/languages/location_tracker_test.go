package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNestedTypes(t *testing.T) {
	t.Parallel()

	l := NewLocationTracker("A.java")
	assert.False(t, l.IsInsideType())

	l.EnterType("Outer")
	l.EnterType("Inner")
	assert.Equal(t, "Outer.Inner", l.CurrentTypeName())
	assert.Equal(t, "Inner", l.CurrentSimpleTypeName())

	l.ExitType()
	assert.Equal(t, "Outer", l.CurrentTypeName())
}

func TestMethodVariables(t *testing.T) {
	t.Parallel()

	l := NewLocationTracker("A.java")
	l.EnterType("A")
	assert.False(t, l.IsInsideMethod())

	l.EnterMethod("run", []string{"a"})
	l.DeclareVariable("b")
	assert.True(t, l.IsInsideMethod())
	assert.Equal(t, "run", l.CurrentMethodName())
	assert.True(t, l.IsVariable("a"))
	assert.True(t, l.IsVariable("b"))
	assert.False(t, l.IsVariable("c"))

	l.ExitMethod()
	assert.False(t, l.IsVariable("a"))
	assert.False(t, l.IsInsideMethod())
}
