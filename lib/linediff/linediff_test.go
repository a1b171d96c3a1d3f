package linediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertLine(t *testing.T) {
	t.Parallel()

	inserted, deleted := Count(Do("a\nb\n", "a\nx\nb\n"))

	assert.Equal(t, 1, inserted)
	assert.Equal(t, 0, deleted)
}

func TestReplaceLine(t *testing.T) {
	t.Parallel()

	inserted, deleted := Count(Do("a\nb\nc\n", "a\nB\nc\n"))

	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, deleted)
}

func TestNetDelta(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, NetDelta("", "a\nb\n"))
	assert.Equal(t, -2, NetDelta("a\nb\n", ""))
	assert.Equal(t, 0, NetDelta("a\n", "a\n"))
	assert.Equal(t, -1, NetDelta("a\nb\nc\n", "a\nc\n"))
}
