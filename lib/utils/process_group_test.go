package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForKeepsOrder(t *testing.T) {
	t.Parallel()

	in := make([]int, 100)
	for i := range in {
		in[i] = i
	}

	out, err := ParallelFor(in, func(i int) (string, error) {
		return fmt.Sprintf("v%v", i), nil
	}, ParallelOptions{Routines: 4})
	require.NoError(t, err)

	require.Len(t, out, 100)
	for i, v := range out {
		assert.Equal(t, fmt.Sprintf("v%v", i), v)
	}
}

func TestParallelForEmpty(t *testing.T) {
	t.Parallel()

	out, err := ParallelFor([]int{}, func(i int) (int, error) { return i, nil })
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParallelForReturnsFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	in := make([]int, 1000)
	out, err := ParallelFor(in, func(i int) (int, error) {
		return 0, boom
	}, ParallelOptions{Routines: 3})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestAbortedGroupSkipsWork(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0

	group := NewProcessGroup(func(i int) (int, error) {
		calls++
		return i, nil
	}, ParallelOptions{Routines: 1})

	assert.False(t, group.Aborted())
	group.Abort(boom)
	group.Abort(errors.New("ignored"))
	assert.True(t, group.Aborted())

	group.Input <- 1
	group.Input <- 2
	group.FinishedInput()
	for range group.Output {
	}

	assert.ErrorIs(t, group.Error(), boom)
	assert.Equal(t, 0, calls)
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Min(3, 1, 2))
	assert.Equal(t, 3, Max(3, 1, 2))
}

func TestTruncateFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/Calc.java", TruncateFilename("src/Calc.java"))

	long := "src/main/java/org/example/deeply/nested/pkg/LongName.java"
	short := TruncateFilename(long)
	assert.Len(t, short, 40)
	assert.True(t, strings.HasPrefix(short, "..."))
	assert.True(t, strings.HasSuffix(short, "LongName.java"))
}
