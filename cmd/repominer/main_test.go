package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lucineia/RepositoryMiner/lib/consoles"
	"github.com/Lucineia/RepositoryMiner/lib/workspace"
)

func TestRunClosesWorkspaceWhenCommandFails(t *testing.T) {
	t.Parallel()

	ws, err := workspace.NewWorkspace(consoles.NewDiscardConsole(), ":memory:")
	require.NoError(t, err)

	c := &context{console: consoles.NewDiscardConsole(), ws: ws}
	boom := errors.New("boom")

	err = c.run(func(*context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, c.ws)

	_, err = ws.Storage().LoadConfig()
	assert.Error(t, err)
}

func TestRunWithoutWorkspace(t *testing.T) {
	t.Parallel()

	c := &context{console: consoles.NewDiscardConsole()}

	err := c.run(func(*context) error { return nil })
	assert.NoError(t, err)
}
