package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobID(t *testing.T) {
	id, err := parseJobID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseJobID("forty-two")
	assert.ErrorContains(t, err, `invalid job id "forty-two"`)

	_, err = parseJobID("3000000000")
	assert.ErrorContains(t, err, `invalid job id "3000000000"`)
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"migrate"},
		{"users", "list"},
		{"users", "get"},
		{"users", "register"},
		{"users", "update"},
		{"users", "remove"},
		{"users", "login"},
		{"apply"},
		{"status"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestApplyCmd_RequiresTwoArgs(t *testing.T) {
	cmd := newApplyCmd(&app{})

	assert.Error(t, cmd.Args(cmd, []string{"u1"}))
	assert.NoError(t, cmd.Args(cmd, []string{"u1", "1"}))
}

func TestApp_TeardownWithoutSetup(t *testing.T) {
	a := &app{}

	assert.NoError(t, a.teardown(context.Background()))
	assert.NoError(t, a.teardown(context.Background()))
}
