package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	serveConfigPath = ""
	serveAddr = ""

	err := runServe(testCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestServeCommand_RejectsBadConfigFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	serveConfigPath = "/nonexistent/config.json"
	t.Cleanup(func() { serveConfigPath = "" })

	err := runServe(testCmd(), nil)
	assert.Error(t, err)
}
