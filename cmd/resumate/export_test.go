package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestExportCommand_MissingFile(t *testing.T) {
	err := runExport(testCmd(), []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestExportCommand_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"x","sections":{}}`), 0o644))

	err := runExport(testCmd(), []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestExportCommand_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	err := runExport(testCmd(), []string{path})
	assert.Error(t, err)
}
