package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "roster version "+strings.TrimSpace(roster.Version)+"\n", execute(t, "version"))
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph")
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `none -- "delete_button_tapped" --> confirm_deletion`)
}

func TestSessionLsCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	out := execute(t, "session", "ls", "--store-path", dir)
	assert.Contains(t, out, "No active sessions found.")
}
