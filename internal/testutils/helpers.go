package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Machine is a small two-state description shared by package tests.
// Its filename is "light" and it uses the epsilon label E once.
const Machine = `filename: light
startstate: q_0
states: [q_0, q_1]
finalstates: [q_1]
transitions:
  - q_0;q_1;a
  - q_1;q_1;E
`

// WriteFile writes content to name inside a fresh temporary directory.
// It returns the absolute path of the file and fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	absDir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	path := filepath.Join(absDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}
