// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteManifest writes manifest content to a temp file and returns its
// path.
func WriteManifest(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, "manifest")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
