package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/dirscan/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(t *testing.T, filePath string, content string) {
	t.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadPatternSetSkipsCommentsAndBlanks verifies line parsing of the ignore file.
func TestLoadPatternSetSkipsCommentsAndBlanks(t *testing.T) {
	workingDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(workingDirectory, utils.DirIgnoreFileName),
		"# build output\nbuild/\n\n   *.log  \n\t# indented comment\n*.log\nnode_modules/\n")

	patternSet, loadError := LoadPatternSet(workingDirectory, nil)
	require.NoError(t, loadError)

	assert.Equal(t, []string{"*.log", "build/", "node_modules/"}, patternSet.Patterns())
	assert.Equal(t, 3, patternSet.Len())
	assert.True(t, patternSet.Contains("build/"))
	assert.False(t, patternSet.Contains("# build output"))
}

// TestLoadPatternSetMissingFile verifies that an absent ignore file yields an empty set.
func TestLoadPatternSetMissingFile(t *testing.T) {
	patternSet, loadError := LoadPatternSet(t.TempDir(), nil)
	require.NoError(t, loadError)
	assert.Zero(t, patternSet.Len())
	assert.Empty(t, patternSet.Patterns())
}

// TestLoadPatternSetUsesProcessWorkingDirectory verifies resolution against the process working directory.
func TestLoadPatternSetUsesProcessWorkingDirectory(t *testing.T) {
	workingDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(workingDirectory, utils.DirIgnoreFileName), "temp\n")
	t.Chdir(workingDirectory)

	patternSet, loadError := LoadPatternSet("", nil)
	require.NoError(t, loadError)
	assert.Equal(t, []string{"temp"}, patternSet.Patterns())
}

// TestLoadPatternSetFromDirectoryPathFails verifies that unreadable sources surface as errors.
func TestLoadPatternSetFromDirectoryPathFails(t *testing.T) {
	workingDirectory := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(workingDirectory, utils.DirIgnoreFileName), 0o755))

	_, loadError := LoadPatternSet(workingDirectory, nil)
	assert.Error(t, loadError)
}

// TestPatternSetMatcher verifies the compiled matcher honors the loaded patterns.
func TestPatternSetMatcher(t *testing.T) {
	matcher := NewPatternSet("*.log", "build/", "*.log").Matcher()
	assert.Equal(t, 2, matcher.Len())
	assert.True(t, matcher.ShouldIgnore("sub/app.log", false))
	assert.True(t, matcher.ShouldIgnore("build", true))
	assert.False(t, matcher.ShouldIgnore("main.go", false))
}
