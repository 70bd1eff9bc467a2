package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/output"
	"github.com/temirov/dirscan/internal/types"
	"github.com/temirov/dirscan/internal/utils"
)

func writeFile(t *testing.T, filePath string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, make([]byte, size), 0o644))
}

// prepareWorkspace creates an isolated home and working directory and enters the latter.
func prepareWorkspace(t *testing.T) string {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)
	return workingDirectory
}

func executeRoot(t *testing.T, arguments ...string) (string, error) {
	t.Helper()
	command := createRootCommand(zap.NewNop())
	var stdout bytes.Buffer
	command.SetOut(&stdout)
	command.SetErr(&stdout)
	command.SetArgs(arguments)
	executionError := command.Execute()
	return stdout.String(), executionError
}

func TestRootCommandScansTargetAndExports(t *testing.T) {
	workingDirectory := prepareWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(workingDirectory, utils.DirIgnoreFileName), []byte("# skip b\nb/\n"), 0o644))

	targetDirectory := t.TempDir()
	writeFile(t, filepath.Join(targetDirectory, "a.txt"), 10)
	writeFile(t, filepath.Join(targetDirectory, "b", "c.txt"), 20)
	require.NoError(t, os.Mkdir(filepath.Join(targetDirectory, "d"), 0o755))

	rendered, executionError := executeRoot(t, targetDirectory)
	require.NoError(t, executionError)

	assert.Contains(t, rendered, "Scanning directory: "+targetDirectory+"\n")
	assert.Contains(t, rendered, "└── "+filepath.Base(targetDirectory)+"\n    ├── a.txt\n    └── d\n")
	assert.Contains(t, rendered, "Total files: 1\n")
	assert.Contains(t, rendered, "Total directories: 2\n")
	assert.Contains(t, rendered, "Total size: 10 bytes (0.00 MB)\n")
	assert.Contains(t, rendered, "Max depth: 2\n")
	assert.Contains(t, rendered, "  .txt: 1 files (0.0 KB)\n")
	assert.Contains(t, rendered, "Structure exported to "+utils.DefaultOutputFileName+"\n")
	assert.NotContains(t, rendered, "c.txt")

	fileHandle, openError := os.Open(filepath.Join(workingDirectory, utils.DefaultOutputFileName))
	require.NoError(t, openError)
	defer fileHandle.Close()
	tree, decodeError := output.ReadTreeJSON(fileHandle)
	require.NoError(t, decodeError)
	assert.Equal(t, types.RootPath, tree.Path)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "a.txt", tree.Children[0].Path)
	assert.Equal(t, int64(10), tree.Children[0].Size)
}

func TestRootCommandDefaultsToWorkingDirectory(t *testing.T) {
	workingDirectory := prepareWorkspace(t)
	writeFile(t, filepath.Join(workingDirectory, "main.go"), 3)

	rendered, executionError := executeRoot(t)
	require.NoError(t, executionError)
	assert.Contains(t, rendered, "Scanning directory: .\n")
	assert.Contains(t, rendered, "\n    └── main.go\n")
	assert.FileExists(t, filepath.Join(workingDirectory, utils.DefaultOutputFileName))
}

func TestRootCommandHonorsConfiguration(t *testing.T) {
	workingDirectory := prepareWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(workingDirectory, utils.LocalConfigFileName),
		[]byte("output:\n  file: report.json\n  include_stats: true\nsummary:\n  largest: 1\n"), 0o644))
	targetDirectory := t.TempDir()
	writeFile(t, filepath.Join(targetDirectory, "small.bin"), 1)
	writeFile(t, filepath.Join(targetDirectory, "large.bin"), 4096)

	rendered, executionError := executeRoot(t, targetDirectory)
	require.NoError(t, executionError)
	assert.Contains(t, rendered, "Largest files:\n  large.bin: 4.0 KB\n")
	assert.NotContains(t, rendered, "  small.bin:")

	fileHandle, openError := os.Open(filepath.Join(workingDirectory, "report.json"))
	require.NoError(t, openError)
	defer fileHandle.Close()
	report, decodeError := output.ReadReportJSON(fileHandle)
	require.NoError(t, decodeError)
	assert.Equal(t, 2, report.Stats.Files)
	assert.Equal(t, int64(4097), report.Stats.TotalSize)
}

func TestRootCommandMissingTarget(t *testing.T) {
	prepareWorkspace(t)
	_, executionError := executeRoot(t, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, executionError)
	assert.Contains(t, executionError.Error(), "does not exist")
}

func TestRootCommandRejectsExtraArguments(t *testing.T) {
	prepareWorkspace(t)
	_, executionError := executeRoot(t, "one", "two")
	assert.Error(t, executionError)
}

func TestRootCommandVersion(t *testing.T) {
	prepareWorkspace(t)
	rendered, executionError := executeRoot(t, "--version")
	require.NoError(t, executionError)
	assert.Contains(t, rendered, "dirscan version: ")
}
