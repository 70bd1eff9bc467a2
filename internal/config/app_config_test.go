package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/dirscan/internal/utils"
)

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name             string
		globalContent    string
		localContent     string
		expectFile       string
		expectStats      bool
		expectExtensions int
		expectLargest    int
		expectMaxDepth   int
	}{
		{
			name:             "defaults_without_files",
			expectFile:       utils.DefaultOutputFileName,
			expectExtensions: DefaultSummaryExtensions,
			expectLargest:    DefaultSummaryLargest,
			expectMaxDepth:   DefaultMaxDepth,
		},
		{
			name:             "local_overrides_global",
			globalContent:    "output:\n  file: global.json\n  include_stats: true\nsummary:\n  extensions: 3\n",
			localContent:     "output:\n  file: local.json\nsummary:\n  largest: 2\nscan:\n  max_depth: 8\n",
			expectFile:       "local.json",
			expectStats:      true,
			expectExtensions: 3,
			expectLargest:    2,
			expectMaxDepth:   8,
		},
		{
			name:             "global_only",
			globalContent:    "summary:\n  extensions: 4\noutput:\n  file: custom.json\n",
			expectFile:       "custom.json",
			expectExtensions: 4,
			expectLargest:    DefaultSummaryLargest,
			expectMaxDepth:   DefaultMaxDepth,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			t.Setenv("HOME", homeDirectory)
			t.Setenv("USERPROFILE", homeDirectory)
			workingDirectory := t.TempDir()

			if testCase.globalContent != "" {
				globalDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
				require.NoError(t, os.MkdirAll(globalDirectory, 0o755))
				writeTestFile(t, filepath.Join(globalDirectory, utils.ConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeTestFile(t, filepath.Join(workingDirectory, utils.LocalConfigFileName), testCase.localContent)
			}

			configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
			require.NoError(t, loadError)
			assert.Equal(t, testCase.expectFile, configuration.OutputFile())
			assert.Equal(t, testCase.expectStats, configuration.IncludeStats())
			assert.Equal(t, testCase.expectExtensions, configuration.SummaryExtensions())
			assert.Equal(t, testCase.expectLargest, configuration.SummaryLargest())
			assert.Equal(t, testCase.expectMaxDepth, configuration.MaxDepth())
		})
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	workingDirectory := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(workingDirectory, utils.LocalConfigFileName), 0o755))

	_, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	assert.Error(t, loadError)
}

func TestMergeKeepsReceiverWhenOverrideEmpty(t *testing.T) {
	base := ApplicationConfiguration{
		Output:  OutputConfiguration{File: "base.json", IncludeStats: boolPointer(true)},
		Summary: SummaryConfiguration{Extensions: intPointer(7)},
	}
	merged := base.Merge(ApplicationConfiguration{Summary: SummaryConfiguration{Largest: intPointer(1)}})
	assert.Equal(t, "base.json", merged.OutputFile())
	assert.True(t, merged.IncludeStats())
	assert.Equal(t, 7, merged.SummaryExtensions())
	assert.Equal(t, 1, merged.SummaryLargest())
}

func TestMaxDepthRejectsNonPositive(t *testing.T) {
	configuration := ApplicationConfiguration{Scan: ScanConfiguration{MaxDepth: intPointer(0)}}
	assert.Equal(t, DefaultMaxDepth, configuration.MaxDepth())
}
