package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/dirscan/internal/utils"
)

const (
	// DefaultSummaryExtensions is the number of extensions listed in the summary.
	DefaultSummaryExtensions = 10
	// DefaultSummaryLargest is the number of largest files listed in the summary.
	DefaultSummaryLargest = 5
	// DefaultMaxDepth bounds how many directory levels a scan descends.
	DefaultMaxDepth = 512
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
}

// ApplicationConfiguration holds the optional settings read from configuration files.
type ApplicationConfiguration struct {
	Output  OutputConfiguration  `mapstructure:"output"`
	Summary SummaryConfiguration `mapstructure:"summary"`
	Scan    ScanConfiguration    `mapstructure:"scan"`
}

// OutputConfiguration controls the JSON export.
type OutputConfiguration struct {
	File         string `mapstructure:"file"`
	IncludeStats *bool  `mapstructure:"include_stats"`
}

// SummaryConfiguration controls the console summary.
type SummaryConfiguration struct {
	Extensions *int `mapstructure:"extensions"`
	Largest    *int `mapstructure:"largest"`
}

// ScanConfiguration controls traversal limits.
type ScanConfiguration struct {
	MaxDepth *int `mapstructure:"max_depth"`
}

// LoadApplicationConfiguration loads configuration from the global file and then overlays
// the local file found in the working directory.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf(errorWorkingDirectoryFormat, err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Output.File != "" {
		result.Output.File = override.Output.File
	}
	if override.Output.IncludeStats != nil {
		result.Output.IncludeStats = cloneBool(override.Output.IncludeStats)
	}
	if override.Summary.Extensions != nil {
		result.Summary.Extensions = cloneInt(override.Summary.Extensions)
	}
	if override.Summary.Largest != nil {
		result.Summary.Largest = cloneInt(override.Summary.Largest)
	}
	if override.Scan.MaxDepth != nil {
		result.Scan.MaxDepth = cloneInt(override.Scan.MaxDepth)
	}
	return result
}

// OutputFile returns the export file name, defaulting to utils.DefaultOutputFileName.
func (config ApplicationConfiguration) OutputFile() string {
	if config.Output.File == "" {
		return utils.DefaultOutputFileName
	}
	return config.Output.File
}

// IncludeStats reports whether the export wraps the tree together with its statistics.
func (config ApplicationConfiguration) IncludeStats() bool {
	return config.Output.IncludeStats != nil && *config.Output.IncludeStats
}

// SummaryExtensions returns how many extensions the summary lists.
func (config ApplicationConfiguration) SummaryExtensions() int {
	return intOrDefault(config.Summary.Extensions, DefaultSummaryExtensions)
}

// SummaryLargest returns how many of the largest files the summary lists.
func (config ApplicationConfiguration) SummaryLargest() int {
	return intOrDefault(config.Summary.Largest, DefaultSummaryLargest)
}

// MaxDepth returns the traversal depth limit.
func (config ApplicationConfiguration) MaxDepth() int {
	value := intOrDefault(config.Scan.MaxDepth, DefaultMaxDepth)
	if value <= 0 {
		return DefaultMaxDepth
	}
	return value
}

func intOrDefault(value *int, fallback int) int {
	if value == nil || *value < 0 {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
