// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/commands"
	"github.com/temirov/dirscan/internal/config"
	"github.com/temirov/dirscan/internal/output"
	"github.com/temirov/dirscan/internal/utils"
)

const (
	versionFlagName      = "version"
	versionTemplate      = "dirscan version: %s\n"
	defaultPath          = "."
	rootUse              = "dirscan [target_dir]"
	rootShortDescription = "scan a directory tree and summarize it"
	rootLongDescription  = `dirscan walks a directory, skipping entries matched by the glob patterns
listed in .dirignore in the current working directory. It prints the tree,
summary statistics (files, directories, size, depth, file types and the
largest files) and exports the structure as JSON into the working directory.`
	rootUsageExample = `  # Scan the current directory
  dirscan

  # Scan another directory
  dirscan ./src`
	versionFlagDescription = "display application version"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	loadConfigurationFormat     = "loading configuration: %w"
	scanErrorFormat             = "scanning %s: %w"
	exportErrorFormat           = "exporting structure: %w"

	logScanComplete     = "scan complete"
	logFieldRoot        = "root"
	logFieldFiles       = "files"
	logFieldDirectories = "directories"
	logFieldTotalSize   = "total_size"
	logFieldOutputFile  = "output"
)

// Execute runs the dirscan application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			targetDirectory := defaultPath
			if len(arguments) > 0 {
				targetDirectory = arguments[0]
			}
			return runScan(command.OutOrStdout(), targetDirectory, utils.LoggerOrNop(logger))
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// runScan scans targetDirectory, prints the tree and summary to writer and exports the
// structure into the working directory.
func runScan(writer io.Writer, targetDirectory string, logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if configurationError != nil {
		return fmt.Errorf(loadConfigurationFormat, configurationError)
	}

	output.WriteScanHeader(writer, targetDirectory)

	tree, scanError := commands.Scan(targetDirectory, configuration.MaxDepth(), logger)
	if scanError != nil {
		return fmt.Errorf(scanErrorFormat, targetDirectory, scanError)
	}

	output.WriteTreeSection(writer, tree)

	stats := commands.Aggregate(tree)
	output.WriteSummary(writer, stats, output.SummaryOptions{
		Extensions: configuration.SummaryExtensions(),
		Largest:    configuration.SummaryLargest(),
	})

	outputPath := configuration.OutputFile()
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(workingDirectory, outputPath)
	}
	var exportError error
	if configuration.IncludeStats() {
		exportError = output.ExportReportJSON(outputPath, tree, stats)
	} else {
		exportError = output.ExportJSON(outputPath, tree)
	}
	if exportError != nil {
		return fmt.Errorf(exportErrorFormat, exportError)
	}
	output.WriteExportNotice(writer, configuration.OutputFile())

	logger.Debug(logScanComplete,
		zap.String(logFieldRoot, targetDirectory),
		zap.Int(logFieldFiles, stats.Files),
		zap.Int(logFieldDirectories, stats.Directories),
		zap.String(logFieldTotalSize, utils.FormatFileSize(stats.TotalSize)),
		zap.String(logFieldOutputFile, outputPath),
	)
	return nil
}
