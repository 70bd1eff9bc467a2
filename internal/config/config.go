// Package config loads ignore pattern files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/utils"
)

const (
	commentPrefix = "#"

	errorWorkingDirectoryFormat = "determine working directory: %w"
	errorReadPatternFileFormat  = "reading %s: %w"

	logUsingPatternFile  = "using ignore file"
	logNoPatternFile     = "no ignore file found"
	logCloseFileFailure  = "failed to close ignore file"
	logFieldPath         = "path"
	logFieldPatternCount = "patterns"
)

// PatternSet is an immutable set of ignore glob patterns.
type PatternSet struct {
	patterns map[string]struct{}
}

// NewPatternSet builds a set from the provided patterns, collapsing duplicates.
func NewPatternSet(patterns ...string) PatternSet {
	set := PatternSet{patterns: make(map[string]struct{}, len(patterns))}
	for _, pattern := range patterns {
		set.patterns[pattern] = struct{}{}
	}
	return set
}

// Len returns the number of distinct patterns.
func (set PatternSet) Len() int {
	return len(set.patterns)
}

// Contains reports whether pattern belongs to the set.
func (set PatternSet) Contains(pattern string) bool {
	_, exists := set.patterns[pattern]
	return exists
}

// Patterns returns the patterns sorted lexicographically.
func (set PatternSet) Patterns() []string {
	result := make([]string, 0, len(set.patterns))
	for pattern := range set.patterns {
		result = append(result, pattern)
	}
	sort.Strings(result)
	return result
}

// Matcher compiles the set for matching scan entries.
func (set PatternSet) Matcher() *utils.Matcher {
	return utils.NewMatcher(set.Patterns())
}

// LoadPatternSet reads utils.DirIgnoreFileName from workingDirectory, or from the process
// working directory when workingDirectory is empty. The scanned directory plays no part in
// locating the file. A missing file yields an empty set.
func LoadPatternSet(workingDirectory string, logger *zap.Logger) (PatternSet, error) {
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return PatternSet{}, fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	return LoadPatternSetFromFile(filepath.Join(workingDirectory, utils.DirIgnoreFileName), logger)
}

// LoadPatternSetFromFile reads one glob pattern per line from patternFilePath. Lines are
// trimmed; blank lines and lines starting with "#" are skipped.
//
// #nosec G304
func LoadPatternSetFromFile(patternFilePath string, logger *zap.Logger) (PatternSet, error) {
	logger = utils.LoggerOrNop(logger)
	fileHandle, openFileError := os.Open(patternFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			logger.Info(logNoPatternFile, zap.String(logFieldPath, patternFilePath))
			return NewPatternSet(), nil
		}
		return PatternSet{}, fmt.Errorf(errorReadPatternFileFormat, patternFilePath, openFileError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			logger.Warn(logCloseFileFailure, zap.String(logFieldPath, patternFilePath), zap.Error(closeError))
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return PatternSet{}, fmt.Errorf(errorReadPatternFileFormat, patternFilePath, scanError)
	}

	set := NewPatternSet(patterns...)
	logger.Info(logUsingPatternFile, zap.String(logFieldPath, patternFilePath), zap.Int(logFieldPatternCount, set.Len()))
	return set, nil
}
