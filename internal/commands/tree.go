// Package commands contains the scanning core: the tree builder and the statistics aggregator.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/config"
	"github.com/temirov/dirscan/internal/types"
	"github.com/temirov/dirscan/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorPathMissingFormat is used when the scan root does not exist.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat is used when the scan root cannot be inspected.
	errorStatFormat = "stat failed for '%s': %w"
	// errorLoadPatternsFormat is used when the ignore file cannot be read.
	errorLoadPatternsFormat = "loading ignore patterns: %w"

	logSkipEntry         = "skipping entry that cannot be inspected"
	logUnreadableDir     = "directory cannot be listed"
	logSymlinkCycle      = "not descending into directory already on the current path"
	logMaxDepthExceeded  = "not descending past the maximum depth"
	logFieldPath         = "path"
	logFieldMaximumDepth = "max_depth"
)

// directoryFrame is one directory on the explicit walk stack together with the
// children that remain to be visited.
type directoryFrame struct {
	node         *types.Node
	absolutePath string
	info         os.FileInfo
	level        int
	entries      []os.DirEntry
	nextIndex    int
}

// Scan loads the ignore patterns from the process working directory and builds the tree
// rooted at rootDirectory. An empty rootDirectory scans the current directory.
func Scan(rootDirectory string, maxDepth int, logger *zap.Logger) (*types.Node, error) {
	patternSet, loadError := config.LoadPatternSet("", logger)
	if loadError != nil {
		return nil, fmt.Errorf(errorLoadPatternsFormat, loadError)
	}
	return NewTreeBuilder(patternSet.Matcher(), maxDepth, logger).Scan(rootDirectory)
}

// Scan resolves rootDirectory and builds its tree. It fails only when the root itself
// cannot be resolved or inspected; every failure below the root degrades to a partial tree.
func (treeBuilder *TreeBuilder) Scan(rootDirectory string) (*types.Node, error) {
	if rootDirectory == "" {
		rootDirectory = "."
	}
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectory)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absolutePathError)
	}
	return treeBuilder.Build(absoluteRootPath, absoluteRootPath)
}

// Build produces the node for path, relative to rootPath. Directories are walked depth
// first with children in name order; entries matched by the matcher are omitted.
func (treeBuilder *TreeBuilder) Build(path string, rootPath string) (*types.Node, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return nil, fmt.Errorf(errorPathMissingFormat, path)
		}
		return nil, fmt.Errorf(errorStatFormat, path, statError)
	}

	relativePath := utils.RelativePathOrSelf(path, rootPath)
	if !info.IsDir() {
		return newFileNode(filepath.Base(path), relativePath, info), nil
	}

	rootNode := newDirectoryNode(filepath.Base(path), relativePath)
	rootLevel := 1
	if relativePath != types.RootPath {
		rootLevel = segmentCount(relativePath) + 1
	}

	var stack []*directoryFrame
	if frame, opened := treeBuilder.openDirectory(rootNode, path, info, rootLevel); opened {
		stack = append(stack, frame)
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		if current.nextIndex >= len(current.entries) {
			current.entries = nil
			stack = stack[:len(stack)-1]
			continue
		}
		entry := current.entries[current.nextIndex]
		current.nextIndex++

		childName := entry.Name()
		childPath := filepath.Join(current.absolutePath, childName)
		childRelativePath := utils.JoinRelative(current.node.Path, childName)

		childInfo, childStatError := os.Stat(childPath)
		if childStatError != nil {
			if !treeBuilder.Matcher.ShouldIgnore(childRelativePath, entry.IsDir()) {
				treeBuilder.logger().Warn(logSkipEntry, zap.String(logFieldPath, childPath), zap.Error(childStatError))
			}
			continue
		}
		if treeBuilder.Matcher.ShouldIgnore(childRelativePath, childInfo.IsDir()) {
			continue
		}

		if !childInfo.IsDir() {
			current.node.Children = append(current.node.Children, newFileNode(childName, childRelativePath, childInfo))
			continue
		}

		childNode := newDirectoryNode(childName, childRelativePath)
		current.node.Children = append(current.node.Children, childNode)
		childLevel := current.level + 1

		if treeBuilder.MaxDepth > 0 && childLevel > treeBuilder.MaxDepth {
			childNode.Error = types.ErrorMaxDepthExceeded
			treeBuilder.logger().Warn(logMaxDepthExceeded, zap.String(logFieldPath, childPath), zap.Int(logFieldMaximumDepth, treeBuilder.MaxDepth))
			continue
		}
		if isOnStack(stack, childInfo) {
			childNode.Error = types.ErrorSymlinkCycle
			treeBuilder.logger().Warn(logSymlinkCycle, zap.String(logFieldPath, childPath))
			continue
		}
		if frame, opened := treeBuilder.openDirectory(childNode, childPath, childInfo, childLevel); opened {
			stack = append(stack, frame)
		}
	}

	return rootNode, nil
}

// openDirectory lists the directory behind node. A listing failure is recorded on the node
// and reported as not opened so the walk continues with the siblings.
func (treeBuilder *TreeBuilder) openDirectory(node *types.Node, absolutePath string, info os.FileInfo, level int) (*directoryFrame, bool) {
	entries, readError := os.ReadDir(absolutePath)
	if readError != nil {
		node.Error = describeListingError(readError)
		treeBuilder.logger().Warn(logUnreadableDir, zap.String(logFieldPath, absolutePath), zap.Error(readError))
		return nil, false
	}
	sort.SliceStable(entries, func(left, right int) bool {
		return entries[left].Name() < entries[right].Name()
	})
	return &directoryFrame{
		node:         node,
		absolutePath: absolutePath,
		info:         info,
		level:        level,
		entries:      entries,
	}, true
}

// isOnStack reports whether info refers to a directory currently being walked.
func isOnStack(stack []*directoryFrame, info os.FileInfo) bool {
	for _, frame := range stack {
		if os.SameFile(frame.info, info) {
			return true
		}
	}
	return false
}

func describeListingError(readError error) string {
	if errors.Is(readError, fs.ErrPermission) {
		return types.ErrorPermissionDenied
	}
	return readError.Error()
}

func newDirectoryNode(name string, relativePath string) *types.Node {
	return &types.Node{
		Name:     name,
		Type:     types.NodeTypeDirectory,
		Path:     relativePath,
		Children: []*types.Node{},
	}
}

func newFileNode(name string, relativePath string, info os.FileInfo) *types.Node {
	return &types.Node{
		Name: name,
		Type: types.NodeTypeFile,
		Path: relativePath,
		Size: info.Size(),
	}
}
