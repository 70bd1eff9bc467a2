package commands

import (
	"container/heap"
	"sort"
	"strings"

	"github.com/temirov/dirscan/internal/types"
)

// LargestFilesLimit caps the number of entries kept in Stats.LargestFiles.
const LargestFilesLimit = 10

// rankedFile is a largest-files candidate; sequence records encounter order.
type rankedFile struct {
	entry    types.FileSize
	sequence int
}

// largestFileHeap keeps the weakest candidate on top: the smallest size, and among
// equal sizes the one encountered last.
type largestFileHeap []rankedFile

func (files largestFileHeap) Len() int { return len(files) }

func (files largestFileHeap) Less(left, right int) bool {
	if files[left].entry.Size != files[right].entry.Size {
		return files[left].entry.Size < files[right].entry.Size
	}
	return files[left].sequence > files[right].sequence
}

func (files largestFileHeap) Swap(left, right int) { files[left], files[right] = files[right], files[left] }

func (files *largestFileHeap) Push(value any) { *files = append(*files, value.(rankedFile)) }

func (files *largestFileHeap) Pop() any {
	previous := *files
	last := previous[len(previous)-1]
	*files = previous[:len(previous)-1]
	return last
}

// statsAggregator owns the Stats under construction for one traversal.
type statsAggregator struct {
	stats    types.Stats
	largest  largestFileHeap
	sequence int
	limit    int
}

// Aggregate walks tree once in stored child order and returns its statistics.
// Directories that carry an error contribute their own count and depth only.
func Aggregate(tree *types.Node) types.Stats {
	aggregator := &statsAggregator{
		stats: types.Stats{
			Extensions:      make(map[string]int),
			SizeByExtension: make(map[string]int64),
		},
		limit: LargestFilesLimit,
	}
	if tree != nil {
		aggregator.walk(tree)
	}
	aggregator.stats.LargestFiles = aggregator.sortedLargest()
	return aggregator.stats
}

// walk visits nodes in pre-order using an explicit stack.
func (aggregator *statsAggregator) walk(tree *types.Node) {
	pending := []*types.Node{tree}
	for len(pending) > 0 {
		node := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if node == nil {
			continue
		}
		if !node.IsDirectory() {
			aggregator.addFile(node)
			continue
		}
		aggregator.addDirectory(node)
		for childIndex := len(node.Children) - 1; childIndex >= 0; childIndex-- {
			pending = append(pending, node.Children[childIndex])
		}
	}
}

func (aggregator *statsAggregator) addFile(node *types.Node) {
	stats := &aggregator.stats
	stats.Files++
	stats.TotalSize += node.Size

	if extension := FileExtension(node.Name); extension != "" {
		stats.Extensions[extension]++
		stats.SizeByExtension[extension] += node.Size
	}
	aggregator.offerLargest(types.FileSize{Path: node.Path, Size: node.Size})
}

func (aggregator *statsAggregator) addDirectory(node *types.Node) {
	aggregator.stats.Directories++
	if depth := DirectoryDepth(node.Path); depth > aggregator.stats.MaxDepth {
		aggregator.stats.MaxDepth = depth
	}
}

// offerLargest keeps the candidate when the list has room or when it is strictly larger
// than the weakest kept file. An equal-sized later file never displaces an earlier one.
func (aggregator *statsAggregator) offerLargest(entry types.FileSize) {
	candidate := rankedFile{entry: entry, sequence: aggregator.sequence}
	aggregator.sequence++
	if aggregator.largest.Len() < aggregator.limit {
		heap.Push(&aggregator.largest, candidate)
		return
	}
	if aggregator.limit == 0 || entry.Size <= aggregator.largest[0].entry.Size {
		return
	}
	aggregator.largest[0] = candidate
	heap.Fix(&aggregator.largest, 0)
}

// sortedLargest returns the kept files by size descending, earlier files first on ties.
func (aggregator *statsAggregator) sortedLargest() []types.FileSize {
	ranked := append(largestFileHeap(nil), aggregator.largest...)
	sort.Slice(ranked, func(left, right int) bool {
		if ranked[left].entry.Size != ranked[right].entry.Size {
			return ranked[left].entry.Size > ranked[right].entry.Size
		}
		return ranked[left].sequence < ranked[right].sequence
	})
	result := make([]types.FileSize, len(ranked))
	for index, file := range ranked {
		result[index] = file.entry
	}
	return result
}

// FileExtension returns the lower-cased extension of name including the dot, or an empty
// string. Leading dots are part of the name, so ".bashrc" has no extension.
func FileExtension(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	dotIndex := strings.LastIndex(trimmed, ".")
	if dotIndex < 0 {
		return ""
	}
	return strings.ToLower(trimmed[dotIndex:])
}

// DirectoryDepth returns the number of levels from the scan root to the directory at
// relativePath, counting the root as level 1.
func DirectoryDepth(relativePath string) int {
	if relativePath == "" || relativePath == types.RootPath {
		return 1
	}
	return segmentCount(relativePath) + 1
}

func segmentCount(relativePath string) int {
	return strings.Count(strings.Trim(relativePath, "/"), "/") + 1
}
