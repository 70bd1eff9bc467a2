// Package types defines every cross‑package data structure used by the dirscan CLI.
package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	// RootPath is the relative path recorded for the scan root.
	RootPath = "."

	ErrorPermissionDenied = "Permission denied"
	ErrorSymlinkCycle     = "Symbolic link cycle"
	ErrorMaxDepthExceeded = "Maximum depth exceeded"

	errorUnknownNodeTypeFormat = "unknown node type %q"
)

// Node is one entry of a scanned tree. Directory nodes carry Children (or an
// Error when they could not be read); file nodes carry Size.
type Node struct {
	Name     string
	Type     string
	Path     string
	Size     int64
	Children []*Node
	Error    string
}

// IsDirectory reports whether the node represents a directory.
func (node *Node) IsDirectory() bool {
	return node.Type == NodeTypeDirectory
}

// directoryWire is the persisted form of a directory node.
type directoryWire struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Path     string  `json:"path"`
	Children []*Node `json:"children"`
	Error    string  `json:"error,omitempty"`
}

// fileWire is the persisted form of a file node.
type fileWire struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// anyWire accepts both persisted forms.
type anyWire struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Path     string  `json:"path"`
	Size     int64   `json:"size"`
	Children []*Node `json:"children"`
	Error    string  `json:"error"`
}

// MarshalJSON writes directories with a children array and files with a size.
func (node *Node) MarshalJSON() ([]byte, error) {
	switch node.Type {
	case NodeTypeDirectory:
		children := node.Children
		if children == nil {
			children = []*Node{}
		}
		return json.Marshal(directoryWire{Name: node.Name, Type: node.Type, Path: node.Path, Children: children, Error: node.Error})
	case NodeTypeFile:
		return json.Marshal(fileWire{Name: node.Name, Type: node.Type, Path: node.Path, Size: node.Size})
	default:
		return nil, fmt.Errorf(errorUnknownNodeTypeFormat, node.Type)
	}
}

// UnmarshalJSON restores a node written by MarshalJSON.
func (node *Node) UnmarshalJSON(data []byte) error {
	var wire anyWire
	if decodeError := json.Unmarshal(data, &wire); decodeError != nil {
		return decodeError
	}
	switch wire.Type {
	case NodeTypeDirectory:
		*node = Node{Name: wire.Name, Type: wire.Type, Path: wire.Path, Children: wire.Children, Error: wire.Error}
		if node.Children == nil {
			node.Children = []*Node{}
		}
	case NodeTypeFile:
		*node = Node{Name: wire.Name, Type: wire.Type, Path: wire.Path, Size: wire.Size}
	default:
		return fmt.Errorf(errorUnknownNodeTypeFormat, wire.Type)
	}
	return nil
}

// FileSize pairs a file path with its size in bytes.
type FileSize struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ExtensionCount is one row of the extension breakdown.
type ExtensionCount struct {
	Extension string
	Count     int
	Size      int64
}

// Stats holds the aggregate figures for one scanned tree.
type Stats struct {
	Files           int              `json:"files"`
	Directories     int              `json:"directories"`
	TotalSize       int64            `json:"total_size"`
	Extensions      map[string]int   `json:"extensions"`
	SizeByExtension map[string]int64 `json:"size_by_ext"`
	LargestFiles    []FileSize       `json:"largest_files"`
	MaxDepth        int              `json:"max_depth"`
}

// Report is the combined export of a tree and its statistics.
type Report struct {
	Tree  *Node  `json:"tree"`
	Stats *Stats `json:"stats"`
}

// TopExtensions returns up to limit extensions ordered by occurrence count,
// most frequent first. Equal counts are ordered by extension.
func (stats Stats) TopExtensions(limit int) []ExtensionCount {
	rows := make([]ExtensionCount, 0, len(stats.Extensions))
	for extension, count := range stats.Extensions {
		rows = append(rows, ExtensionCount{Extension: extension, Count: count, Size: stats.SizeByExtension[extension]})
	}
	sort.Slice(rows, func(left, right int) bool {
		if rows[left].Count != rows[right].Count {
			return rows[left].Count > rows[right].Count
		}
		return rows[left].Extension < rows[right].Extension
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// TopLargest returns at most limit entries of LargestFiles.
func (stats Stats) TopLargest(limit int) []FileSize {
	if limit >= 0 && len(stats.LargestFiles) > limit {
		return stats.LargestFiles[:limit]
	}
	return stats.LargestFiles
}
