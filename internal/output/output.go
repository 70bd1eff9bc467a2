// Package output renders scanned trees and statistics for the console and for export.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/dirscan/internal/types"
	"github.com/temirov/dirscan/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	separatorWidth = 50

	scanningFormat        = "Scanning directory: %s\n"
	structureHeader       = "Directory Structure:"
	errorAnnotationFormat = "%s [%s]"
	totalFilesFormat      = "Total files: %d\n"
	totalDirsFormat       = "Total directories: %d\n"
	totalSizeFormat       = "Total size: %s bytes (%s MB)\n"
	maxDepthFormat        = "Max depth: %d\n"
	fileTypesHeader       = "File types:"
	fileTypeFormat        = "  %s: %d files (%s KB)\n"
	largestFilesHeader    = "Largest files:"
	largestFileFormat     = "  %s: %s KB\n"
	exportedFormat        = "Structure exported to %s\n"
)

// SummaryOptions bounds the lists printed by WriteSummary.
type SummaryOptions struct {
	Extensions int
	Largest    int
}

// treeLine is a pending node of the tree printer.
type treeLine struct {
	node   *types.Node
	prefix string
	isLast bool
}

// Separator returns the horizontal rule printed between report sections.
func Separator() string {
	return strings.Repeat("=", separatorWidth)
}

// WriteScanHeader announces the directory being scanned.
func WriteScanHeader(writer io.Writer, targetDirectory string) {
	fmt.Fprintf(writer, scanningFormat, targetDirectory)
}

// WriteTreeSection prints the structure header followed by the tree.
func WriteTreeSection(writer io.Writer, node *types.Node) {
	fmt.Fprintf(writer, "\n%s\n%s\n", structureHeader, Separator())
	WriteTree(writer, node)
}

// WriteTree renders node as a branched diagram. The root is drawn as the last entry of
// an implicit parent, so its children are indented one level; unreadable directories
// are annotated with their error.
func WriteTree(writer io.Writer, node *types.Node) {
	if node == nil {
		return
	}
	pending := []treeLine{{node: node, isLast: true}}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		linePrefix, childPrefix := treeNodeLinePrefix(current.prefix, current.isLast)
		label := current.node.Name
		if current.node.Error != "" {
			label = fmt.Sprintf(errorAnnotationFormat, label, current.node.Error)
		}
		fmt.Fprintf(writer, "%s%s\n", linePrefix, label)

		children := current.node.Children
		for index := len(children) - 1; index >= 0; index-- {
			pending = append(pending, treeLine{
				node:   children[index],
				prefix: childPrefix,
				isLast: index == len(children)-1,
			})
		}
	}
}

func treeNodeLinePrefix(prefix string, isLast bool) (string, string) {
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

// WriteSummary prints totals, the most frequent extensions and the largest files.
func WriteSummary(writer io.Writer, stats types.Stats, options SummaryOptions) {
	fmt.Fprintf(writer, "\n%s\n", Separator())
	fmt.Fprintf(writer, totalFilesFormat, stats.Files)
	fmt.Fprintf(writer, totalDirsFormat, stats.Directories)
	fmt.Fprintf(writer, totalSizeFormat, utils.FormatByteCount(stats.TotalSize), utils.FormatMegabytes(stats.TotalSize))
	fmt.Fprintf(writer, maxDepthFormat, stats.MaxDepth)

	if extensions := stats.TopExtensions(options.Extensions); len(extensions) > 0 {
		fmt.Fprintf(writer, "\n%s\n", fileTypesHeader)
		for _, extension := range extensions {
			fmt.Fprintf(writer, fileTypeFormat, extension.Extension, extension.Count, utils.FormatKilobytes(extension.Size))
		}
	}

	if largest := stats.TopLargest(options.Largest); len(largest) > 0 {
		fmt.Fprintf(writer, "\n%s\n", largestFilesHeader)
		for _, file := range largest {
			fmt.Fprintf(writer, largestFileFormat, file.Path, utils.FormatKilobytes(file.Size))
		}
	}
}

// WriteExportNotice reports where the JSON export was written.
func WriteExportNotice(writer io.Writer, outputPath string) {
	fmt.Fprintf(writer, "\n"+exportedFormat, outputPath)
}
