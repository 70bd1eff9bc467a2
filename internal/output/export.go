package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/temirov/dirscan/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	exportFileMode = 0o644

	errorEncodeFormat = "encoding %s: %w"
	errorWriteFormat  = "writing %s: %w"
	errorDecodeTree   = "decoding tree: %w"
	errorDecodeReport = "decoding report: %w"
	errorEmptyReport  = "report has no tree"
)

// RenderJSON marshals value with two-space indentation.
func RenderJSON(value any) ([]byte, error) {
	return json.MarshalIndent(value, indentPrefix, indentSpacer)
}

// ExportJSON writes the tree to outputPath.
func ExportJSON(outputPath string, node *types.Node) error {
	return writeJSONFile(outputPath, node)
}

// ExportReportJSON writes the tree together with its statistics to outputPath.
func ExportReportJSON(outputPath string, node *types.Node, stats types.Stats) error {
	return writeJSONFile(outputPath, types.Report{Tree: node, Stats: &stats})
}

// ReadTreeJSON decodes a tree written by ExportJSON.
func ReadTreeJSON(reader io.Reader) (*types.Node, error) {
	var node types.Node
	if decodeError := json.NewDecoder(reader).Decode(&node); decodeError != nil {
		return nil, fmt.Errorf(errorDecodeTree, decodeError)
	}
	return &node, nil
}

// ReadReportJSON decodes a report written by ExportReportJSON.
func ReadReportJSON(reader io.Reader) (*types.Report, error) {
	var report types.Report
	if decodeError := json.NewDecoder(reader).Decode(&report); decodeError != nil {
		return nil, fmt.Errorf(errorDecodeReport, decodeError)
	}
	if report.Tree == nil {
		return nil, errors.New(errorEmptyReport)
	}
	return &report, nil
}

func writeJSONFile(outputPath string, value any) error {
	encoded, encodeError := RenderJSON(value)
	if encodeError != nil {
		return fmt.Errorf(errorEncodeFormat, outputPath, encodeError)
	}
	var buffer bytes.Buffer
	buffer.Write(encoded)
	buffer.WriteByte('\n')
	if writeError := os.WriteFile(outputPath, buffer.Bytes(), exportFileMode); writeError != nil {
		return fmt.Errorf(errorWriteFormat, outputPath, writeError)
	}
	return nil
}
