// Package export converts a LearningPlan into shareable documents: the
// JSON that goes to the clipboard, YAML, and a Markdown curriculum.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/skillforge/internal/plan"
)

// ErrNilPlan is returned when there is nothing to export.
var ErrNilPlan = errors.New("export: plan is nil")

// Exporter converts a plan to one document format.
type Exporter interface {
	Export(p *plan.LearningPlan) ([]byte, error)

	// FileExtension returns the extension including the dot, e.g. ".md".
	FileExtension() string

	MimeType() string
}

// Format names an output format on the command line.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists every accepted format, in help-text order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat accepts a format name or a common alias ("md", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, joinFormats())
}

// For returns the exporter for f. FormatText has no exporter: it is the
// terminal rendering and lives in package render.
func For(f Format) (Exporter, error) {
	switch f {
	case FormatJSON:
		return JSONExporter{}, nil
	case FormatYAML:
		return YAMLExporter{}, nil
	case FormatMarkdown:
		return MarkdownExporter{}, nil
	}
	return nil, fmt.Errorf("no exporter for format %q", f)
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
