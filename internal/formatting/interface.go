package formatting

import (
	"fmt"
	"io"
	"strings"

	"docsync/internal/document"
	"docsync/internal/reconciler"
	"docsync/internal/remote"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// SupportedFormats lists the accepted values of ParseFormat.
var SupportedFormats = []OutputFormat{FormatTable, FormatJSON, FormatYAML, FormatConsole}

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range SupportedFormats {
		if f == supported {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (supported: table, json, yaml, console)", s)
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
	Color  bool // Enable colored output
}

// Report is everything a command prints about one reconciliation.
type Report struct {
	Kind    document.LifecycleKind     `json:"kind" yaml:"kind"`
	Name    string                     `json:"name" yaml:"name"`
	DryRun  bool                       `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Result  *reconciler.Result         `json:"result,omitempty" yaml:"result,omitempty"`
	Error   string                     `json:"error,omitempty" yaml:"error,omitempty"`
	Calls   []remote.Call              `json:"calls,omitempty" yaml:"calls,omitempty"`
	Metrics *reconciler.MetricsSummary `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Succeeded reports whether the reconciliation completed without error.
func (r Report) Succeeded() bool {
	return r.Error == ""
}

// Formatter renders reports.
type Formatter interface {
	FormatReport(w io.Writer, report Report) error

	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatConsole:
		fallthrough
	default:
		return NewConsoleFormatter(options)
	}
}
