package formatting

import (
	"fmt"
	"io"

	pkgstrings "docsync/pkg/strings"
)

// ConsoleFormatter provides plain line-oriented output
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatReport writes one line per fact. In quiet mode only the document
// name and, when present, the latest version id are written.
func (f *ConsoleFormatter) FormatReport(w io.Writer, report Report) error {
	if f.options.Quiet {
		if !report.Succeeded() {
			_, err := fmt.Fprintf(w, "error: %s\n", pkgstrings.SingleLine(report.Error))
			return err
		}
		line := report.Name
		if report.Result != nil && report.Result.LatestVersionID != "" {
			line += " " + report.Result.LatestVersionID
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}

	mode := ""
	if report.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(w, "%s %s%s\n", report.Kind, report.Name, mode)

	if !report.Succeeded() {
		fmt.Fprintf(w, "  failed: %s\n", pkgstrings.SingleLine(report.Error))
	}

	if r := report.Result; r != nil {
		if r.LatestVersionID != "" {
			fmt.Fprintf(w, "  latest version: %s\n", r.LatestVersionID)
		}
		if r.SelfHealed {
			fmt.Fprintln(w, "  recreated after out-of-band deletion")
		}
		for _, s := range r.Steps {
			fmt.Fprintf(w, "  step %s: %s", s.Step, s.Outcome)
			if s.Detail != "" {
				fmt.Fprintf(w, " (%s)", s.Detail)
			}
			fmt.Fprintln(w)
		}
	}

	for i, c := range report.Calls {
		fmt.Fprintf(w, "  %d. %s %s %s\n", i+1, c.Op, c.Name, describeCall(c))
	}
	return nil
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}
