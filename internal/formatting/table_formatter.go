package formatting

import (
	"fmt"
	"io"
	"strings"

	"docsync/internal/reconciler"
	"docsync/internal/remote"
	pkgstrings "docsync/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatReport renders the result summary, the remote calls and the
// pipeline steps as separate tables.
func (f *TableFormatter) FormatReport(w io.Writer, report Report) error {
	f.renderSummary(w, report)

	if report.Result != nil && len(report.Result.Steps) > 0 {
		fmt.Fprintln(w)
		f.renderSteps(w, report.Result.Steps)
	}

	if report.DryRun || len(report.Calls) > 0 {
		fmt.Fprintln(w)
		if len(report.Calls) == 0 {
			fmt.Fprint(w, f.formatEmptyMessage("📋", "No remote calls required"))
		} else {
			f.renderCalls(w, report.Calls)
		}
	}

	if report.Metrics != nil && !f.options.Quiet {
		fmt.Fprintln(w)
		f.renderMetrics(w, *report.Metrics)
	}
	return nil
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) colorize(c text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return c.Sprint(s)
}

func (f *TableFormatter) header(cols ...string) table.Row {
	row := make(table.Row, 0, len(cols))
	for _, c := range cols {
		row = append(row, f.colorize(text.FgHiCyan, c))
	}
	return row
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(icon, message string) string {
	return fmt.Sprintf("%s %s\n", f.colorize(text.FgYellow, icon), f.colorize(text.FgYellow, message))
}

func (f *TableFormatter) renderSummary(w io.Writer, report Report) {
	t := f.createTable(w)
	t.AppendHeader(f.header("KEY", "VALUE"))

	t.AppendRow(table.Row{"Request", string(report.Kind)})
	t.AppendRow(table.Row{"Document", report.Name})
	if report.DryRun {
		t.AppendRow(table.Row{"Mode", f.colorize(text.FgYellow, "dry run")})
	}

	if report.Succeeded() {
		t.AppendRow(table.Row{"Status", f.colorize(text.FgGreen, "succeeded")})
	} else {
		t.AppendRow(table.Row{"Status", f.colorize(text.FgRed, "failed")})
		t.AppendRow(table.Row{"Error", pkgstrings.Truncate(report.Error, pkgstrings.DefaultCellWidth)})
	}

	if r := report.Result; r != nil {
		if r.LatestVersionID != "" {
			t.AppendRow(table.Row{"Latest version", r.LatestVersionID})
		}
		if r.SelfHealed {
			t.AppendRow(table.Row{"Self-healed", f.colorize(text.FgYellow, "yes")})
		}
	}
	t.Render()
}

func (f *TableFormatter) renderSteps(w io.Writer, steps []reconciler.StepReport) {
	t := f.createTable(w)
	t.SetTitle("Update pipeline")
	t.AppendHeader(f.header("STEP", "OUTCOME", "DETAIL"))

	for _, s := range steps {
		t.AppendRow(table.Row{s.Step, f.outcome(s.Outcome), pkgstrings.Truncate(s.Detail, pkgstrings.DefaultCellWidth)})
	}
	t.Render()
}

func (f *TableFormatter) outcome(o reconciler.StepOutcome) string {
	switch o {
	case reconciler.OutcomeApplied:
		return f.colorize(text.FgGreen, string(o))
	case reconciler.OutcomeFailed:
		return f.colorize(text.FgRed, string(o))
	default:
		return f.colorize(text.FgHiBlack, string(o))
	}
}

func (f *TableFormatter) renderCalls(w io.Writer, calls []remote.Call) {
	t := f.createTable(w)
	t.SetTitle("Remote calls")
	t.AppendHeader(f.header("#", "OPERATION", "DOCUMENT", "DETAIL"))

	for i, c := range calls {
		t.AppendRow(table.Row{i + 1, c.Op, c.Name, pkgstrings.Truncate(describeCall(c), pkgstrings.DefaultCellWidth)})
	}
	t.Render()
}

func (f *TableFormatter) renderMetrics(w io.Writer, m reconciler.MetricsSummary) {
	t := f.createTable(w)
	t.SetTitle("Metrics")
	t.AppendHeader(f.header("KIND", "ATTEMPTS", "SUCCESSES", "FAILURES"))

	for _, k := range m.PerKind {
		t.AppendRow(table.Row{string(k.Kind), k.Attempts, k.Successes, k.Failures})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("self-heals: %d, duplicates: %d", m.SelfHeals, m.DuplicateContent),
		m.TotalAttempts, m.TotalSuccesses, m.TotalFailures,
	})
	t.Render()
}

// describeCall summarizes the arguments of a remote call on one line.
func describeCall(c remote.Call) string {
	var parts []string
	if c.DocumentType != "" {
		parts = append(parts, "type="+c.DocumentType)
	}
	if c.TargetType != "" {
		parts = append(parts, "target="+c.TargetType)
	}
	if c.VersionMarker != "" {
		parts = append(parts, "version="+c.VersionMarker)
	}
	if c.VersionID != "" {
		parts = append(parts, "version="+c.VersionID)
	}
	if len(c.Tags) > 0 {
		kv := make([]string, 0, len(c.Tags))
		for _, tag := range c.Tags {
			kv = append(kv, tag.Key+"="+tag.Value)
		}
		parts = append(parts, "tags=["+strings.Join(kv, ", ")+"]")
	}
	if len(c.TagKeys) > 0 {
		parts = append(parts, "keys=["+strings.Join(c.TagKeys, ", ")+"]")
	}
	if c.Content != "" {
		parts = append(parts, fmt.Sprintf("content=%d bytes", len(c.Content)))
	}
	return strings.Join(parts, " ")
}
