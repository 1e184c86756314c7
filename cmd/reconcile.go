package cmd

import (
	"context"
	"os"
	"time"

	"docsync/internal/document"
	"docsync/internal/formatting"
	"docsync/internal/handler"
	"docsync/internal/reconciler"
	"docsync/internal/remote"
	"docsync/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// outputFlags are shared by the commands that print a report.
type outputFlags struct {
	format  string
	quiet   bool
	noColor bool
	metrics bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", string(formatting.FormatTable), "Output format: table, json, yaml or console")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "Suppress progress indicators and decorative output")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "Include reconciler metrics in the report")
}

func (o *outputFlags) formatter() (formatting.Formatter, error) {
	format, err := formatting.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return formatting.NewFactory().CreateFormatter(formatting.Options{
		Format: format,
		Quiet:  o.quiet,
		Color:  !o.noColor,
	}), nil
}

var reconcileOutput outputFlags

// reconcileCmd applies a lifecycle event against the live document service.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile EVENT_FILE",
	Short: "Apply a lifecycle event to a Systems Manager document",
	Long: `Reads a CloudFormation custom resource event (YAML or JSON, '-' for stdin)
and reconciles the document it describes against AWS Systems Manager, exactly
as the Lambda handler would.

Example event:

  RequestType: Update
  StackId: arn:aws:cloudformation:eu-west-1:123456789012:stack/docs/6a2f
  LogicalResourceId: RunbookDocument
  PhysicalResourceId: runbook
  ResourceProperties:
    Name: runbook
    DocumentType: Automation
    UpdateDefaultVersion: "true"
    Content: {schemaVersion: "0.3", mainSteps: []}
  OldResourceProperties:
    Name: runbook
    Content: {schemaVersion: "0.3"}

Use 'docsync plan' to see the calls without applying them.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}
	initLogging(cfg)

	formatter, err := reconcileOutput.formatter()
	if err != nil {
		return err
	}

	event, err := readEvent(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	ev, err := handler.ToEvent(event)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := remote.NewSSMClient(ctx, clientOptions(cfg))
	if err != nil {
		return err
	}

	logging.Info("CLI", "Reconciling %s of %s (request %s)", ev.Kind, ev.ResourceName(), event.RequestID)

	var s *spinner.Spinner
	if !reconcileOutput.quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Reconciling " + ev.ResourceName() + "..."
		s.Start()
	}

	r := reconciler.New(remote.NewSSMService(client), reconcilerOptions(cfg))
	result, runErr := r.Reconcile(ctx, ev)

	if s != nil {
		s.Stop()
	}

	report := buildReport(ev, result, runErr, r, reconcileOutput.metrics)
	if err := formatter.FormatReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	return runErr
}

// buildReport assembles the printable report of one reconciliation.
func buildReport(ev document.Event, result *reconciler.Result, err error, r *reconciler.Reconciler, withMetrics bool) formatting.Report {
	report := formatting.Report{
		Kind:   ev.Kind,
		Name:   ev.ResourceName(),
		Result: result,
	}
	if err != nil {
		report.Error = err.Error()
	}
	if withMetrics {
		summary := r.Metrics().Summary()
		report.Metrics = &summary
	}
	return report
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileOutput.register(reconcileCmd)
}
