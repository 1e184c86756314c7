package cmd

import (
	"context"
	"errors"

	"docsync/internal/handler"
	"docsync/internal/reconciler"
	"docsync/internal/remote"
	"docsync/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	planOutput  outputFlags
	planMissing bool
)

// planCmd previews the remote calls a lifecycle event would cause.
var planCmd = &cobra.Command{
	Use:   "plan EVENT_FILE",
	Short: "Show the remote calls a lifecycle event would make, without applying them",
	Long: `Reads a CloudFormation custom resource event (YAML or JSON, '-' for stdin)
and runs the reconciler against a recording service instead of AWS Systems
Manager. The ordered list of calls it would issue is printed together with
the outcome of every update step.

With --missing the document is treated as deleted out-of-band, which shows
how an update recreates it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}
	initLogging(cfg)

	formatter, err := planOutput.formatter()
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

	rec := remote.NewRecorder()
	if planMissing {
		gone := remote.NewError(remote.OpUpdate, ev.ResourceName(), remote.CodeInvalidDocument,
			errors.New("document does not exist"))
		rec.FailNext(remote.OpUpdate, gone)
		rec.FailNext(remote.OpAddTags, gone)
		rec.FailNext(remote.OpRemoveTags, gone)
		rec.FailNext(remote.OpPromoteVersion, gone)
		rec.FailNext(remote.OpDelete, gone)
	}

	logging.Debug("CLI", "Planning %s of %s (request %s)", ev.Kind, ev.ResourceName(), event.RequestID)

	r := reconciler.New(rec, reconcilerOptions(cfg))
	result, runErr := r.Reconcile(ctx, ev)

	report := buildReport(ev, result, runErr, r, planOutput.metrics)
	report.DryRun = true
	report.Calls = rec.Calls()
	if err := formatter.FormatReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	return runErr
}

func init() {
	rootCmd.AddCommand(planCmd)
	planOutput.register(planCmd)
	planCmd.Flags().BoolVar(&planMissing, "missing", false, "Treat the document as deleted out-of-band")
}
