// Package logging provides the structured logger used across docsync.
//
// It is a thin layer over log/slog. Every entry carries a subsystem
// attribute so reconciliation, SSM and handler output can be filtered
// independently.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Reconciler", "Creating document %s", name)
//	logging.Debug("SSM", "UpdateDocument returned version %s", version)
//	logging.Warn("Reconciler", "Document %s is gone, recreating", name)
//	logging.Error("Handler", err, "Update of %s failed", name)
//
// Inside the Lambda runtime use InitForLambda instead, which writes JSON
// lines to stdout.
//
// # Subsystems
//
//   - Reconciler: lifecycle dispatch and the update pipeline
//   - ReconcilerMetrics: per-invocation counters
//   - SSM: calls to the Systems Manager API
//   - Handler: CloudFormation custom resource events
//   - ConfigLoader: configuration loading
//   - CLI: command line front-end
package logging
