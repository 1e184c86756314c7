// Package formatting renders reconciliation reports for the command line.
//
// A Report bundles the outcome of one lifecycle event: the reconciler
// result or error, the remote calls that were (or would be) issued and the
// invocation metrics. Formatters exist for rich tables (go-pretty), JSON,
// YAML and plain console text. Use NewFactory().CreateFormatter to pick one
// from Options.
package formatting
