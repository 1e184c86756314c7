// Package tags computes the tag set attached to a managed document and the
// difference between two such sets.
//
// Every document carries three system tags derived from the owning stack
// (stack id, stack name and logical id) in addition to the user supplied
// tags. The system tags are recomputed on every invocation and are never
// treated as user tags when diffing.
//
// All functions in this package are pure.
package tags
