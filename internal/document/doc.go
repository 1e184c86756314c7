// Package document holds the data model for managed documents: the desired
// state requested by an invocation, the lifecycle event that carries it, and
// the normalization of loosely typed custom resource properties.
package document
