// Package handler adapts CloudFormation custom resource events to the
// reconciler. It converts the request into a document.Event and the
// reconciliation result into the physical resource id and response data
// CloudFormation expects.
package handler
