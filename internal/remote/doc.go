// Package remote is the boundary to the document management service.
//
// DocumentService is the capability interface consumed by the reconciler.
// SSMService implements it on AWS Systems Manager and maps the service's
// string error codes into the closed ErrorCode set at the boundary, so that
// callers only ever match on ErrorCode:
//
//	if remote.IsDuplicateContent(err) {
//	    // content already exists as a version, nothing to do
//	}
//	if remote.IsResourceGone(err) {
//	    // document was deleted out-of-band
//	}
//
// Recorder is an in-memory implementation that records calls; it powers
// dry-run plans and tests.
package remote
