// Package reconciler reconciles a managed document against the remote
// document service for one lifecycle event.
//
// # Overview
//
// A Reconciler receives a document.Event (Create, Update or Delete) and
// issues the remote calls needed to reach the desired state:
//
//   - Create: one create call carrying content, type, target type and tags
//   - Update: a four step pipeline, see below
//   - Delete: one delete call
//
// # Update pipeline
//
// Updates run a fixed, ordered list of steps. Each step either applies a
// remote call or skips itself; an error aborts the remaining steps.
//
//  1. content: submit new content when content or effective target type
//     changed; remember the version it produced
//  2. add-tags: push the full desired tag set when it changed
//  3. remove-tags: remove tag keys that are no longer desired
//  4. promote-default-version: make the new version the default when
//     UpdateDefaultVersion is set and step 1 produced a version
//
// A DuplicateContent error in step 1 is benign: it happens when a rollback
// resubmits content that already exists as a version.
//
// # Self-heal
//
// When any step reports that the document is gone (deleted out-of-band), the
// update is replaced by a create from the desired state. All other errors are
// returned unchanged; nothing is retried and nothing is rolled back.
//
// # Usage
//
//	r := reconciler.New(remote.NewSSMService(client), reconciler.Options{})
//	result, err := r.Reconcile(ctx, event)
//	if err != nil {
//	    return fmt.Errorf("failed to reconcile %s: %w", event.Desired.Name, err)
//	}
package reconciler
