package reconciler

import (
	"context"

	"docsync/internal/document"
	"docsync/internal/remote"
	"docsync/internal/tags"
	"docsync/pkg/logging"
)

// Reconciler brings a remote document in line with the desired state of a
// lifecycle event.
//
// Reconciliation logic:
//   - Create: create the document with its full tag set
//   - Update: run the update pipeline, recreating the document if it vanished
//   - Delete: delete the document by name
//
// Remote calls are issued strictly one after another and are never retried.
type Reconciler struct {
	service   remote.DocumentService
	tagPrefix string
	metrics   *Metrics
}

// New creates a Reconciler that talks to service.
func New(service remote.DocumentService, opts Options) *Reconciler {
	prefix := opts.SystemTagPrefix
	if prefix == "" {
		prefix = tags.DefaultSystemPrefix
	}
	return &Reconciler{
		service:   service,
		tagPrefix: prefix,
		metrics:   NewMetrics(),
	}
}

// Metrics returns the metrics of this reconciler.
func (r *Reconciler) Metrics() *Metrics {
	return r.metrics
}

// Reconcile dispatches the event by lifecycle kind.
func (r *Reconciler) Reconcile(ctx context.Context, ev document.Event) (*Result, error) {
	name := ev.ResourceName()
	r.metrics.RecordAttempt(ev.Kind, name)

	var (
		result *Result
		err    error
	)
	switch ev.Kind {
	case document.KindCreate:
		result, err = r.Create(ctx, ev)
	case document.KindUpdate:
		result, err = r.Update(ctx, ev)
	case document.KindDelete:
		result, err = r.Delete(ctx, ev)
	default:
		err = document.NewValidationError("", "unknown lifecycle kind %q", ev.Kind)
	}

	if err != nil {
		r.metrics.RecordFailure(ev.Kind, name, err)
		return nil, err
	}
	r.metrics.RecordSuccess(ev.Kind, name)
	return result, nil
}

// Create creates the document described by ev.Desired. Remote failures,
// including a duplicate name, are returned unchanged.
func (r *Reconciler) Create(ctx context.Context, ev document.Event) (*Result, error) {
	desired := ev.Desired
	if err := desired.Validate(document.KindCreate); err != nil {
		return nil, err
	}

	content, err := document.SerializeContent(desired.Content)
	if err != nil {
		return nil, err
	}

	logging.Info("Reconciler", "Creating document %s (type=%s, target=%s)",
		desired.Name, desired.DocumentType, desired.EffectiveTargetType())

	docTags := r.tagsFor(ev.Stack, desired)
	logging.Debug("Reconciler", "Tag keys for %s: %v", desired.Name, tags.Keys(docTags))

	err = r.service.Create(ctx, remote.CreateInput{
		Name:         desired.Name,
		Content:      content,
		DocumentType: desired.DocumentType,
		TargetType:   desired.EffectiveTargetType(),
		Tags:         docTags,
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Reconciler", "Created document %s", desired.Name)
	return &Result{Name: desired.Name}, nil
}

// Delete deletes the document. A document that is already gone is reported
// as an error like any other remote failure.
func (r *Reconciler) Delete(ctx context.Context, ev document.Event) (*Result, error) {
	name := ev.ResourceName()
	if name == "" {
		return nil, document.NewValidationError(document.PropertyName, "is required")
	}

	logging.Info("Reconciler", "Deleting document %s", name)
	if err := r.service.Delete(ctx, name); err != nil {
		return nil, err
	}

	logging.Info("Reconciler", "Deleted document %s", name)
	return &Result{Name: name}, nil
}

// tagsFor computes the full tag set (system and user tags) for a state.
func (r *Reconciler) tagsFor(stack document.StackContext, state document.DesiredState) []tags.Tag {
	return tags.Compute(stack.Owner(), r.tagPrefix, state.Tags)
}
