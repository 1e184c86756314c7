package reconciler

import (
	"context"
	"fmt"

	"docsync/internal/document"
	"docsync/internal/remote"
	"docsync/internal/tags"
	"docsync/pkg/logging"
)

// updateState is the per-invocation state threaded through the update
// pipeline. latestVersionID is written by the content step and read by the
// promote step.
type updateState struct {
	name     string
	previous document.DesiredState
	desired  document.DesiredState

	oldTags []tags.Tag
	newTags []tags.Tag

	latestVersionID string
}

// stepFunc runs one pipeline step. It returns the outcome and a short detail,
// or an error that aborts the pipeline.
type stepFunc func(ctx context.Context, st *updateState) (StepOutcome, string, error)

type pipelineStep struct {
	name string
	run  stepFunc
}

// steps returns the update pipeline in execution order.
func (r *Reconciler) steps() []pipelineStep {
	return []pipelineStep{
		{StepContent, r.updateContent},
		{StepAddTags, r.addTags},
		{StepRemoveTags, r.removeTags},
		{StepPromoteVersion, r.promoteDefaultVersion},
	}
}

// Update brings an existing document from ev.Previous to ev.Desired.
//
// If any step reports that the document no longer exists, the document is
// recreated from ev.Desired instead of failing. Any other error aborts the
// pipeline; steps that already succeeded are not undone.
func (r *Reconciler) Update(ctx context.Context, ev document.Event) (*Result, error) {
	desired := ev.Desired
	if err := desired.Validate(document.KindUpdate); err != nil {
		return nil, err
	}

	previous := document.DesiredState{Name: desired.Name}
	if ev.Previous != nil {
		previous = *ev.Previous
	}
	if previous.Name != "" && previous.Name != desired.Name {
		return nil, document.NewValidationError(document.PropertyName,
			"cannot change from %q to %q; the name identifies the document", previous.Name, desired.Name)
	}

	st := &updateState{
		name:     desired.Name,
		previous: previous,
		desired:  desired,
		oldTags:  r.tagsFor(ev.Stack, previous),
		newTags:  r.tagsFor(ev.Stack, desired),
	}

	logging.Info("Reconciler", "Updating document %s", st.name)

	steps := r.steps()
	reports := make([]StepReport, 0, len(steps)+1)
	for _, step := range steps {
		outcome, detail, err := step.run(ctx, st)
		if err != nil {
			if remote.IsResourceGone(err) {
				logging.Debug("Reconciler", "Step %s for %s: %v", step.name, st.name, err)
				reports = append(reports, StepReport{Step: step.name, Outcome: OutcomeSkipped, Detail: "document no longer exists"})
				return r.selfHeal(ctx, ev, reports)
			}
			logging.Error("Reconciler", err, "Update of %s failed in step %s", st.name, step.name)
			return nil, err
		}

		logging.Debug("Reconciler", "Step %s for %s: %s (%s)", step.name, st.name, outcome, detail)
		reports = append(reports, StepReport{Step: step.name, Outcome: outcome, Detail: detail})
	}

	logging.Info("Reconciler", "Updated document %s", st.name)
	return &Result{
		Name:            st.name,
		LatestVersionID: st.latestVersionID,
		Steps:           reports,
	}, nil
}

// selfHeal recreates a document that was deleted out-of-band. The error that
// revealed the deletion has already been absorbed by the caller.
func (r *Reconciler) selfHeal(ctx context.Context, ev document.Event, reports []StepReport) (*Result, error) {
	logging.Info("Reconciler", "Document %s no longer exists, recreating it", ev.Desired.Name)
	r.metrics.RecordSelfHeal(ev.Desired.Name)

	created, err := r.Create(ctx, ev)
	if err != nil {
		return nil, err
	}

	created.SelfHealed = true
	created.Steps = append(reports, StepReport{
		Step:    StepSelfHeal,
		Outcome: OutcomeApplied,
		Detail:  "document recreated from desired state",
	})
	return created, nil
}

// updateContent submits new content when the content or the effective
// target type changed, and records the version it produced.
func (r *Reconciler) updateContent(ctx context.Context, st *updateState) (StepOutcome, string, error) {
	oldContent, err := document.SerializeContent(st.previous.Content)
	if err != nil {
		return OutcomeFailed, "", err
	}
	newContent, err := document.SerializeContent(st.desired.Content)
	if err != nil {
		return OutcomeFailed, "", err
	}

	targetType := st.desired.EffectiveTargetType()
	if oldContent == newContent && st.previous.EffectiveTargetType() == targetType {
		return OutcomeSkipped, "content and target type unchanged", nil
	}

	version, err := r.service.Update(ctx, remote.UpdateInput{
		Name:          st.name,
		Content:       newContent,
		TargetType:    targetType,
		VersionMarker: remote.LatestVersion,
	})
	if err != nil {
		if remote.IsDuplicateContent(err) {
			// A rollback resubmits content that already exists as a version.
			logging.Info("Reconciler", "Content of %s already exists as a version, nothing to update", st.name)
			r.metrics.RecordDuplicateContent(st.name)
			return OutcomeSkipped, "content already exists as a version", nil
		}
		return OutcomeFailed, "", err
	}

	st.latestVersionID = version
	return OutcomeApplied, fmt.Sprintf("created version %s", version), nil
}

// addTags pushes the full desired tag set when it differs from the previous one.
func (r *Reconciler) addTags(ctx context.Context, st *updateState) (StepOutcome, string, error) {
	if tags.Equal(st.oldTags, st.newTags) {
		return OutcomeSkipped, "tags unchanged", nil
	}

	if err := r.service.AddTags(ctx, st.name, st.newTags); err != nil {
		return OutcomeFailed, "", err
	}
	return OutcomeApplied, fmt.Sprintf("applied %d tags", len(st.newTags)), nil
}

// removeTags removes the tag keys that disappeared from the desired set.
func (r *Reconciler) removeTags(ctx context.Context, st *updateState) (StepOutcome, string, error) {
	if tags.Equal(st.oldTags, st.newTags) {
		return OutcomeSkipped, "tags unchanged", nil
	}

	missing := tags.MissingKeys(st.oldTags, st.newTags)
	if len(missing) == 0 {
		return OutcomeSkipped, "no tags removed", nil
	}

	if err := r.service.RemoveTags(ctx, st.name, missing); err != nil {
		return OutcomeFailed, "", err
	}
	return OutcomeApplied, fmt.Sprintf("removed %v", missing), nil
}

// promoteDefaultVersion makes the version created by the content step the
// default, when requested.
func (r *Reconciler) promoteDefaultVersion(ctx context.Context, st *updateState) (StepOutcome, string, error) {
	if !st.desired.UpdateDefaultVersion {
		return OutcomeSkipped, "default version promotion not requested", nil
	}
	if st.latestVersionID == "" {
		return OutcomeSkipped, "no new version to promote", nil
	}

	if err := r.service.PromoteDefaultVersion(ctx, st.name, st.latestVersionID); err != nil {
		return OutcomeFailed, "", err
	}
	return OutcomeApplied, fmt.Sprintf("version %s is now the default", st.latestVersionID), nil
}
