package reconciler

// StepOutcome is the outcome of a single update pipeline step.
type StepOutcome string

const (
	// OutcomeApplied means the step issued a remote call that succeeded.
	OutcomeApplied StepOutcome = "Applied"

	// OutcomeSkipped means the step found nothing to do, or absorbed a benign error.
	OutcomeSkipped StepOutcome = "Skipped"

	// OutcomeFailed means the step returned an error.
	OutcomeFailed StepOutcome = "Failed"
)

// Step names of the update pipeline, in execution order.
const (
	StepContent        = "content"
	StepAddTags        = "add-tags"
	StepRemoveTags     = "remove-tags"
	StepPromoteVersion = "promote-default-version"

	// StepSelfHeal is reported when a vanished document is recreated.
	StepSelfHeal = "self-heal-create"
)

// StepReport describes what one pipeline step did.
type StepReport struct {
	// Step is the step name.
	Step string `json:"step" yaml:"step"`

	// Outcome is what happened.
	Outcome StepOutcome `json:"outcome" yaml:"outcome"`

	// Detail is a short human readable explanation.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Result is the outcome of reconciling one lifecycle event.
type Result struct {
	// Name is the durable identifier of the document.
	Name string `json:"name" yaml:"name"`

	// LatestVersionID is set only when this invocation produced a new content
	// version. It is never carried across invocations.
	LatestVersionID string `json:"latestVersionId,omitempty" yaml:"latestVersionId,omitempty"`

	// SelfHealed is true when an update recreated a document that had been
	// deleted out-of-band.
	SelfHealed bool `json:"selfHealed,omitempty" yaml:"selfHealed,omitempty"`

	// Steps reports the update pipeline steps. Empty for create and delete.
	Steps []StepReport `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Options configures a Reconciler.
type Options struct {
	// SystemTagPrefix is the key prefix of the three system tags.
	// Defaults to tags.DefaultSystemPrefix.
	SystemTagPrefix string
}
