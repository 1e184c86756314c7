package document

import (
	"strings"

	"docsync/internal/tags"
)

// DefaultTargetType is the target type used when a document does not set one.
const DefaultTargetType = "/"

// LifecycleKind is the kind of lifecycle event being reconciled.
type LifecycleKind string

const (
	// KindCreate requests a new document.
	KindCreate LifecycleKind = "Create"

	// KindUpdate requests that an existing document be brought to a new desired state.
	KindUpdate LifecycleKind = "Update"

	// KindDelete requests removal of the document.
	KindDelete LifecycleKind = "Delete"
)

// DesiredState is the document configuration requested by one invocation.
type DesiredState struct {
	// Name is the identity of the remote document. It never changes across updates.
	Name string `json:"name" yaml:"name"`

	// Content is the document body. It is opaque to the reconciler except for
	// equality checks and is serialized only when sent to the remote service.
	Content interface{} `json:"content,omitempty" yaml:"content,omitempty"`

	// DocumentType is only used at creation (e.g. "Command", "Automation").
	DocumentType string `json:"documentType,omitempty" yaml:"documentType,omitempty"`

	// TargetType restricts which resources the document can run against.
	// Empty means DefaultTargetType.
	TargetType string `json:"targetType,omitempty" yaml:"targetType,omitempty"`

	// Tags are the user tags. System tags are added by the tags package.
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// UpdateDefaultVersion promotes a newly created version to default.
	UpdateDefaultVersion bool `json:"updateDefaultVersion,omitempty" yaml:"updateDefaultVersion,omitempty"`
}

// EffectiveTargetType returns the target type with the default applied.
func (s DesiredState) EffectiveTargetType() string {
	if s.TargetType == "" {
		return DefaultTargetType
	}
	return s.TargetType
}

// StackContext identifies the stack resource on whose behalf the event is processed.
type StackContext struct {
	StackID   string `json:"stackId" yaml:"stackId"`
	StackName string `json:"stackName,omitempty" yaml:"stackName,omitempty"`
	LogicalID string `json:"logicalId" yaml:"logicalId"`
}

// Owner converts the stack context into the owner used for system tags.
// When StackName is unset it is derived from the stack ARN.
func (c StackContext) Owner() tags.Owner {
	name := c.StackName
	if name == "" {
		name = StackNameFromID(c.StackID)
	}
	return tags.Owner{
		StackID:   c.StackID,
		StackName: name,
		LogicalID: c.LogicalID,
	}
}

// StackNameFromID extracts the stack name from a CloudFormation stack ARN of
// the form arn:<partition>:cloudformation:<region>:<account>:stack/<name>/<guid>.
// Anything that does not look like a stack ARN is returned unchanged.
func StackNameFromID(stackID string) string {
	idx := strings.Index(stackID, ":stack/")
	if idx < 0 {
		return stackID
	}
	rest := stackID[idx+len(":stack/"):]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		return rest[:slash]
	}
	return rest
}

// Event is a single lifecycle event to reconcile.
type Event struct {
	Kind LifecycleKind

	// Desired is the requested state. For delete events only Name is relevant.
	Desired DesiredState

	// Previous is the state of the last successful invocation. Only set for updates.
	Previous *DesiredState

	// PhysicalID is the identifier the platform recorded for the resource, if any.
	PhysicalID string

	Stack StackContext
}

// ResourceName returns the name to act on: the desired name, or the platform's
// physical id when the name is missing.
func (e Event) ResourceName() string {
	if e.Desired.Name != "" {
		return e.Desired.Name
	}
	return e.PhysicalID
}
