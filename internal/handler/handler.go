package handler

import (
	"context"
	"fmt"

	"docsync/internal/document"
	"docsync/internal/reconciler"
	"docsync/internal/remote"
	"docsync/pkg/logging"

	"github.com/aws/aws-lambda-go/cfn"
)

// Keys of the response data returned to CloudFormation (readable with Fn::GetAtt).
const (
	DataName            = "Name"
	DataLatestVersionID = "LatestVersionId"
)

// Handler serves CloudFormation custom resource events for documents.
type Handler struct {
	service remote.DocumentService
	opts    reconciler.Options
}

// New creates a Handler that reconciles against service.
func New(service remote.DocumentService, opts reconciler.Options) *Handler {
	return &Handler{
		service: service,
		opts:    opts,
	}
}

// Handle implements cfn.CustomResourceFunction.
//
// A fresh Reconciler is built for every event so that no state crosses
// invocations, even when the Lambda execution environment is reused.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	logging.Info("Handler", "Received %s request %s for %s (%s)",
		event.RequestType, event.RequestID, event.LogicalResourceID, event.PhysicalResourceID)

	ev, err := ToEvent(event)
	if err != nil {
		logging.Error("Handler", err, "Rejected %s request %s", event.RequestType, event.RequestID)
		return event.PhysicalResourceID, nil, err
	}

	r := reconciler.New(h.service, h.opts)
	result, err := r.Reconcile(ctx, ev)
	logging.Debug("Handler", "Reconciler metrics for request %s: %+v", event.RequestID, r.Metrics().Summary())
	if err != nil {
		logging.Error("Handler", err, "%s of %s failed", ev.Kind, ev.ResourceName())
		// Keep the existing physical id so a failed update is not read as a replacement.
		return event.PhysicalResourceID, nil, err
	}

	return result.Name, ResponseData(result), nil
}

// ResponseData builds the data map returned to CloudFormation.
func ResponseData(result *reconciler.Result) map[string]interface{} {
	data := map[string]interface{}{
		DataName: result.Name,
	}
	if result.LatestVersionID != "" {
		data[DataLatestVersionID] = result.LatestVersionID
	}
	return data
}

// ToEvent converts a CloudFormation custom resource event into a document event.
func ToEvent(event cfn.Event) (document.Event, error) {
	kind, err := lifecycleKind(event.RequestType)
	if err != nil {
		return document.Event{}, err
	}

	desired, err := document.ParseProperties(event.ResourceProperties)
	if err != nil {
		return document.Event{}, fmt.Errorf("invalid ResourceProperties: %w", err)
	}

	ev := document.Event{
		Kind:       kind,
		Desired:    desired,
		PhysicalID: event.PhysicalResourceID,
		Stack: document.StackContext{
			StackID:   event.StackID,
			LogicalID: event.LogicalResourceID,
		},
	}

	if kind == document.KindUpdate && event.OldResourceProperties != nil {
		previous, err := document.ParseProperties(event.OldResourceProperties)
		if err != nil {
			return document.Event{}, fmt.Errorf("invalid OldResourceProperties: %w", err)
		}
		ev.Previous = &previous
	}

	return ev, nil
}

func lifecycleKind(rt cfn.RequestType) (document.LifecycleKind, error) {
	switch rt {
	case cfn.RequestCreate:
		return document.KindCreate, nil
	case cfn.RequestUpdate:
		return document.KindUpdate, nil
	case cfn.RequestDelete:
		return document.KindDelete, nil
	default:
		return "", document.NewValidationError("RequestType", "unsupported request type %q", rt)
	}
}
