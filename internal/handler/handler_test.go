package handler

import (
	"context"
	"errors"
	"testing"

	"docsync/internal/document"
	"docsync/internal/reconciler"
	"docsync/internal/remote"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStackID = "arn:aws:cloudformation:eu-west-1:123456789012:stack/docs/6a2f"

func baseEvent(rt cfn.RequestType) cfn.Event {
	return cfn.Event{
		RequestType:       rt,
		RequestID:         "req-1",
		StackID:           testStackID,
		LogicalResourceID: "RunbookDocument",
		ResourceProperties: map[string]interface{}{
			"ServiceToken": "arn:aws:lambda:eu-west-1:123456789012:function:docsync",
			"Name":         "doc1",
			"Content":      map[string]interface{}{"schemaVersion": "1.0"},
			"DocumentType": "Automation",
		},
	}
}

func TestToEvent_Create(t *testing.T) {
	ev, err := ToEvent(baseEvent(cfn.RequestCreate))
	require.NoError(t, err)

	assert.Equal(t, document.KindCreate, ev.Kind)
	assert.Equal(t, "doc1", ev.Desired.Name)
	assert.Nil(t, ev.Previous)
	assert.Equal(t, testStackID, ev.Stack.StackID)
	assert.Equal(t, "docs", ev.Stack.Owner().StackName)
	assert.Equal(t, "RunbookDocument", ev.Stack.LogicalID)
}

func TestToEvent_UpdateCarriesPrevious(t *testing.T) {
	event := baseEvent(cfn.RequestUpdate)
	event.PhysicalResourceID = "doc1"
	event.OldResourceProperties = map[string]interface{}{
		"Name":    "doc1",
		"Content": map[string]interface{}{"schemaVersion": "0.9"},
		"Tags":    map[string]interface{}{"x": "1"},
	}

	ev, err := ToEvent(event)
	require.NoError(t, err)

	require.NotNil(t, ev.Previous)
	assert.Equal(t, map[string]string{"x": "1"}, ev.Previous.Tags)
	assert.Equal(t, "doc1", ev.PhysicalID)
}

func TestToEvent_Errors(t *testing.T) {
	event := baseEvent("Replace")
	_, err := ToEvent(event)
	assert.True(t, document.IsValidationError(err))

	event = baseEvent(cfn.RequestCreate)
	event.ResourceProperties["Tags"] = "x=1"
	_, err = ToEvent(event)
	assert.True(t, document.IsValidationError(err))

	event = baseEvent(cfn.RequestUpdate)
	event.OldResourceProperties = map[string]interface{}{"Tags": 5}
	_, err = ToEvent(event)
	assert.True(t, document.IsValidationError(err))
}

func TestHandle_Create(t *testing.T) {
	rec := remote.NewRecorder()
	h := New(rec, reconciler.Options{})

	physicalID, data, err := h.Handle(context.Background(), baseEvent(cfn.RequestCreate))
	require.NoError(t, err)

	assert.Equal(t, "doc1", physicalID)
	assert.Equal(t, map[string]interface{}{DataName: "doc1"}, data)

	creates := rec.CallsTo(remote.OpCreate)
	require.Len(t, creates, 1)
	assert.Equal(t, "/", creates[0].TargetType)
}

func TestHandle_UpdateReturnsLatestVersion(t *testing.T) {
	rec := remote.NewRecorder()
	h := New(rec, reconciler.Options{})

	event := baseEvent(cfn.RequestUpdate)
	event.PhysicalResourceID = "doc1"
	event.ResourceProperties["UpdateDefaultVersion"] = "True"
	event.OldResourceProperties = map[string]interface{}{
		"Name":    "doc1",
		"Content": map[string]interface{}{"schemaVersion": "0.9"},
	}

	physicalID, data, err := h.Handle(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, "doc1", physicalID)
	assert.Equal(t, "2", data[DataLatestVersionID])
	assert.Len(t, rec.CallsTo(remote.OpPromoteVersion), 1)
}

func TestHandle_FailureKeepsPhysicalID(t *testing.T) {
	rec := remote.NewRecorder()
	boom := remote.NewError(remote.OpDelete, "doc1", remote.CodeInvalidDocument, errors.New("not found"))
	rec.FailNext(remote.OpDelete, boom)
	h := New(rec, reconciler.Options{})

	event := baseEvent(cfn.RequestDelete)
	event.PhysicalResourceID = "doc1"

	physicalID, data, err := h.Handle(context.Background(), event)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "doc1", physicalID)
	assert.Nil(t, data)
}

func TestResponseData(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"Name": "d"}, ResponseData(&reconciler.Result{Name: "d"}))
	assert.Equal(t,
		map[string]interface{}{"Name": "d", "LatestVersionId": "4"},
		ResponseData(&reconciler.Result{Name: "d", LatestVersionID: "4"}))
}
