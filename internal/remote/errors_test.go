package remote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"docsync/internal/tags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassHelpers(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		duplicate bool
		gone      bool
	}{
		{"nil", nil, false, false},
		{"plain", errors.New("x"), false, false},
		{"unknown", NewError("UpdateDocument", "d", CodeUnknown, nil), false, false},
		{"duplicate", NewError("UpdateDocument", "d", CodeDuplicateContent, nil), true, false},
		{"not found", NewError("AddTagsToResource", "d", CodeResourceNotFound, nil), false, true},
		{"invalid document", NewError("UpdateDocument", "d", CodeInvalidDocument, nil), false, true},
		{"wrapped", fmt.Errorf("step failed: %w", NewError("UpdateDocument", "d", CodeInvalidDocument, nil)), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.duplicate, IsDuplicateContent(tt.err))
			assert.Equal(t, tt.gone, IsResourceGone(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError("DeleteDocument", "doc1", CodeInvalidDocument, errors.New("does not exist"))
	assert.Equal(t, "DeleteDocument doc1 failed (InvalidDocument): does not exist", err.Error())
	assert.True(t, IsRemoteError(err))
	assert.False(t, IsRemoteError(errors.New("x")))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, CreateInput{Name: "doc1", Content: "{}", Tags: []tags.Tag{{Key: "a", Value: "1"}}}))

	v, err := r.Update(ctx, UpdateInput{Name: "doc1", Content: `{"a":1}`, VersionMarker: LatestVersion})
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	v, err = r.Update(ctx, UpdateInput{Name: "unseen", Content: "{}"})
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	boom := NewError(OpAddTags, "doc1", CodeUnknown, errors.New("boom"))
	r.FailNext(OpAddTags, boom)
	assert.ErrorIs(t, r.AddTags(ctx, "doc1", nil), boom)
	assert.NoError(t, r.AddTags(ctx, "doc1", nil))

	calls := r.Calls()
	require.Len(t, calls, 5)
	assert.Equal(t, OpCreate, calls[0].Op)
	assert.Len(t, r.CallsTo(OpAddTags), 2)
}
