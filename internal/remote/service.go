package remote

import (
	"context"

	"docsync/internal/tags"
)

// LatestVersion is the version marker that targets the newest document version.
const LatestVersion = "$LATEST"

// CreateInput describes a new document.
type CreateInput struct {
	Name         string
	Content      string
	DocumentType string
	TargetType   string
	Tags         []tags.Tag
}

// UpdateInput describes new content for an existing document.
type UpdateInput struct {
	Name          string
	Content       string
	TargetType    string
	VersionMarker string
}

// DocumentService is the set of remote operations the reconciler needs.
//
// Implementations must return a *Error for any failure reported by the
// remote service so that callers can classify it with IsDuplicateContent and
// IsResourceGone.
type DocumentService interface {
	// Create creates a new document.
	Create(ctx context.Context, in CreateInput) error

	// Update submits new content and returns the version id assigned to it.
	Update(ctx context.Context, in UpdateInput) (string, error)

	// AddTags adds or overwrites tags on the document.
	AddTags(ctx context.Context, resourceID string, tags []tags.Tag) error

	// RemoveTags removes the tags with the given keys.
	RemoveTags(ctx context.Context, resourceID string, keys []string) error

	// PromoteDefaultVersion makes versionID the default version of the document.
	PromoteDefaultVersion(ctx context.Context, name, versionID string) error

	// Delete removes the document and all of its versions.
	Delete(ctx context.Context, name string) error
}
