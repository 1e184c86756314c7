package remote

import (
	"context"
	"strconv"
	"sync"

	"docsync/internal/tags"
)

// Operation names as recorded by Recorder. They match the SSM API names.
const (
	OpCreate         = "CreateDocument"
	OpUpdate         = "UpdateDocument"
	OpAddTags        = "AddTagsToResource"
	OpRemoveTags     = "RemoveTagsFromResource"
	OpPromoteVersion = "UpdateDocumentDefaultVersion"
	OpDelete         = "DeleteDocument"
)

// Call is one recorded remote operation.
type Call struct {
	Op            string     `json:"op" yaml:"op"`
	Name          string     `json:"name" yaml:"name"`
	Content       string     `json:"content,omitempty" yaml:"content,omitempty"`
	DocumentType  string     `json:"documentType,omitempty" yaml:"documentType,omitempty"`
	TargetType    string     `json:"targetType,omitempty" yaml:"targetType,omitempty"`
	VersionMarker string     `json:"versionMarker,omitempty" yaml:"versionMarker,omitempty"`
	VersionID     string     `json:"versionId,omitempty" yaml:"versionId,omitempty"`
	Tags          []tags.Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
	TagKeys       []string   `json:"tagKeys,omitempty" yaml:"tagKeys,omitempty"`
}

// Recorder is an in-memory DocumentService that records every call instead
// of reaching a remote service. It backs dry-run plans and tests.
//
// Every call succeeds unless a failure was queued for its operation with
// FailNext. Update returns sequential version ids per document, starting
// after the version created by Create (or after version 1 for documents the
// recorder has not seen).
type Recorder struct {
	mu       sync.Mutex
	calls    []Call
	failures map[string][]error
	versions map[string]int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		failures: make(map[string][]error),
		versions: make(map[string]int),
	}
}

// FailNext queues err to be returned by the next call of op. Queued errors
// are consumed in order.
func (r *Recorder) FailNext(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = append(r.failures[op], err)
}

// Calls returns a copy of all recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsTo returns the recorded calls of a single operation.
func (r *Recorder) CallsTo(op string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// record stores the call and returns the queued failure for its op, if any.
func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)

	queue := r.failures[c.Op]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	r.failures[c.Op] = queue[1:]
	return err
}

// Create implements DocumentService.
func (r *Recorder) Create(ctx context.Context, in CreateInput) error {
	if err := r.record(Call{
		Op:           OpCreate,
		Name:         in.Name,
		Content:      in.Content,
		DocumentType: in.DocumentType,
		TargetType:   in.TargetType,
		Tags:         append([]tags.Tag(nil), in.Tags...),
	}); err != nil {
		return err
	}

	r.mu.Lock()
	r.versions[in.Name] = 1
	r.mu.Unlock()
	return nil
}

// Update implements DocumentService.
func (r *Recorder) Update(ctx context.Context, in UpdateInput) (string, error) {
	if err := r.record(Call{
		Op:            OpUpdate,
		Name:          in.Name,
		Content:       in.Content,
		TargetType:    in.TargetType,
		VersionMarker: in.VersionMarker,
	}); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.versions[in.Name]
	if !ok {
		current = 1
	}
	current++
	r.versions[in.Name] = current
	return strconv.Itoa(current), nil
}

// AddTags implements DocumentService.
func (r *Recorder) AddTags(ctx context.Context, resourceID string, ts []tags.Tag) error {
	return r.record(Call{
		Op:   OpAddTags,
		Name: resourceID,
		Tags: append([]tags.Tag(nil), ts...),
	})
}

// RemoveTags implements DocumentService.
func (r *Recorder) RemoveTags(ctx context.Context, resourceID string, keys []string) error {
	return r.record(Call{
		Op:      OpRemoveTags,
		Name:    resourceID,
		TagKeys: append([]string(nil), keys...),
	})
}

// PromoteDefaultVersion implements DocumentService.
func (r *Recorder) PromoteDefaultVersion(ctx context.Context, name, versionID string) error {
	return r.record(Call{
		Op:        OpPromoteVersion,
		Name:      name,
		VersionID: versionID,
	})
}

// Delete implements DocumentService.
func (r *Recorder) Delete(ctx context.Context, name string) error {
	if err := r.record(Call{Op: OpDelete, Name: name}); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.versions, name)
	r.mu.Unlock()
	return nil
}

var (
	_ DocumentService = (*Recorder)(nil)
	_ DocumentService = (*SSMService)(nil)
)
