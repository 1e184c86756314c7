package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"docsync/internal/tags"
	"docsync/pkg/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
)

// SSM error codes the reconciler cares about.
const (
	ssmCodeDuplicateDocumentContent = "DuplicateDocumentContent"
	ssmCodeInvalidResourceID        = "InvalidResourceId"
	ssmCodeInvalidDocument          = "InvalidDocument"
)

// SSMAPI is the subset of the Systems Manager client used by SSMService.
type SSMAPI interface {
	CreateDocument(ctx context.Context, params *ssm.CreateDocumentInput, optFns ...func(*ssm.Options)) (*ssm.CreateDocumentOutput, error)
	UpdateDocument(ctx context.Context, params *ssm.UpdateDocumentInput, optFns ...func(*ssm.Options)) (*ssm.UpdateDocumentOutput, error)
	AddTagsToResource(ctx context.Context, params *ssm.AddTagsToResourceInput, optFns ...func(*ssm.Options)) (*ssm.AddTagsToResourceOutput, error)
	RemoveTagsFromResource(ctx context.Context, params *ssm.RemoveTagsFromResourceInput, optFns ...func(*ssm.Options)) (*ssm.RemoveTagsFromResourceOutput, error)
	UpdateDocumentDefaultVersion(ctx context.Context, params *ssm.UpdateDocumentDefaultVersionInput, optFns ...func(*ssm.Options)) (*ssm.UpdateDocumentDefaultVersionOutput, error)
	DeleteDocument(ctx context.Context, params *ssm.DeleteDocumentInput, optFns ...func(*ssm.Options)) (*ssm.DeleteDocumentOutput, error)
}

// ClientOptions configures the Systems Manager client.
type ClientOptions struct {
	// Region overrides the region from the environment.
	Region string

	// Profile selects a shared config profile.
	Profile string

	// Endpoint overrides the service endpoint (e.g. a local emulator).
	Endpoint string
}

// NewSSMClient builds a Systems Manager client from the default AWS credential chain.
func NewSSMClient(ctx context.Context, opts ClientOptions) (*ssm.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return ssm.NewFromConfig(cfg, func(o *ssm.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// SSMService implements DocumentService on top of AWS Systems Manager.
type SSMService struct {
	client SSMAPI
}

// NewSSMService wraps a Systems Manager client.
func NewSSMService(client SSMAPI) *SSMService {
	return &SSMService{client: client}
}

// Create implements DocumentService.
func (s *SSMService) Create(ctx context.Context, in CreateInput) error {
	logging.Debug("SSM", "CreateDocument %s (type=%s, target=%s, tags=%d)", in.Name, in.DocumentType, in.TargetType, len(in.Tags))

	_, err := s.client.CreateDocument(ctx, &ssm.CreateDocumentInput{
		Name:           aws.String(in.Name),
		Content:        aws.String(in.Content),
		DocumentFormat: detectFormat(in.Content),
		DocumentType:   ssmtypes.DocumentType(in.DocumentType),
		TargetType:     optionalString(in.TargetType),
		Tags:           toSSMTags(in.Tags),
	})
	if err != nil {
		return wrapError(OpCreate, in.Name, err)
	}
	return nil
}

// Update implements DocumentService.
func (s *SSMService) Update(ctx context.Context, in UpdateInput) (string, error) {
	marker := in.VersionMarker
	if marker == "" {
		marker = LatestVersion
	}
	logging.Debug("SSM", "UpdateDocument %s (version=%s, target=%s)", in.Name, marker, in.TargetType)

	out, err := s.client.UpdateDocument(ctx, &ssm.UpdateDocumentInput{
		Name:            aws.String(in.Name),
		Content:         aws.String(in.Content),
		DocumentFormat:  detectFormat(in.Content),
		DocumentVersion: aws.String(marker),
		TargetType:      optionalString(in.TargetType),
	})
	if err != nil {
		return "", wrapError(OpUpdate, in.Name, err)
	}

	var version string
	if out != nil && out.DocumentDescription != nil {
		version = aws.ToString(out.DocumentDescription.DocumentVersion)
	}
	logging.Debug("SSM", "UpdateDocument %s produced version %q", in.Name, version)
	return version, nil
}

// AddTags implements DocumentService.
func (s *SSMService) AddTags(ctx context.Context, resourceID string, ts []tags.Tag) error {
	logging.Debug("SSM", "AddTagsToResource %s (%d tags)", resourceID, len(ts))

	_, err := s.client.AddTagsToResource(ctx, &ssm.AddTagsToResourceInput{
		ResourceType: ssmtypes.ResourceTypeForTaggingDocument,
		ResourceId:   aws.String(resourceID),
		Tags:         toSSMTags(ts),
	})
	if err != nil {
		return wrapError(OpAddTags, resourceID, err)
	}
	return nil
}

// RemoveTags implements DocumentService.
func (s *SSMService) RemoveTags(ctx context.Context, resourceID string, keys []string) error {
	logging.Debug("SSM", "RemoveTagsFromResource %s %v", resourceID, keys)

	_, err := s.client.RemoveTagsFromResource(ctx, &ssm.RemoveTagsFromResourceInput{
		ResourceType: ssmtypes.ResourceTypeForTaggingDocument,
		ResourceId:   aws.String(resourceID),
		TagKeys:      keys,
	})
	if err != nil {
		return wrapError(OpRemoveTags, resourceID, err)
	}
	return nil
}

// PromoteDefaultVersion implements DocumentService.
func (s *SSMService) PromoteDefaultVersion(ctx context.Context, name, versionID string) error {
	logging.Debug("SSM", "UpdateDocumentDefaultVersion %s -> %s", name, versionID)

	_, err := s.client.UpdateDocumentDefaultVersion(ctx, &ssm.UpdateDocumentDefaultVersionInput{
		Name:            aws.String(name),
		DocumentVersion: aws.String(versionID),
	})
	if err != nil {
		return wrapError(OpPromoteVersion, name, err)
	}
	return nil
}

// Delete implements DocumentService.
func (s *SSMService) Delete(ctx context.Context, name string) error {
	logging.Debug("SSM", "DeleteDocument %s", name)

	_, err := s.client.DeleteDocument(ctx, &ssm.DeleteDocumentInput{
		Name: aws.String(name),
	})
	if err != nil {
		return wrapError(OpDelete, name, err)
	}
	return nil
}

func wrapError(op, name string, err error) *Error {
	return NewError(op, name, classifySSMError(err), err)
}

// classifySSMError maps Systems Manager error codes to ErrorCode.
func classifySSMError(err error) ErrorCode {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return CodeUnknown
	}
	switch apiErr.ErrorCode() {
	case ssmCodeDuplicateDocumentContent:
		return CodeDuplicateContent
	case ssmCodeInvalidResourceID:
		return CodeResourceNotFound
	case ssmCodeInvalidDocument:
		return CodeInvalidDocument
	default:
		return CodeUnknown
	}
}

// detectFormat tells SSM how to parse the content: JSON when it is valid
// JSON, YAML otherwise.
func detectFormat(content string) ssmtypes.DocumentFormat {
	if json.Valid([]byte(content)) {
		return ssmtypes.DocumentFormatJson
	}
	return ssmtypes.DocumentFormatYaml
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func toSSMTags(ts []tags.Tag) []ssmtypes.Tag {
	if len(ts) == 0 {
		return nil
	}
	out := make([]ssmtypes.Tag, len(ts))
	for i, t := range ts {
		out[i] = ssmtypes.Tag{
			Key:   aws.String(t.Key),
			Value: aws.String(t.Value),
		}
	}
	return out
}
