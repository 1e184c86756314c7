package remote

import (
	"context"
	"errors"
	"testing"

	"docsync/internal/tags"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSSM implements SSMAPI and captures the last input of each call.
type fakeSSM struct {
	err error

	createIn  *ssm.CreateDocumentInput
	updateIn  *ssm.UpdateDocumentInput
	addIn     *ssm.AddTagsToResourceInput
	removeIn  *ssm.RemoveTagsFromResourceInput
	promoteIn *ssm.UpdateDocumentDefaultVersionInput
	deleteIn  *ssm.DeleteDocumentInput

	updateVersion string
}

func (f *fakeSSM) CreateDocument(ctx context.Context, in *ssm.CreateDocumentInput, _ ...func(*ssm.Options)) (*ssm.CreateDocumentOutput, error) {
	f.createIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.CreateDocumentOutput{}, nil
}

func (f *fakeSSM) UpdateDocument(ctx context.Context, in *ssm.UpdateDocumentInput, _ ...func(*ssm.Options)) (*ssm.UpdateDocumentOutput, error) {
	f.updateIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.UpdateDocumentOutput{
		DocumentDescription: &ssmtypes.DocumentDescription{
			DocumentVersion: aws.String(f.updateVersion),
		},
	}, nil
}

func (f *fakeSSM) AddTagsToResource(ctx context.Context, in *ssm.AddTagsToResourceInput, _ ...func(*ssm.Options)) (*ssm.AddTagsToResourceOutput, error) {
	f.addIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.AddTagsToResourceOutput{}, nil
}

func (f *fakeSSM) RemoveTagsFromResource(ctx context.Context, in *ssm.RemoveTagsFromResourceInput, _ ...func(*ssm.Options)) (*ssm.RemoveTagsFromResourceOutput, error) {
	f.removeIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.RemoveTagsFromResourceOutput{}, nil
}

func (f *fakeSSM) UpdateDocumentDefaultVersion(ctx context.Context, in *ssm.UpdateDocumentDefaultVersionInput, _ ...func(*ssm.Options)) (*ssm.UpdateDocumentDefaultVersionOutput, error) {
	f.promoteIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.UpdateDocumentDefaultVersionOutput{}, nil
}

func (f *fakeSSM) DeleteDocument(ctx context.Context, in *ssm.DeleteDocumentInput, _ ...func(*ssm.Options)) (*ssm.DeleteDocumentOutput, error) {
	f.deleteIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.DeleteDocumentOutput{}, nil
}

func TestSSMService_Create(t *testing.T) {
	fake := &fakeSSM{}
	svc := NewSSMService(fake)

	err := svc.Create(context.Background(), CreateInput{
		Name:         "doc1",
		Content:      `{"schemaVersion":"1.0"}`,
		DocumentType: "Automation",
		TargetType:   "/",
		Tags:         []tags.Tag{{Key: "cfn:logical-id", Value: "Doc"}},
	})
	require.NoError(t, err)
	require.NotNil(t, fake.createIn)

	assert.Equal(t, "doc1", aws.ToString(fake.createIn.Name))
	assert.Equal(t, `{"schemaVersion":"1.0"}`, aws.ToString(fake.createIn.Content))
	assert.Equal(t, ssmtypes.DocumentTypeAutomation, fake.createIn.DocumentType)
	assert.Equal(t, ssmtypes.DocumentFormatJson, fake.createIn.DocumentFormat)
	assert.Equal(t, "/", aws.ToString(fake.createIn.TargetType))
	require.Len(t, fake.createIn.Tags, 1)
	assert.Equal(t, "cfn:logical-id", aws.ToString(fake.createIn.Tags[0].Key))
	assert.Equal(t, "Doc", aws.ToString(fake.createIn.Tags[0].Value))
}

func TestSSMService_UpdateReturnsVersion(t *testing.T) {
	fake := &fakeSSM{updateVersion: "7"}
	svc := NewSSMService(fake)

	version, err := svc.Update(context.Background(), UpdateInput{
		Name:       "doc1",
		Content:    "schemaVersion: '2.2'\n",
		TargetType: "/",
	})
	require.NoError(t, err)

	assert.Equal(t, "7", version)
	assert.Equal(t, LatestVersion, aws.ToString(fake.updateIn.DocumentVersion))
	assert.Equal(t, ssmtypes.DocumentFormatYaml, fake.updateIn.DocumentFormat)
}

func TestSSMService_TagsAndPromoteAndDelete(t *testing.T) {
	fake := &fakeSSM{}
	svc := NewSSMService(fake)
	ctx := context.Background()

	require.NoError(t, svc.AddTags(ctx, "doc1", []tags.Tag{{Key: "a", Value: "1"}}))
	assert.Equal(t, ssmtypes.ResourceTypeForTaggingDocument, fake.addIn.ResourceType)
	assert.Equal(t, "doc1", aws.ToString(fake.addIn.ResourceId))

	require.NoError(t, svc.RemoveTags(ctx, "doc1", []string{"b", "c"}))
	assert.Equal(t, []string{"b", "c"}, fake.removeIn.TagKeys)

	require.NoError(t, svc.PromoteDefaultVersion(ctx, "doc1", "3"))
	assert.Equal(t, "3", aws.ToString(fake.promoteIn.DocumentVersion))

	require.NoError(t, svc.Delete(ctx, "doc1"))
	assert.Equal(t, "doc1", aws.ToString(fake.deleteIn.Name))
}

func TestSSMService_ErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"duplicate content", &ssmtypes.DuplicateDocumentContent{Message: aws.String("dup")}, CodeDuplicateContent},
		{"invalid resource id", &ssmtypes.InvalidResourceId{Message: aws.String("gone")}, CodeResourceNotFound},
		{"invalid document", &ssmtypes.InvalidDocument{Message: aws.String("gone")}, CodeInvalidDocument},
		{"generic api error", &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"}, CodeUnknown},
		{"generic api error with known code", &smithy.GenericAPIError{Code: "InvalidResourceId"}, CodeResourceNotFound},
		{"plain error", errors.New("connection reset"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSSMService(&fakeSSM{err: tt.err})

			_, err := svc.Update(context.Background(), UpdateInput{Name: "doc1", Content: "{}"})
			require.Error(t, err)

			var re *Error
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.want, re.Code)
			assert.Equal(t, "UpdateDocument", re.Op)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
