package filestore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/model"
)

type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(data))
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	s := New(client, Config{Bucket: "loan-docs", Region: "us-east-1", Prefix: "/checklist/"})

	url, err := s.Upload(context.Background(), model.UploadFile{
		Name:        "Bank Statement.PDF",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.7"),
	})
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "loan-docs", aws.StringValue(in.Bucket))
	assert.True(t, strings.HasPrefix(aws.StringValue(in.Key), "checklist/"))
	assert.True(t, strings.HasSuffix(aws.StringValue(in.Key), ".pdf"))
	assert.Equal(t, "application/pdf", aws.StringValue(in.ContentType))
	assert.Equal(t, s3.ObjectCannedACLPublicRead, aws.StringValue(in.ACL))
	assert.Equal(t, "%PDF-1.7", client.bodies[0])

	assert.Equal(t, "https://loan-docs.s3.us-east-1.amazonaws.com/"+aws.StringValue(in.Key), url)
}

func TestUpload_UniqueKeys(t *testing.T) {
	client := &fakeS3{}
	s := New(client, Config{Bucket: "b", PublicURL: "https://cdn.lender.test/"})

	first, err := s.Upload(context.Background(), model.UploadFile{Name: "a.pdf", Body: strings.NewReader("1")})
	require.NoError(t, err)
	second, err := s.Upload(context.Background(), model.UploadFile{Name: "a.pdf", Body: strings.NewReader("2")})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "https://cdn.lender.test/"))
	assert.Equal(t, "application/octet-stream", aws.StringValue(client.inputs[0].ContentType))
}

func TestUpload_NonSeekableBody(t *testing.T) {
	client := &fakeS3{}
	s := New(client, Config{Bucket: "b", Endpoint: "http://minio:9000"})

	url, err := s.Upload(context.Background(), model.UploadFile{
		Name: "notes.txt",
		Body: io.NopCloser(strings.NewReader("hello")),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", client.bodies[0])
	assert.True(t, strings.HasPrefix(url, "http://minio:9000/b/"))
}

func TestUpload_Errors(t *testing.T) {
	s := New(&fakeS3{err: errors.New("access denied")}, Config{Bucket: "b"})

	_, err := s.Upload(context.Background(), model.UploadFile{Name: "a.pdf", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	_, err = s.Upload(context.Background(), model.UploadFile{Name: "empty.pdf"})
	assert.Error(t, err)
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(Config{Region: "us-east-1"})
	assert.Error(t, err)
}
