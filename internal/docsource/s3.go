package docsource

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of the S3 client used by S3Source.
type s3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads donor-data documents from an S3 bucket under a key prefix.
type S3Source struct {
	client s3API
	bucket string
	prefix string
}

var _ contract.DocumentSource = &S3Source{} // Compile-time check

// NewS3Source creates a source using the default AWS credential chain.
// An empty region falls back to the environment or shared config.
func NewS3Source(ctx context.Context, bucket, prefix, region string) (*S3Source, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newS3SourceWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newS3SourceWithClient(client s3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: strings.TrimPrefix(prefix, "/")}
}

// Name implements the DocumentSource interface.
func (s *S3Source) Name() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

// ListDocuments implements the DocumentSource interface.
func (s *S3Source) ListDocuments(ctx context.Context) ([]schema.Document, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var docs []schema.Document
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s: %w", s.bucket, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := path.Base(key)
			if strings.HasSuffix(key, "/") || !ingest.IsSupported(name, "") {
				continue
			}
			doc := schema.Document{
				ID:          key,
				Name:        name,
				Category:    schema.DonorDataCategory,
				ContentType: contentTypeOf(name),
			}
			if obj.LastModified != nil {
				doc.CreatedAt = obj.LastModified.UTC()
			}
			docs = append(docs, doc)
		}
	}

	sortDocuments(docs)
	return docs, nil
}

// Open implements the DocumentSource interface.
func (s *S3Source) Open(ctx context.Context, doc schema.Document) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(doc.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download s3://%s/%s: %w", s.bucket, doc.ID, err)
	}
	return out.Body, nil
}
