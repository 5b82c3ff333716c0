package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

type s3Analyzer struct {
	client *s3.Client
}

func NewS3Analyzer(cfg aws.Config) *s3Analyzer {
	return &s3Analyzer{
		client: s3.NewFromConfig(cfg),
	}
}

func (a *s3Analyzer) Collect(ctx context.Context) (domain.ObjectStorageCategory, error) {
	resp, err := a.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return domain.ObjectStorageCategory{}, fmt.Errorf("failed to list buckets: %w", err)
	}

	var buckets []domain.Bucket
	for _, b := range resp.Buckets {
		name := aws.ToString(b.Name)
		buckets = append(buckets, domain.Bucket{
			Name:              name,
			Encrypted:         a.bucketEncrypted(ctx, name),
			VersioningEnabled: a.bucketVersioned(ctx, name),
		})
	}

	return domain.ObjectStorageCategory{Buckets: buckets}, nil
}

// bucketEncrypted treats a failed encryption lookup as "not encrypted":
// S3 answers GetBucketEncryption with an error when no server-side
// encryption configuration exists.
func (a *s3Analyzer) bucketEncrypted(ctx context.Context, name string) bool {
	resp, err := a.client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{
		Bucket: aws.String(name),
	})
	if err != nil || resp.ServerSideEncryptionConfiguration == nil {
		return false
	}
	return len(resp.ServerSideEncryptionConfiguration.Rules) > 0
}

func (a *s3Analyzer) bucketVersioned(ctx context.Context, name string) bool {
	resp, err := a.client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		return false
	}
	return resp.Status == s3types.BucketVersioningStatusEnabled
}
