// Package inspector produces the per-category resource snapshot a review
// evaluates. Each category is collected independently: one service failing
// degrades that category to an inline error and never aborts the others.
package inspector

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/de-tools/arch-atlas/pkg/services/inspector/analyzers"
	"github.com/rs/zerolog"
)

type Inspector interface {
	Inspect(ctx context.Context, accountID, region string) domain.Snapshot
}

type computeCollector interface {
	Collect(ctx context.Context) (domain.ComputeCategory, error)
}

type objectStorageCollector interface {
	Collect(ctx context.Context) (domain.ObjectStorageCategory, error)
}

type databaseCollector interface {
	Collect(ctx context.Context) (domain.DatabaseCategory, error)
}

type functionCollector interface {
	Collect(ctx context.Context) (domain.FunctionCategory, error)
}

type identityCollector interface {
	Collect(ctx context.Context) (domain.IdentityCategory, error)
}

type infrastructureCollector interface {
	Collect(ctx context.Context) (domain.InfrastructureCategory, error)
}

type awsInspector struct {
	compute        computeCollector
	objectStorage  objectStorageCollector
	databases      databaseCollector
	functions      functionCollector
	identity       identityCollector
	infrastructure infrastructureCollector
}

// NewAWSInspector builds an inspector over one shared AWS config. Service
// clients are created once and reused across reviews.
func NewAWSInspector(cfg aws.Config) Inspector {
	return &awsInspector{
		compute:        analyzers.NewEC2Analyzer(cfg),
		objectStorage:  analyzers.NewS3Analyzer(cfg),
		databases:      analyzers.NewRDSAnalyzer(cfg),
		functions:      analyzers.NewLambdaAnalyzer(cfg),
		identity:       analyzers.NewIAMAnalyzer(cfg),
		infrastructure: analyzers.NewCloudFormationAnalyzer(cfg),
	}
}

func (i *awsInspector) Inspect(ctx context.Context, accountID, region string) domain.Snapshot {
	logger := zerolog.Ctx(ctx)

	snapshot := domain.Snapshot{
		AccountID: accountID,
		Region:    region,
		Timestamp: time.Now().UTC(),
	}

	var err error
	if snapshot.Compute, err = i.compute.Collect(ctx); err != nil {
		logger.Error().Err(err).Msg("compute inspection failed")
		snapshot.Compute = domain.ComputeCategory{Error: err.Error()}
	}
	if snapshot.ObjectStorage, err = i.objectStorage.Collect(ctx); err != nil {
		logger.Error().Err(err).Msg("object storage inspection failed")
		snapshot.ObjectStorage = domain.ObjectStorageCategory{Error: err.Error()}
	}
	if snapshot.Databases, err = i.databases.Collect(ctx); err != nil {
		logger.Error().Err(err).Msg("database inspection failed")
		snapshot.Databases = domain.DatabaseCategory{Error: err.Error()}
	}
	if snapshot.Functions, err = i.functions.Collect(ctx); err != nil {
		logger.Error().Err(err).Msg("function inspection failed")
		snapshot.Functions = domain.FunctionCategory{Error: err.Error()}
	}
	if snapshot.Identity, err = i.identity.Collect(ctx); err != nil {
		logger.Error().Err(err).Msg("identity inspection failed")
		snapshot.Identity = domain.IdentityCategory{Error: err.Error()}
	}
	if snapshot.Infrastructure, err = i.infrastructure.Collect(ctx); err != nil {
		logger.Error().Err(err).Msg("infrastructure inspection failed")
		snapshot.Infrastructure = domain.InfrastructureCategory{Error: err.Error()}
	}

	return snapshot
}
