package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

type rdsAnalyzer struct {
	client *rds.Client
}

func NewRDSAnalyzer(cfg aws.Config) *rdsAnalyzer {
	return &rdsAnalyzer{
		client: rds.NewFromConfig(cfg),
	}
}

func (a *rdsAnalyzer) Collect(ctx context.Context) (domain.DatabaseCategory, error) {
	resp, err := a.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return domain.DatabaseCategory{}, fmt.Errorf("failed to describe RDS instances: %w", err)
	}

	var instances []domain.DatabaseInstance
	for _, instance := range resp.DBInstances {
		instances = append(instances, domain.DatabaseInstance{
			Identifier:          aws.ToString(instance.DBInstanceIdentifier),
			InstanceClass:       aws.ToString(instance.DBInstanceClass),
			Engine:              aws.ToString(instance.Engine),
			Encrypted:           aws.ToBool(instance.StorageEncrypted),
			MultiAZ:             aws.ToBool(instance.MultiAZ),
			BackupRetentionDays: aws.ToInt32(instance.BackupRetentionPeriod),
		})
	}

	return domain.DatabaseCategory{Instances: instances}, nil
}
