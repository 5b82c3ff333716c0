package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

type cloudFormationAnalyzer struct {
	client *cloudformation.Client
}

func NewCloudFormationAnalyzer(cfg aws.Config) *cloudFormationAnalyzer {
	return &cloudFormationAnalyzer{
		client: cloudformation.NewFromConfig(cfg),
	}
}

func (a *cloudFormationAnalyzer) Collect(ctx context.Context) (domain.InfrastructureCategory, error) {
	resp, err := a.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{})
	if err != nil {
		return domain.InfrastructureCategory{}, fmt.Errorf("failed to describe CloudFormation stacks: %w", err)
	}

	var stacks []domain.Stack
	for _, stack := range resp.Stacks {
		s := domain.Stack{
			Name:      aws.ToString(stack.StackName),
			Status:    string(stack.StackStatus),
			CreatedAt: aws.ToTime(stack.CreationTime),
		}
		if stack.DriftInformation != nil {
			s.DriftStatus = string(stack.DriftInformation.StackDriftStatus)
		}
		stacks = append(stacks, s)
	}

	return domain.InfrastructureCategory{Stacks: stacks}, nil
}
