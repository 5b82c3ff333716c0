package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

type ec2Analyzer struct {
	client *ec2.Client
}

func NewEC2Analyzer(cfg aws.Config) *ec2Analyzer {
	return &ec2Analyzer{
		client: ec2.NewFromConfig(cfg),
	}
}

func (a *ec2Analyzer) Collect(ctx context.Context) (domain.ComputeCategory, error) {
	resp, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return domain.ComputeCategory{}, fmt.Errorf("failed to describe EC2 instances: %w", err)
	}

	var instances []domain.ComputeInstance
	for _, reservation := range resp.Reservations {
		for _, instance := range reservation.Instances {
			instances = append(instances, mapInstance(instance))
		}
	}

	return domain.ComputeCategory{Instances: instances}, nil
}

func mapInstance(instance ec2types.Instance) domain.ComputeInstance {
	groups := make([]string, 0, len(instance.SecurityGroups))
	for _, sg := range instance.SecurityGroups {
		groups = append(groups, aws.ToString(sg.GroupId))
	}

	inst := domain.ComputeInstance{
		InstanceID:     aws.ToString(instance.InstanceId),
		InstanceType:   string(instance.InstanceType),
		SecurityGroups: groups,
		SubnetID:       aws.ToString(instance.SubnetId),
		VpcID:          aws.ToString(instance.VpcId),
	}
	// State can be absent in the DescribeInstances response.
	if instance.State != nil {
		inst.State = string(instance.State.Name)
	}
	return inst
}
