package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

type iamAnalyzer struct {
	client *iam.Client
}

func NewIAMAnalyzer(cfg aws.Config) *iamAnalyzer {
	return &iamAnalyzer{
		client: iam.NewFromConfig(cfg),
	}
}

func (a *iamAnalyzer) Collect(ctx context.Context) (domain.IdentityCategory, error) {
	roles, err := a.client.ListRoles(ctx, &iam.ListRolesInput{})
	if err != nil {
		return domain.IdentityCategory{}, fmt.Errorf("failed to list IAM roles: %w", err)
	}

	// Customer managed policies only; AWS managed ones are not actionable.
	policies, err := a.client.ListPolicies(ctx, &iam.ListPoliciesInput{
		Scope: iamtypes.PolicyScopeTypeLocal,
	})
	if err != nil {
		return domain.IdentityCategory{}, fmt.Errorf("failed to list IAM policies: %w", err)
	}

	return domain.IdentityCategory{
		RoleCount:   len(roles.Roles),
		PolicyCount: len(policies.Policies),
	}, nil
}
