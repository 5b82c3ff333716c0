package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
)

type lambdaAnalyzer struct {
	client *lambda.Client
}

func NewLambdaAnalyzer(cfg aws.Config) *lambdaAnalyzer {
	return &lambdaAnalyzer{
		client: lambda.NewFromConfig(cfg),
	}
}

func (a *lambdaAnalyzer) Collect(ctx context.Context) (domain.FunctionCategory, error) {
	resp, err := a.client.ListFunctions(ctx, &lambda.ListFunctionsInput{})
	if err != nil {
		return domain.FunctionCategory{}, fmt.Errorf("failed to list Lambda functions: %w", err)
	}

	var functions []domain.Function
	for _, fn := range resp.Functions {
		functions = append(functions, domain.Function{
			Name:         aws.ToString(fn.FunctionName),
			Runtime:      string(fn.Runtime),
			MemoryMB:     aws.ToInt32(fn.MemorySize),
			TimeoutSec:   aws.ToInt32(fn.Timeout),
			LastModified: aws.ToString(fn.LastModified),
		})
	}

	return domain.FunctionCategory{Functions: functions}, nil
}
