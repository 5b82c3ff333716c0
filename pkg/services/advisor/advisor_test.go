package advisor

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDriver struct {
	mock.Mock
}

func (m *mockDriver) Review(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockDriver) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestEngineReview_Structured(t *testing.T) {
	driver := new(mockDriver)
	driver.On("Review", mock.Anything, mock.Anything).Return(`{"score": 81.0, "findings": []}`, nil)

	engine := NewEngine(driver)
	result, err := engine.Review(context.Background(), domain.Snapshot{
		AccountID: "123456789012",
		Region:    "us-east-1",
	}, []domain.Pillar{domain.PillarSecurity})

	require.NoError(t, err)
	assert.True(t, result.Structured)
	assert.Equal(t, 81.0, result.Score)
	driver.AssertExpectations(t)
}

func TestEngineReview_UnstructuredDegrades(t *testing.T) {
	driver := new(mockDriver)
	driver.On("Review", mock.Anything, mock.Anything).Return("everything looks fine", nil)

	engine := NewEngine(driver)
	result, err := engine.Review(context.Background(), domain.Snapshot{}, []domain.Pillar{domain.PillarAll})

	require.NoError(t, err)
	assert.False(t, result.Structured)
	assert.Equal(t, DefaultScore, result.Score)
}

func TestEngineReview_DriverFailure(t *testing.T) {
	driver := new(mockDriver)
	driver.On("Review", mock.Anything, mock.Anything).Return("", fmt.Errorf("exit status 1"))

	engine := NewEngine(driver)
	_, err := engine.Review(context.Background(), domain.Snapshot{}, []domain.Pillar{domain.PillarAll})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "engine invocation failed")
}

func TestEngineReview_PromptContents(t *testing.T) {
	var captured string
	driver := new(mockDriver)
	driver.On("Review", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(1) }).
		Return("{}", nil)

	engine := NewEngine(driver)
	snapshot := domain.Snapshot{
		AccountID: "123456789012",
		Region:    "eu-west-1",
		ObjectStorage: domain.ObjectStorageCategory{
			Buckets: []domain.Bucket{{Name: "audit-logs"}},
		},
	}

	_, err := engine.Review(context.Background(), snapshot,
		[]domain.Pillar{domain.PillarSecurity, domain.PillarReliability})

	require.NoError(t, err)
	assert.Contains(t, captured, "123456789012")
	assert.Contains(t, captured, "eu-west-1")
	assert.Contains(t, captured, "security, reliability")
	assert.Contains(t, captured, "audit-logs")
}
