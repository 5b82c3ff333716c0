package review

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/arch-atlas/pkg/models/api"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(
	ctx context.Context,
	accountID, region string,
	pillars []string,
) (*domain.Review, error) {
	args := m.Called(ctx, accountID, region, pillars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockService) List(ctx context.Context, limit int, pageToken string) ([]domain.Review, string, error) {
	args := m.Called(ctx, limit, pageToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.String(1), args.Error(2)
}

func TestHealth(t *testing.T) {
	handler := NewHandler(new(mockService))

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response api.Health
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "arch-atlas-api", response.Service)
	_, err := time.Parse(time.RFC3339, response.Timestamp)
	assert.NoError(t, err)
}

func TestCreateReview(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful creation",
			body: `{"awsAccountId": "123456789012", "region": "us-east-1", "pillars": ["security"]}`,
			setupMock: func(m *mockService) {
				m.On("Create", mock.Anything, "123456789012", "us-east-1", []string{"security"}).
					Return(&domain.Review{
						ReviewID: "rev-1",
						Status:   domain.ReviewStatusPending,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "minimal request uses defaults",
			body: `{"awsAccountId": "123456789012"}`,
			setupMock: func(m *mockService) {
				m.On("Create", mock.Anything, "123456789012", "", []string(nil)).
					Return(&domain.Review{
						ReviewID: "rev-2",
						Status:   domain.ReviewStatusPending,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed JSON",
			body:           `{"awsAccountId": `,
			setupMock:      func(m *mockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid JSON in request body",
		},
		{
			name: "missing account id",
			body: `{}`,
			setupMock: func(m *mockService) {
				m.On("Create", mock.Anything, "", "", []string(nil)).
					Return(nil, &domain.ValidationError{Field: "awsAccountId", Reason: "is required"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "awsAccountId is required",
		},
		{
			name: "internal failure",
			body: `{"awsAccountId": "123456789012"}`,
			setupMock: func(m *mockService) {
				m.On("Create", mock.Anything, "123456789012", "", []string(nil)).
					Return(nil, fmt.Errorf("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to create review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setupMock(service)
			handler := NewHandler(service)

			req := httptest.NewRequest("POST", "/reviews", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.CreateReview(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedError != "" {
				var response api.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.expectedError, response.Error)
			} else {
				var response api.CreateReviewResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.NotEmpty(t, response.ReviewID)
				assert.Equal(t, "PENDING", response.Status)
				assert.Equal(t, "Review initiated successfully", response.Message)
			}

			service.AssertExpectations(t)
		})
	}
}

func TestGetReview(t *testing.T) {
	score := 82.0
	completed := &domain.Review{
		ReviewID:     "rev-1",
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:       domain.ReviewStatusCompleted,
		AWSAccountID: "123456789012",
		Region:       "us-east-1",
		Pillars:      []domain.Pillar{domain.PillarSecurity},
		Findings: []domain.Finding{
			{ID: "s3-encryption-open-bucket", Severity: domain.SeverityHigh},
		},
		Score: &score,
	}

	tests := []struct {
		name           string
		reviewID       string
		setupMock      func(*mockService)
		expectedStatus int
		verify         func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:     "successful response",
			reviewID: "rev-1",
			setupMock: func(m *mockService) {
				m.On("Get", mock.Anything, "rev-1").Return(completed, nil)
			},
			expectedStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var response api.Review
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, "rev-1", response.ReviewID)
				assert.Equal(t, "COMPLETED", response.Status)
				require.Len(t, response.Findings, 1)
				assert.Equal(t, "s3-encryption-open-bucket", response.Findings[0].ID)
				require.NotNil(t, response.Score)
				assert.Equal(t, 82.0, *response.Score)
			},
		},
		{
			name:     "not found",
			reviewID: "missing",
			setupMock: func(m *mockService) {
				m.On("Get", mock.Anything, "missing").
					Return(nil, &domain.NotFoundError{ReviewID: "missing"})
			},
			expectedStatus: http.StatusNotFound,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var response api.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, "Review not found", response.Error)
			},
		},
		{
			name:     "store failure",
			reviewID: "rev-1",
			setupMock: func(m *mockService) {
				m.On("Get", mock.Anything, "rev-1").Return(nil, fmt.Errorf("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var response api.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, "Failed to get review", response.Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setupMock(service)
			handler := NewHandler(service)

			req := httptest.NewRequest("GET", "/reviews/"+tt.reviewID, nil)
			rec := httptest.NewRecorder()

			// Set up chi context with URL parameters
			routeCtx := chi.NewRouteContext()
			routeCtx.URLParams.Add("reviewId", tt.reviewID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

			handler.GetReview(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.verify(t, rec)
			service.AssertExpectations(t)
		})
	}
}

func TestListReviews(t *testing.T) {
	t.Run("successful response with next token", func(t *testing.T) {
		service := new(mockService)
		service.On("List", mock.Anything, 2, "cursor-in").Return([]domain.Review{
			{ReviewID: "rev-2", Status: domain.ReviewStatusCompleted},
			{ReviewID: "rev-1", Status: domain.ReviewStatusPending},
		}, "cursor-out", nil)

		handler := NewHandler(service)
		req := httptest.NewRequest("GET", "/reviews?limit=2&nextToken=cursor-in", nil)
		rec := httptest.NewRecorder()

		handler.ListReviews(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response api.ReviewList
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 2, response.Count)
		require.Len(t, response.Items, 2)
		assert.Equal(t, "rev-2", response.Items[0].ReviewID)
		assert.Equal(t, "cursor-out", response.NextToken)
		service.AssertExpectations(t)
	})

	t.Run("default limit applied", func(t *testing.T) {
		service := new(mockService)
		service.On("List", mock.Anything, defaultLimit, "").Return([]domain.Review{}, "", nil)

		handler := NewHandler(service)
		req := httptest.NewRequest("GET", "/reviews", nil)
		rec := httptest.NewRecorder()

		handler.ListReviews(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("invalid limit rejected", func(t *testing.T) {
		for _, limit := range []string{"abc", "0", "-5"} {
			service := new(mockService)
			handler := NewHandler(service)
			req := httptest.NewRequest("GET", "/reviews?limit="+limit, nil)
			rec := httptest.NewRecorder()

			handler.ListReviews(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			service.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		service := new(mockService)
		service.On("List", mock.Anything, defaultLimit, "").Return(nil, "", fmt.Errorf("connection reset"))

		handler := NewHandler(service)
		req := httptest.NewRequest("GET", "/reviews", nil)
		rec := httptest.NewRecorder()

		handler.ListReviews(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
