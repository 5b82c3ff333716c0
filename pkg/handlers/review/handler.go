package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/arch-atlas/pkg/adapters"
	"github.com/de-tools/arch-atlas/pkg/models/api"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
	reviewsvc "github.com/de-tools/arch-atlas/pkg/services/review"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	serviceName  = "arch-atlas-api"
	defaultLimit = 20
)

type Handler struct {
	reviews reviewsvc.Service
}

func NewHandler(reviews reviewsvc.Service) *Handler {
	return &Handler{reviews: reviews}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, api.Health{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
	})
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	rec, err := h.reviews.Create(ctx, req.AWSAccountID, req.Region, req.Pillars)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(ctx, w, http.StatusBadRequest, ve.Field+" "+ve.Reason)
			return
		}
		logger.Error().Err(err).Msg("failed to create review")
		writeError(ctx, w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, api.CreateReviewResponse{
		ReviewID: rec.ReviewID,
		Status:   string(rec.Status),
		Message:  "Review initiated successfully",
	})
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	reviewID := chi.URLParam(r, "reviewId")

	rec, err := h.reviews.Get(ctx, reviewID)
	if err != nil {
		var nfe *domain.NotFoundError
		if errors.As(err, &nfe) {
			writeError(ctx, w, http.StatusNotFound, "Review not found")
			return
		}
		logger.Error().Err(err).Str("review_id", reviewID).Msg("failed to get review")
		writeError(ctx, w, http.StatusInternalServerError, "Failed to get review")
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapReviewDomainToApi(*rec))
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, nextToken, err := h.reviews.List(ctx, limit, r.URL.Query().Get("nextToken"))
	if err != nil {
		logger.Error().Err(err).Msg("failed to list reviews")
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	items := make([]api.Review, 0, len(records))
	for _, rec := range records {
		items = append(items, adapters.MapReviewDomainToApi(rec))
	}

	writeJSON(ctx, w, http.StatusOK, api.ReviewList{
		Items:     items,
		Count:     len(items),
		NextToken: nextToken,
	})
}
