package adapters

import (
	"time"

	"github.com/de-tools/arch-atlas/pkg/models/api"
	"github.com/de-tools/arch-atlas/pkg/models/domain"
	"github.com/de-tools/arch-atlas/pkg/models/store"
)

func MapPillarsDomainToStrings(pillars []domain.Pillar) []string {
	res := make([]string, 0, len(pillars))
	for _, p := range pillars {
		res = append(res, string(p))
	}
	return res
}

func MapStringsToPillarsDomain(pillars []string) []domain.Pillar {
	res := make([]domain.Pillar, 0, len(pillars))
	for _, p := range pillars {
		res = append(res, domain.Pillar(p))
	}
	return res
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		ID:          f.ID,
		Pillar:      f.Pillar,
		Title:       f.Title,
		Description: f.Description,
		Severity:    string(f.Severity),
		ResourceArn: f.ResourceArn,
		Service:     f.Service,
	}
}

func MapRecommendationDomainToApi(r domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		ID:                  r.ID,
		Title:               r.Title,
		Description:         r.Description,
		Priority:            r.Priority,
		Effort:              r.Effort,
		ImplementationGuide: r.ImplementationGuide,
	}
}

func MapReviewDomainToApi(r domain.Review) api.Review {
	res := api.Review{
		ReviewID:     r.ReviewID,
		Timestamp:    r.Timestamp.UTC().Format(time.RFC3339Nano),
		Status:       string(r.Status),
		AWSAccountID: r.AWSAccountID,
		Region:       r.Region,
		Pillars:      MapPillarsDomainToStrings(r.Pillars),
		Score:        r.Score,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, MapFindingDomainToApi(f))
	}
	for _, rec := range r.Recommendations {
		res.Recommendations = append(res.Recommendations, MapRecommendationDomainToApi(rec))
	}
	return res
}

func MapReviewDomainToStore(r domain.Review) store.Review {
	res := store.Review{
		ReviewID:     r.ReviewID,
		Timestamp:    r.Timestamp,
		Status:       string(r.Status),
		AWSAccountID: r.AWSAccountID,
		Region:       r.Region,
		Pillars:      MapPillarsDomainToStrings(r.Pillars),
		Score:        r.Score,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, store.Finding(MapFindingDomainToApi(f)))
	}
	for _, rec := range r.Recommendations {
		res.Recommendations = append(res.Recommendations, store.Recommendation(MapRecommendationDomainToApi(rec)))
	}
	return res
}

func MapReviewStoreToDomain(r *store.Review) *domain.Review {
	if r == nil {
		return nil
	}

	res := &domain.Review{
		ReviewID:     r.ReviewID,
		Timestamp:    r.Timestamp,
		Status:       domain.ReviewStatus(r.Status),
		AWSAccountID: r.AWSAccountID,
		Region:       r.Region,
		Pillars:      MapStringsToPillarsDomain(r.Pillars),
		Score:        r.Score,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, domain.Finding{
			ID:          f.ID,
			Pillar:      f.Pillar,
			Title:       f.Title,
			Description: f.Description,
			Severity:    domain.Severity(f.Severity),
			ResourceArn: f.ResourceArn,
			Service:     f.Service,
		})
	}
	for _, rec := range r.Recommendations {
		res.Recommendations = append(res.Recommendations, domain.Recommendation(rec))
	}
	return res
}
