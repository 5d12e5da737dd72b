package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/integrations/affiliate"
	"shoppergpt-backend/internal/models"
)

// ProductSearcher is the slice of the affiliate manager the recommendation
// engine needs.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]affiliate.Product, error)
}

// RecommendationService generates product recommendations for a user and
// query. Placeholder implementation: it delegates to the affiliate manager's
// dummy search and performs no ranking. A real engine would rank candidates
// against the user profile (style, budget, brands) and history.
type RecommendationService struct {
	searcher ProductSearcher
	logger   *zap.Logger
}

func NewRecommendationService(searcher ProductSearcher, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{searcher: searcher, logger: logger}
}

// Recommend returns up to limit suggested products for the query.
func (s *RecommendationService) Recommend(ctx context.Context, user *models.User, query string, limit int) ([]models.RecommendedProduct, error) {
	s.logger.Info("generating recommendations",
		zap.Int64("user_id", user.ID), zap.String("query", query), zap.Int("limit", limit))

	found, err := s.searcher.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching affiliate products: %w", err)
	}

	recommendations := make([]models.RecommendedProduct, 0, len(found))
	for _, p := range found {
		recommendations = append(recommendations, models.RecommendedProduct{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			ImageURL:      p.ImageURL,
			AffiliateLink: p.TrackingLink,
			Description:   p.Description,
		})
	}
	return recommendations, nil
}
