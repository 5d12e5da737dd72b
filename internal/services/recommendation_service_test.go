package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/integrations/affiliate"
	"shoppergpt-backend/internal/models"
)

type fakeSearcher struct {
	products []affiliate.Product
	err      error
}

func (f *fakeSearcher) SearchProducts(ctx context.Context, query string, limit int) ([]affiliate.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func TestRecommend_MapsSearchResults(t *testing.T) {
	searcher := &fakeSearcher{products: []affiliate.Product{{
		ID:           "AFF_VESTIDO_1",
		Name:         "Vestido Midi",
		Price:        "R$ 189,90",
		ImageURL:     "https://img.example/1.jpg",
		ProductURL:   "https://shop.example/1",
		TrackingLink: "https://shop.example/1#affiliate_tracked",
		Description:  "Vestido midi floral.",
	}}}
	svc := NewRecommendationService(searcher, zap.NewNop())

	user := &models.User{ID: 1, WhatsAppID: "5511999990000"}
	got, err := svc.Recommend(context.Background(), user, "vestido", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recommendation count = %d, want 1", len(got))
	}

	want := models.RecommendedProduct{
		ID:            "AFF_VESTIDO_1",
		Name:          "Vestido Midi",
		Price:         "R$ 189,90",
		ImageURL:      "https://img.example/1.jpg",
		AffiliateLink: "https://shop.example/1#affiliate_tracked",
		Description:   "Vestido midi floral.",
	}
	if got[0] != want {
		t.Errorf("recommendation = %+v, want %+v", got[0], want)
	}
}

func TestRecommend_SearchFailure(t *testing.T) {
	svc := NewRecommendationService(&fakeSearcher{err: errBoom}, zap.NewNop())
	user := &models.User{ID: 1}

	if _, err := svc.Recommend(context.Background(), user, "bolsa", 2); err == nil {
		t.Fatal("Recommend() error = nil, want wrapped search failure")
	}
}
