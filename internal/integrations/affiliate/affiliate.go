// Package affiliate manages interactions with affiliate program APIs.
//
// This is an explicit placeholder: SearchProducts fabricates fixed dummy
// results and GenerateTrackingLink tags the URL without calling any platform.
// Real platform integrations (Amazon PA-API, Magalu Parceiros, AliExpress
// Portals) would slot in behind the same surface.
package affiliate

import (
	"context"
	"fmt"
	"strings"
)

// Product is one product entry as returned by an affiliate platform search.
type Product struct {
	ID           string
	Name         string
	Price        string
	ImageURL     string
	ProductURL   string
	TrackingLink string
	Description  string
}

// Manager fronts the affiliate platforms.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SearchProducts returns up to limit products matching the query. Dummy data
// only; prices are fixed BRL strings so the assistant never invents them.
func (m *Manager) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit <= 0 {
		return []Product{}, nil
	}

	slug := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(query), " ", "_"))
	if len(slug) > 24 {
		slug = slug[:24]
	}

	products := make([]Product, 0, limit)
	for i := 0; i < limit; i++ {
		productURL := fmt.Sprintf("#product_link_%d", i+1)
		products = append(products, Product{
			ID:           fmt.Sprintf("AFF_%s_%d", slug, i+1),
			Name:         fmt.Sprintf("Produto Sugerido %d", i+1),
			Price:        strings.Replace(fmt.Sprintf("R$ %.2f", 99.0+float64(i)*20), ".", ",", 1),
			ImageURL:     fmt.Sprintf("https://via.placeholder.com/150?text=Produto+%d", i+1),
			ProductURL:   productURL,
			TrackingLink: m.GenerateTrackingLink(productURL),
			Description:  fmt.Sprintf("Descrição do produto sugerido %d.", i+1),
		})
	}
	return products, nil
}

// GenerateTrackingLink produces an affiliate tracking link for a product URL.
// Placeholder: real platforms require per-platform link generation APIs.
func (m *Manager) GenerateTrackingLink(productURL string) string {
	return productURL + "#affiliate_tracked"
}
