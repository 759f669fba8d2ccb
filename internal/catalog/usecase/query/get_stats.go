package query

import (
	"fmt"

	"github.com/iothub/storefront/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats holds aggregate product counts
type CatalogStats struct {
	TotalProducts   int64 `json:"total_products"`
	PhysicalCount   int64 `json:"physical_count"`
	DigitalProjects int64 `json:"digital_projects"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(GetStatsQuery) (*CatalogStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	physical, err := h.repo.CountByType(domain.TypePhysical)
	if err != nil {
		return nil, fmt.Errorf("failed to count physical products: %w", err)
	}

	digital, err := h.repo.CountByType(domain.TypeDigitalProject)
	if err != nil {
		return nil, fmt.Errorf("failed to count digital projects: %w", err)
	}

	return &CatalogStats{
		TotalProducts:   total,
		PhysicalCount:   physical,
		DigitalProjects: digital,
	}, nil
}
