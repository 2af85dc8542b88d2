package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// CompanyFilter carries the company directory query. Industry and Size equal
// to "" or "all" do not filter.
type CompanyFilter struct {
	Search   string
	Industry string
	Size     string
	Offset   int
	Limit    int
}

// CompanyRepository reads the company directory.
type CompanyRepository interface {
	// List returns one page of companies and the number of rows matching the
	// filter regardless of paging.
	List(ctx context.Context, filter CompanyFilter) ([]domain.Company, int64, error)
	Count(ctx context.Context) (int64, error)
}
