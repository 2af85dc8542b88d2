package ports

import (
	"context"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// CompanyPage is one page of the company directory plus the total match count.
type CompanyPage struct {
	Data  []domain.Company
	Count int64
}

type CompanyService interface {
	GetCompanies(ctx context.Context, filter CompanyFilter) (*CompanyPage, error)
	TotalCount(ctx context.Context) (int64, error)
}
