package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

const (
	defaultCompanyPageSize = 6
	maxCompanyPageSize     = 50
)

// CompanyService serves the company directory. A nil repository means the
// directory database is not configured and every call reports ErrUnavailable.
type CompanyService struct {
	repo ports.CompanyRepository
}

func NewCompanyService(repo ports.CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) GetCompanies(ctx context.Context, filter ports.CompanyFilter) (*ports.CompanyPage, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: company directory not configured", domain.ErrUnavailable)
	}

	companies, total, err := s.repo.List(ctx, normalizeCompanyFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return &ports.CompanyPage{Data: companies, Count: total}, nil
}

func (s *CompanyService) TotalCount(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, fmt.Errorf("%w: company directory not configured", domain.ErrUnavailable)
	}
	return s.repo.Count(ctx)
}

func normalizeCompanyFilter(f ports.CompanyFilter) ports.CompanyFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Industry = dropAll(f.Industry)
	f.Size = dropAll(f.Size)
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch {
	case f.Limit <= 0:
		f.Limit = defaultCompanyPageSize
	case f.Limit > maxCompanyPageSize:
		f.Limit = maxCompanyPageSize
	}
	return f
}

// dropAll maps the "all" sentinel used by the directory filters to no filter.
func dropAll(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
