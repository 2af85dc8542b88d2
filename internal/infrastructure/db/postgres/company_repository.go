package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

const companyColumns = `id, name, logo, industry, size, location, rating, reviews, description,
	active_projects, total_hires, verified, skills, created_at`

// CompanyRepository reads the companies table.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func (r *CompanyRepository) List(ctx context.Context, f ports.CompanyFilter) ([]domain.Company, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := companyWhere(f)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM companies"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM companies%s ORDER BY created_at DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d",
		companyColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query companies: %w", err)
	}

	companies, err := pgx.CollectRows(rows, scanCompany)
	if err != nil {
		return nil, 0, fmt.Errorf("scan companies: %w", err)
	}
	return companies, total, nil
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM companies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}

// Ping reports whether the pool can reach the database.
func (r *CompanyRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// companyWhere builds the WHERE clause for f. The returned clause is either
// empty or starts with a space.
func companyWhere(f ports.CompanyFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Industry != "" {
		args = append(args, f.Industry)
		conds = append(conds, fmt.Sprintf("industry = $%d", len(args)))
	}
	if f.Size != "" {
		args = append(args, f.Size)
		conds = append(conds, fmt.Sprintf("size = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func scanCompany(row pgx.CollectableRow) (domain.Company, error) {
	var (
		c         domain.Company
		skills    []string
		createdAt *time.Time
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Logo, &c.Industry, &c.Size, &c.Location, &c.Rating, &c.Reviews, &c.Description,
		&c.ActiveProjects, &c.TotalHires, &c.Verified, &skills, &createdAt,
	)
	if err != nil {
		return domain.Company{}, err
	}
	if skills == nil {
		skills = []string{}
	}
	c.Skills = skills
	c.CreatedAt = createdAt
	return c, nil
}
