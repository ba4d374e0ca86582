package repo

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/query"
)

var userSpec = query.Spec{
	Filterable:  map[string]string{"role": "role"},
	BoolFilter:  map[string]string{"is_active": "is_active"},
	Searchable:  []string{"first_name", "last_name", "email", "phone_number"},
	DateColumn:  "created_at",
	DefaultSort: "created_at DESC",
}

const userColumns = `id, role, first_name, last_name, email, phone_number, is_active, created_at`

func (r *AdminRepo) ListUsers(ctx context.Context, params url.Values, pages query.Pages) ([]domain.User, int, error) {
	c, err := userSpec.Build(params)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+c.WhereSQL(), c.Args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if !pages.InRange(total) {
		return []domain.User{}, total, nil
	}

	sql := `SELECT ` + userColumns + ` FROM users` + c.WhereSQL() +
		` ORDER BY ` + c.OrderBy + c.LimitOffset(pages.Limit(), pages.Offset())

	rows, err := r.db.Query(ctx, sql, c.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ActiveUsersByRole backs the driver/rider listings; soft-deleted users
// never appear here.
func (r *AdminRepo) ActiveUsersByRole(ctx context.Context, role string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *AdminRepo) UserStats(ctx context.Context) (*domain.UserStats, error) {
	stats := &domain.UserStats{ByRole: make(map[string]int)}

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active
		FROM users
	`).Scan(&stats.Total, &stats.Active)
	if err != nil {
		return nil, err
	}
	stats.Inactive = stats.Total - stats.Active

	rows, err := r.db.Query(ctx, `
		SELECT role, COUNT(*)
		FROM users
		GROUP BY role
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		stats.ByRole[role] = count
	}

	return stats, rows.Err()
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		err := rows.Scan(
			&u.ID,
			&u.Role,
			&u.FirstName,
			&u.LastName,
			&u.Email,
			&u.PhoneNumber,
			&u.IsActive,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
