package store

import (
	"context"
	"fmt"

	"github.com/mert-izgahi/loomis-app-sub001/internal/search"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// ListParams is the pagination/sort/filter surface shared by the list
// endpoints. Sort keys go through a whitelist; anything unknown falls back to
// the default ordering instead of reaching the query.
type ListParams struct {
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
	SortBy string `form:"sort_by"`
	Desc   bool   `form:"desc"`
	Search string `form:"search"`
}

var userSortColumns = map[string]string{
	"name":       "last_name",
	"email":      "email",
	"role":       "role",
	"created":    "created_at",
	"last_login": "last_login_at",
}

func (p *ListParams) normalize() {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

func buildUserListQuery(params ListParams) (string, []any) {
	params.normalize()

	query := "SELECT " + userColumns + " FROM users"
	args := []any{}

	if params.Search != "" {
		query += " WHERE search_name LIKE ?"
		args = append(args, "%"+search.Fold(params.Search)+"%")
	}

	column, ok := userSortColumns[params.SortBy]
	if !ok {
		column = "last_name"
	}
	direction := "ASC"
	if params.Desc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT ? OFFSET ?", column, direction)
	args = append(args, params.Limit, params.Offset)

	return query, args
}

func (r *UserRepository) List(ctx context.Context, params ListParams) ([]User, error) {
	query, args := buildUserListQuery(params)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query (%s): %w", query, err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}
