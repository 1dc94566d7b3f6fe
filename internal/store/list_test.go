package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserListQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		query, args := buildUserListQuery(ListParams{})
		assert.Contains(t, query, "ORDER BY last_name ASC")
		assert.NotContains(t, query, "WHERE")
		assert.Equal(t, []any{defaultPageSize, 0}, args)
	})

	t.Run("unknown sort key falls back to the default column", func(t *testing.T) {
		query, _ := buildUserListQuery(ListParams{SortBy: "id; DROP TABLE users"})
		assert.Contains(t, query, "ORDER BY last_name ASC")
	})

	t.Run("whitelisted sort key descending", func(t *testing.T) {
		query, _ := buildUserListQuery(ListParams{SortBy: "last_login", Desc: true})
		assert.Contains(t, query, "ORDER BY last_login_at DESC")
	})

	t.Run("search term is folded", func(t *testing.T) {
		query, args := buildUserListQuery(ListParams{Search: "Gülşah"})
		assert.Contains(t, query, "WHERE search_name LIKE ?")
		assert.Equal(t, "%gulsah%", args[0])
	})

	t.Run("limit is clamped", func(t *testing.T) {
		_, args := buildUserListQuery(ListParams{Limit: 10000, Offset: -5})
		assert.Equal(t, []any{maxPageSize, 0}, args)
	})
}
