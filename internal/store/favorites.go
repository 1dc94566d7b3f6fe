package store

import (
	"context"
	"fmt"
)

// Favourite reports hang off the local user record; the reports themselves
// live with the portal backend, so only their ids are kept here.

func (r *UserRepository) AddFavorite(ctx context.Context, userID, reportID string) error {
	query := "INSERT IGNORE INTO user_favorites (user_id, report_id) VALUES (?, ?)"
	if _, err := r.db.ExecContext(ctx, query, userID, reportID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, reportID string) error {
	query := "DELETE FROM user_favorites WHERE user_id = ? AND report_id = ?"
	if _, err := r.db.ExecContext(ctx, query, userID, reportID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *UserRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	query := "SELECT report_id FROM user_favorites WHERE user_id = ? ORDER BY report_id"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	reportIDs := []string{}
	for rows.Next() {
		var reportID string
		if err := rows.Scan(&reportID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		reportIDs = append(reportIDs, reportID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}

	return reportIDs, nil
}
