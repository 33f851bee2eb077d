package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

// PutProfile creates or fully replaces a user's interest profile.
// A profile row exists even when the interest set is empty, so "no interests"
// and "no profile" stay distinguishable.
func (s *SQLiteStore) PutProfile(ctx context.Context, profile *models.Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("profile user ID required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO profiles (user_id) VALUES (?)",
		profile.UserID,
	); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM profile_interests WHERE user_id = ?",
		profile.UserID,
	); err != nil {
		return fmt.Errorf("failed to clear profile interests: %w", err)
	}

	for _, tag := range profile.Interests {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO profile_interests (user_id, tag) VALUES (?, ?)",
			profile.UserID, tag,
		); err != nil {
			return fmt.Errorf("failed to insert profile interest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetProfile retrieves a user's interest profile.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var exists string
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id FROM profiles WHERE user_id = ?",
		userID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, storage.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM profile_interests WHERE user_id = ? ORDER BY tag",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile interests: %w", err)
	}
	defer rows.Close()

	profile := &models.Profile{UserID: userID}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan profile interest: %w", err)
		}
		profile.Interests = append(profile.Interests, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profile interests: %w", err)
	}

	return profile, nil
}
