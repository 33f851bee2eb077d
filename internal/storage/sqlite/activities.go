package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

// CreateActivity persists a new catalog entry and its interest tags.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO activities (id, title, description, category, price, location, image, is_new, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Title, activity.Description, activity.Category,
		activity.Price, activity.Location, activity.Image, activity.IsNew, activity.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	for _, tag := range activity.Interests {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO activity_interests (activity_id, tag) VALUES (?, ?)",
			activity.ID, tag,
		); err != nil {
			return fmt.Errorf("failed to insert activity interest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetActivity retrieves a catalog entry by ID, including its interest tags.
func (s *SQLiteStore) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	activity := &models.Activity{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, category, price, location, image, is_new, date
		 FROM activities WHERE id = ?`,
		activityID,
	).Scan(&activity.ID, &activity.Title, &activity.Description, &activity.Category,
		&activity.Price, &activity.Location, &activity.Image, &activity.IsNew, &activity.Date)
	if err == sql.ErrNoRows {
		return nil, storage.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	tags, err := s.activityInterests(ctx, activityID)
	if err != nil {
		return nil, err
	}
	activity.Interests = tags

	return activity, nil
}

// ListActivities retrieves the full activity catalog ordered by ID, so
// iteration order is deterministic across runs.
func (s *SQLiteStore) ListActivities(ctx context.Context) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, category, price, location, image, is_new, date
		 FROM activities ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Category,
			&a.Price, &a.Location, &a.Image, &a.IsNew, &a.Date); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	for i := range activities {
		tags, err := s.activityInterests(ctx, activities[i].ID)
		if err != nil {
			return nil, err
		}
		activities[i].Interests = tags
	}

	return activities, nil
}

func (s *SQLiteStore) activityInterests(ctx context.Context, activityID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM activity_interests WHERE activity_id = ? ORDER BY tag",
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity interests: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan activity interest: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity interests: %w", err)
	}

	return tags, nil
}
