package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

// PutSuggestionRecord fully overwrites a group's suggestion record.
// The write is a single transaction, so concurrent runs for the same group
// resolve to one complete record (last writer wins).
func (s *SQLiteStore) PutSuggestionRecord(ctx context.Context, record *models.SuggestionRecord) error {
	if record.GroupID == "" {
		return fmt.Errorf("suggestion record group ID required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM suggestion_records WHERE group_id = ?",
		record.GroupID,
	); err != nil {
		return fmt.Errorf("failed to clear suggestion record: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO suggestion_records (group_id, last_update) VALUES (?, ?)",
		record.GroupID, record.LastUpdate.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to insert suggestion record: %w", err)
	}

	for _, tag := range record.CommonInterests {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO suggestion_common_interests (group_id, tag) VALUES (?, ?)",
			record.GroupID, tag,
		); err != nil {
			return fmt.Errorf("failed to insert common interest: %w", err)
		}
	}

	for i, activityID := range record.SuggestedActivities {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO suggestion_items (group_id, position, activity_id, score) VALUES (?, ?, ?, ?)",
			record.GroupID, i, activityID, record.Scores[activityID],
		); err != nil {
			return fmt.Errorf("failed to insert suggestion item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSuggestionRecord retrieves the persisted recommendation run for a group.
func (s *SQLiteStore) GetSuggestionRecord(ctx context.Context, groupID string) (*models.SuggestionRecord, error) {
	var lastUpdate string
	err := s.db.QueryRowContext(ctx,
		"SELECT last_update FROM suggestion_records WHERE group_id = ?",
		groupID,
	).Scan(&lastUpdate)
	if err == sql.ErrNoRows {
		return nil, storage.ErrSuggestionsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion record: %w", err)
	}

	record := &models.SuggestionRecord{
		GroupID: groupID,
		Scores:  make(map[string]int),
	}
	record.LastUpdate, err = time.Parse(time.RFC3339, lastUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestion record timestamp: %w", err)
	}

	tagRows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM suggestion_common_interests WHERE group_id = ? ORDER BY tag",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get common interests: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag string
		if err := tagRows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan common interest: %w", err)
		}
		record.CommonInterests = append(record.CommonInterests, tag)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate common interests: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT activity_id, score FROM suggestion_items WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var activityID string
		var score int
		if err := itemRows.Scan(&activityID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion item: %w", err)
		}
		record.SuggestedActivities = append(record.SuggestedActivities, activityID)
		record.Scores[activityID] = score
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestion items: %w", err)
	}

	return record, nil
}
