// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
)

// Sentinel errors for not-found conditions. The recommendation engine treats
// ErrGroupNotFound and ErrProfileNotFound as benign (empty results), never as
// failures.
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrSuggestionsNotFound = errors.New("suggestion record not found")
)

// Store defines the interface for What2do data storage.
// This abstraction allows swapping storage backends (SQLite here, the hosted
// document store in production) without changing the service layer, and keeps
// the recommendation engine free of any global data-store handle.
type Store interface {
	// CreateGroup persists a new group. The group.ID field is populated by
	// the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	// Returns ErrGroupNotFound if no such group exists.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// UpdateGroup replaces a group's name, members and city.
	// Returns ErrGroupNotFound if no such group exists.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// PutProfile creates or fully replaces a user's interest profile.
	PutProfile(ctx context.Context, profile *models.Profile) error

	// GetProfile retrieves a user's interest profile.
	// Returns ErrProfileNotFound if the user has no profile yet.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)

	// CreateActivity persists a new catalog entry. The activity.ID field is
	// populated by the store when empty.
	CreateActivity(ctx context.Context, activity *models.Activity) error

	// GetActivity retrieves a catalog entry by ID.
	// Returns ErrActivityNotFound if no such activity exists.
	GetActivity(ctx context.Context, activityID string) (*models.Activity, error)

	// ListActivities retrieves the full activity catalog.
	ListActivities(ctx context.Context) ([]models.Activity, error)

	// GetSuggestionRecord retrieves the persisted recommendation run for a
	// group. Returns ErrSuggestionsNotFound if the group has never been
	// scored.
	GetSuggestionRecord(ctx context.Context, groupID string) (*models.SuggestionRecord, error)

	// PutSuggestionRecord fully overwrites a group's suggestion record.
	// Last writer wins under concurrent runs.
	PutSuggestionRecord(ctx context.Context, record *models.SuggestionRecord) error

	// Close releases any resources held by the store.
	Close() error
}
