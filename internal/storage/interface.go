package storage

import (
	"context"

	"github.com/mpetrie/geohunt/internal/model"
)

// Storage defines the interface for data persistence.
// It guarantees atomic single-record reads and writes; game rules
// (time windows, state transitions) are the session engine's concern.
type Storage interface {
	// Game operations
	//
	// CreateGame fails with model.ErrGameExists if the id is taken.
	// UpdateGame and DeleteGame fail with model.ErrGameNotFound if absent.
	CreateGame(ctx context.Context, game *model.GameSession) error
	GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error)
	UpdateGame(ctx context.Context, game *model.GameSession) error
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGamesByGroup(ctx context.Context, groupID model.GroupID) ([]*model.GameSession, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}
