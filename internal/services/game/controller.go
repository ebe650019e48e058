// Package game implements the session lifecycle engine.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/mpetrie/geohunt/internal/dependencies/clock"
	"github.com/mpetrie/geohunt/internal/dependencies/random"
	"github.com/mpetrie/geohunt/internal/model"
	"github.com/mpetrie/geohunt/internal/services/solver"
	"github.com/mpetrie/geohunt/internal/storage"
)

// gameIDLength matches 10 random bytes rendered as hex
const (
	gameIDLength   = 20
	gameIDAlphabet = "0123456789abcdef"
)

// NewGameResult is the caller-visible outcome of session creation.
// The solution point is deliberately not part of it.
type NewGameResult struct {
	GameID    model.GameID
	StartTime time.Time
}

// SubmitResult is returned on submission so the caller can score the guess
type SubmitResult struct {
	SolPos  model.Point
	EndTime time.Time
}

// Controller manages the game session state machine
type Controller struct {
	storage storage.Storage
	solver  *solver.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new game session controller
func NewController(
	storage storage.Storage,
	solver *solver.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		solver:  solver,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// NewGame creates a session: it resolves a solution point with usable
// imagery within radiusLimit meters of startPos, persists the record and
// returns only the session handle and start time.
func (c *Controller) NewGame(
	ctx context.Context,
	groupID model.GroupID,
	startPos model.Point,
	radiusLimit float64,
	timeLimit int,
	gameType model.GameType,
) (NewGameResult, error) {
	if !startPos.Valid() || radiusLimit <= 0 {
		return NewGameResult{}, model.ErrInvalidGameParams
	}
	if !gameType.Valid() {
		return NewGameResult{}, model.ErrInvalidGameParams
	}
	if gameType == model.GameTypeTimed && timeLimit <= 0 {
		return NewGameResult{}, model.ErrInvalidGameParams
	}

	solPos, err := c.solver.Resolve(ctx, startPos, radiusLimit)
	if err != nil {
		return NewGameResult{}, err
	}

	now := c.clock.Now()
	gameID := model.GameID(c.random.String(gameIDLength, gameIDAlphabet))

	session := &model.GameSession{
		ID:          gameID,
		GroupID:     groupID,
		StartPos:    startPos,
		SolPos:      solPos,
		StartTime:   now,
		RadiusLimit: radiusLimit,
		TimeLimit:   timeLimit,
		Type:        gameType,
	}

	if err := c.storage.CreateGame(ctx, session); err != nil {
		c.logger.Error("failed to persist game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return NewGameResult{}, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("group_id", string(groupID)),
		slog.String("game_type", string(gameType)),
		slog.Float64("radius_limit", radiusLimit),
	)

	return NewGameResult{GameID: gameID, StartTime: now}, nil
}

// ListGames returns the visibility-filtered sessions owned by a group
func (c *Controller) ListGames(ctx context.Context, groupID model.GroupID) ([]model.GameStats, error) {
	games, err := c.storage.ListGamesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	stats := make([]model.GameStats, 0, len(games))
	for _, g := range games {
		stats = append(stats, g.Stats(now))
	}
	return stats, nil
}

// SubmitGame records the player's guess and ends the session. It is the
// one operation that reveals the solution regardless of window state,
// because submission inherently ends play.
//
// Two racing submissions can both pass the checks below before either
// writes; the store's atomic record write makes that last-write-wins,
// which is accepted for a single player's session.
func (c *Controller) SubmitGame(ctx context.Context, gameID model.GameID, endPos model.Point) (SubmitResult, error) {
	if !endPos.Valid() {
		return SubmitResult{}, model.ErrInvalidGameParams
	}

	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return SubmitResult{}, err
	}

	now := c.clock.Now()
	if g.Terminal() {
		return SubmitResult{}, model.ErrGameAlreadyEnded
	}
	if !g.InWindow(now) {
		return SubmitResult{}, model.ErrGameExpired
	}

	pos := endPos
	end := now
	g.EndPos = &pos
	g.EndTime = &end

	if err := c.storage.UpdateGame(ctx, g); err != nil {
		return SubmitResult{}, err
	}

	c.logger.Info("game submitted",
		slog.String("game_id", string(gameID)),
		slog.String("group_id", string(g.GroupID)),
	)

	return SubmitResult{SolPos: g.SolPos, EndTime: end}, nil
}

// QuitGame deletes a session without penalty. It is only an escape hatch
// for immediate mistakes: the request must arrive within the grace period
// after creation, and the session must still be in its window.
func (c *Controller) QuitGame(ctx context.Context, gameID model.GameID) error {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	if g.Terminal() {
		return model.ErrGameAlreadyEnded
	}
	if !g.InWindow(now) {
		return model.ErrGameExpired
	}
	if !g.InQuitWindow(now) {
		return model.ErrQuitWindowClosed
	}

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game quit",
		slog.String("game_id", string(gameID)),
		slog.String("group_id", string(g.GroupID)),
	)
	return nil
}

// AuthorizeImage authorizes disclosure of the solution's imagery while
// the session is in its window, returning the solution point for the
// caller to request an image stream from the provider.
func (c *Controller) AuthorizeImage(ctx context.Context, gameID model.GameID) (model.Point, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.Point{}, err
	}

	now := c.clock.Now()
	if g.Terminal() {
		return model.Point{}, model.ErrGameAlreadyEnded
	}
	if !g.InWindow(now) {
		return model.Point{}, model.ErrGameExpired
	}

	return g.SolPos, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	NewGame(ctx context.Context, groupID model.GroupID, startPos model.Point, radiusLimit float64, timeLimit int, gameType model.GameType) (NewGameResult, error)
	ListGames(ctx context.Context, groupID model.GroupID) ([]model.GameStats, error)
	SubmitGame(ctx context.Context, gameID model.GameID, endPos model.Point) (SubmitResult, error)
	QuitGame(ctx context.Context, gameID model.GameID) error
	AuthorizeImage(ctx context.Context, gameID model.GameID) (model.Point, error)
}

var _ ControllerInterface = (*Controller)(nil)
