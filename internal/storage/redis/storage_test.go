package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mpetrie/geohunt/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.AnonymousGameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame(id model.GameID, group model.GroupID) *model.GameSession {
	return &model.GameSession{
		ID:          id,
		GroupID:     group,
		StartPos:    model.Point{Latitude: 51.5, Longitude: -0.12},
		SolPos:      model.Point{Latitude: 51.51, Longitude: -0.13},
		StartTime:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		RadiusLimit: 1000,
		TimeLimit:   10,
		Type:        model.GameTypeTimed,
	}
}

// Game tests

func (s *StorageSuite) TestCreateAndGetGame() {
	game := s.newGame("game-1", "user-alice")

	err := s.storage.CreateGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.GroupID, retrieved.GroupID)
	s.Equal(game.SolPos, retrieved.SolPos)
	s.Nil(retrieved.EndPos)
	s.Nil(retrieved.EndTime)
}

func (s *StorageSuite) TestCreateGameConflict() {
	game := s.newGame("game-1", "user-alice")
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	err := s.storage.CreateGame(s.ctx, s.newGame("game-1", "user-bob"))
	s.ErrorIs(err, model.ErrGameExists)

	// Original record is untouched
	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GroupID("user-alice"), retrieved.GroupID)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestUpdateGame() {
	game := s.newGame("game-1", "user-alice")
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	endPos := model.Point{Latitude: 51.49, Longitude: -0.1}
	endTime := game.StartTime.Add(5 * time.Minute)
	game.EndPos = &endPos
	game.EndTime = &endTime

	err := s.storage.UpdateGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.EndPos)
	s.Require().NotNil(retrieved.EndTime)
	s.Equal(endPos, *retrieved.EndPos)
	s.True(endTime.Equal(*retrieved.EndTime))
}

func (s *StorageSuite) TestUpdateGameNotFound() {
	err := s.storage.UpdateGame(s.ctx, s.newGame("missing", "user-alice"))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.newGame("game-1", "user-alice")
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.storage.ListGamesByGroup(s.ctx, "user-alice")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestDeleteGameNotFound() {
	err := s.storage.DeleteGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGamesByGroup() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("game-1", "user-alice")))
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("game-2", "user-alice")))
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("game-3", "user-bob")))

	games, err := s.storage.ListGamesByGroup(s.ctx, "user-alice")
	s.Require().NoError(err)
	s.Len(games, 2)

	ids := []model.GameID{games[0].ID, games[1].ID}
	s.Contains(ids, model.GameID("game-1"))
	s.Contains(ids, model.GameID("game-2"))
}

func (s *StorageSuite) TestListGamesByGroupEmpty() {
	games, err := s.storage.ListGamesByGroup(s.ctx, "user-nobody")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestAnonymousGameTTL() {
	anon := s.newGame("game-anon", model.GroupAnonymous)
	owned := s.newGame("game-owned", "user-alice")

	s.Require().NoError(s.storage.CreateGame(s.ctx, anon))
	s.Require().NoError(s.storage.CreateGame(s.ctx, owned))

	anonTTL := s.mini.TTL(gameKey(anon.ID))
	ownedTTL := s.mini.TTL(gameKey(owned.ID))

	s.True(anonTTL > 0, "anonymous game should have TTL")
	s.Equal(time.Duration(0), ownedTTL, "owned game should not have TTL")
}

func (s *StorageSuite) TestListSkipsExpiredAnonymousGames() {
	anon := s.newGame("game-anon", model.GroupAnonymous)
	s.Require().NoError(s.storage.CreateGame(s.ctx, anon))

	// Simulate the game key expiring while the index entry lingers
	s.mini.Del(gameKey(anon.ID))

	games, err := s.storage.ListGamesByGroup(s.ctx, model.GroupAnonymous)
	s.Require().NoError(err)
	s.Empty(games)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		Username:     "alice",
		PasswordHash: "bcrypt-hash",
		CreatedAt:    time.Now().UTC(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("bcrypt-hash", retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}
