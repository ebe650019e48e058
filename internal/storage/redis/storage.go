package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mpetrie/geohunt/internal/model"
	"github.com/mpetrie/geohunt/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// gameTTL returns the expiry for a session's keys. Anonymous games are
// garbage-collected; games owned by registered users are kept.
func (s *Storage) gameTTL(game *model.GameSession) time.Duration {
	if game.GroupID == model.GroupAnonymous {
		return s.cfg.AnonymousGameTTL
	}
	return 0
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.GameSession) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	ttl := s.gameTTL(game)

	// SETNX enforces id uniqueness at the store level
	created, err := s.client.SetNX(ctx, gameKey(game.ID), data, ttl).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrGameExists
	}

	indexKey := groupIndexKey(game.GroupID)
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, indexKey, string(game.ID))
	if ttl > 0 {
		pipe.Expire(ctx, indexKey, ttl) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.GameSession
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) UpdateGame(ctx context.Context, game *model.GameSession) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// SETXX so an update of a missing or expired record is reported
	updated, err := s.client.SetXX(ctx, gameKey(game.ID), data, redis.KeepTTL).Result()
	if err != nil {
		return err
	}
	if !updated {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	del := pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, groupIndexKey(game.GroupID), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) ListGamesByGroup(ctx context.Context, groupID model.GroupID) ([]*model.GameSession, error) {
	ids, err := s.client.SMembers(ctx, groupIndexKey(groupID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.GameSession, 0, len(values))
	for _, v := range values {
		// Index entries can outlive expired anonymous games
		str, ok := v.(string)
		if !ok {
			continue
		}
		var game model.GameSession
		if err := json.Unmarshal([]byte(str), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	return games, nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.Username), data, 0).Err()
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
