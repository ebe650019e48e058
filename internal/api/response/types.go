package response

import (
	"time"

	"github.com/mpetrie/geohunt/internal/model"
	"github.com/mpetrie/geohunt/internal/services/auth"
)

// Point is a latitude/longitude pair in API responses
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PointFromModel converts a model.Point to a response Point
func PointFromModel(p model.Point) Point {
	return Point{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

// pointPtrFromModel converts an optional model.Point
func pointPtrFromModel(p *model.Point) *Point {
	if p == nil {
		return nil
	}
	converted := PointFromModel(*p)
	return &converted
}

// User represents a user in API responses
type User struct {
	Username string `json:"username"`
	GroupID  string `json:"group_id"`
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User: User{
			Username: s.Username,
			GroupID:  string(s.GroupID),
		},
		SessionToken: s.Token,
	}
}

// NewGameResponse is the response after creating a game session
type NewGameResponse struct {
	GameID    string    `json:"game_id"`
	StartTime time.Time `json:"start_time"`
}

// SubmitGameResponse is the response after submitting a guess.
// It discloses the solution so the client can score the round.
type SubmitGameResponse struct {
	SolPos  Point     `json:"sol_pos"`
	EndTime time.Time `json:"end_time"`
}

// GameStats represents the visible state of a game session
type GameStats struct {
	GameID      string     `json:"game_id"`
	GroupID     string     `json:"group_id"`
	StartPos    Point      `json:"start_pos"`
	SolPos      *Point     `json:"sol_pos,omitempty"`
	EndPos      *Point     `json:"end_pos,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	RadiusLimit float64    `json:"radius_limit"`
	TimeLimit   int        `json:"time_limit,omitempty"`
	GameType    string     `json:"game_type"`
}

// GameStatsFromModel converts model.GameStats
func GameStatsFromModel(s model.GameStats) GameStats {
	return GameStats{
		GameID:      string(s.ID),
		GroupID:     string(s.GroupID),
		StartPos:    PointFromModel(s.StartPos),
		SolPos:      pointPtrFromModel(s.SolPos),
		EndPos:      pointPtrFromModel(s.EndPos),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		RadiusLimit: s.RadiusLimit,
		TimeLimit:   s.TimeLimit,
		GameType:    string(s.Type),
	}
}

// GameListResponse is the response for listing a group's games
type GameListResponse struct {
	Games []GameStats `json:"games"`
}
