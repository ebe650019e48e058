package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GroupID identifies the owner of a set of game sessions.
// It is either derived from a registered user or the anonymous group.
type GroupID string

// GroupAnonymous owns sessions created without authentication
const GroupAnonymous GroupID = "anonymous"

// GroupForUser returns the group identity for a registered user
func GroupForUser(username string) GroupID {
	return GroupID("user-" + username)
}

// GameType selects the time-window rule for a session
type GameType string

const (
	// GameTypeTimed sessions close once the time limit elapses
	GameTypeTimed GameType = "timed"
	// GameTypeCompletion sessions stay open until submitted
	GameTypeCompletion GameType = "completion"
)

// Valid reports whether the game type is a known variant
func (t GameType) Valid() bool {
	return t == GameTypeTimed || t == GameTypeCompletion
}

// QuitGracePeriod is how long after creation a no-penalty quit is allowed
const QuitGracePeriod = 20 * time.Second

// GameSession is one instance of the guessing game.
// EndPos and EndTime are set together on submission and never otherwise;
// all other fields are immutable after creation.
type GameSession struct {
	ID      GameID
	GroupID GroupID

	StartPos Point
	SolPos   Point
	EndPos   *Point

	StartTime time.Time
	EndTime   *time.Time

	RadiusLimit float64 // meters between StartPos and SolPos
	TimeLimit   int     // minutes the session stays open; ignored for completion games
	Type        GameType
}

// Terminal reports whether the session has been submitted
func (g *GameSession) Terminal() bool {
	return g.EndTime != nil
}

// Deadline returns the submission cutoff for timed sessions
func (g *GameSession) Deadline() time.Time {
	return g.StartTime.Add(time.Duration(g.TimeLimit) * time.Minute)
}

// InWindow reports whether the session accepts submission, quitting
// or image disclosure at the given time. Completion games never expire
// by elapsed time but close once terminal; timed games additionally
// require the deadline not to have passed.
func (g *GameSession) InWindow(now time.Time) bool {
	if g.Terminal() {
		return false
	}
	if g.Type == GameTypeCompletion {
		return true
	}
	return now.Before(g.Deadline())
}

// InQuitWindow reports whether the quit grace period is still open
func (g *GameSession) InQuitWindow(now time.Time) bool {
	return now.Before(g.StartTime.Add(QuitGracePeriod))
}

// GameStats is the externally visible view of a session.
// Fields the viewer is not yet allowed to see are nil.
type GameStats struct {
	ID          GameID
	GroupID     GroupID
	StartPos    Point
	SolPos      *Point
	EndPos      *Point
	StartTime   time.Time
	EndTime     *time.Time
	RadiusLimit float64
	TimeLimit   int
	Type        GameType
}

// Stats applies the visibility filter: an unsubmitted session never
// shows an end position, and hides the solution while play is still
// inside its time window. Submitted sessions disclose everything.
func (g *GameSession) Stats(now time.Time) GameStats {
	stats := GameStats{
		ID:          g.ID,
		GroupID:     g.GroupID,
		StartPos:    g.StartPos,
		StartTime:   g.StartTime,
		RadiusLimit: g.RadiusLimit,
		TimeLimit:   g.TimeLimit,
		Type:        g.Type,
	}

	if g.Terminal() {
		stats.EndPos = g.EndPos
		stats.EndTime = g.EndTime
		sol := g.SolPos
		stats.SolPos = &sol
		return stats
	}

	if !g.InWindow(now) {
		// Expired without submission: the answer is revealed, the guess never happened
		sol := g.SolPos
		stats.SolPos = &sol
	}
	return stats
}
