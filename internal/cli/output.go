package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameCreated:
		o.printGameCreated(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case GameList:
		o.printGameList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Point response type (matches API)
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Point) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Latitude, p.Longitude)
}

// User response type
type User struct {
	Username string `json:"username"`
	GroupID  string `json:"group_id"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// GameCreated response type
type GameCreated struct {
	GameID    string    `json:"game_id"`
	StartTime time.Time `json:"start_time"`
}

// SubmitResult response type
type SubmitResult struct {
	SolPos  Point     `json:"sol_pos"`
	EndTime time.Time `json:"end_time"`
}

// GameStats response type
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

// GameList response type
type GameList struct {
	Games []GameStats `json:"games"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s\n", u.Username)
	fmt.Printf("Group: %s\n", u.GroupID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameCreated(g GameCreated) {
	fmt.Printf("Game: %s\n", g.GameID)
	fmt.Printf("Started: %s\n", g.StartTime.Format(time.RFC3339))
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Printf("Solution: %s\n", r.SolPos)
	fmt.Printf("Ended: %s\n", r.EndTime.Format(time.RFC3339))
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		fmt.Println("No games")
		return
	}

	fmt.Printf("Games (%d):\n", len(l.Games))
	for _, g := range l.Games {
		status := "open"
		if g.EndTime != nil {
			status = "ended " + g.EndTime.Format(time.RFC3339)
		}
		fmt.Printf("  %s [%s] started %s (%s)\n",
			g.GameID, g.GameType, g.StartTime.Format(time.RFC3339), status)
		fmt.Printf("    start: %s  radius: %.0fm", g.StartPos, g.RadiusLimit)
		if g.GameType == "timed" {
			fmt.Printf("  limit: %dm", g.TimeLimit)
		}
		fmt.Println()
		if g.SolPos != nil {
			fmt.Printf("    solution: %s\n", *g.SolPos)
		}
		if g.EndPos != nil {
			fmt.Printf("    guess: %s\n", *g.EndPos)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
