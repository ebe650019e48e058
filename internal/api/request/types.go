package request

// Point is a latitude/longitude pair in request bodies
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewGameRequest is the request body for creating a game session
type NewGameRequest struct {
	StartPos    Point   `json:"start_pos"`
	RadiusLimit float64 `json:"radius_limit"`
	TimeLimit   int     `json:"time_limit,omitempty"`
	GameType    string  `json:"game_type"`
}

// SubmitGameRequest is the request body for submitting a guess
type SubmitGameRequest struct {
	EndPos Point `json:"end_pos"`
}
