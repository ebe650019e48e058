package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mpetrie/geohunt/internal/api/middleware"
	"github.com/mpetrie/geohunt/internal/api/request"
	"github.com/mpetrie/geohunt/internal/api/response"
	"github.com/mpetrie/geohunt/internal/model"
	"github.com/mpetrie/geohunt/internal/services/game"
	"github.com/mpetrie/geohunt/internal/streetview"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	provider       streetview.Provider
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, provider streetview.Provider) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		provider:       provider,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	groupID := middleware.GroupFromContext(r.Context())

	result, err := h.gameController.NewGame(
		r.Context(),
		groupID,
		model.Point{Latitude: req.StartPos.Latitude, Longitude: req.StartPos.Longitude},
		req.RadiusLimit,
		req.TimeLimit,
		model.GameType(req.GameType),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NewGameResponse{
		GameID:    string(result.GameID),
		StartTime: result.StartTime,
	})
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID := middleware.GroupFromContext(r.Context())

	stats, err := h.gameController.ListGames(r.Context(), groupID)
	if err != nil {
		WriteError(w, err)
		return
	}

	games := make([]response.GameStats, len(stats))
	for i, s := range stats {
		games[i] = response.GameStatsFromModel(s)
	}

	response.JSON(w, http.StatusOK, response.GameListResponse{Games: games})
}

// Submit handles POST /api/v1/games/{game_id}/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.SubmitGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.gameController.SubmitGame(
		r.Context(),
		gameID,
		model.Point{Latitude: req.EndPos.Latitude, Longitude: req.EndPos.Longitude},
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitGameResponse{
		SolPos:  response.PointFromModel(result.SolPos),
		EndTime: result.EndTime,
	})
}

// Quit handles POST /api/v1/games/{game_id}/quit
func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	if err := h.gameController.QuitGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Image handles GET /api/v1/games/{game_id}/image.
// It streams the solution's imagery without revealing its coordinates.
func (h *GameHandler) Image(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	heading := 0.0
	if raw := r.URL.Query().Get("heading"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, NewInvalidRequestError("heading must be a number"))
			return
		}
		heading = parsed
	}

	solPos, err := h.gameController.AuthorizeImage(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	body, err := h.provider.FetchImage(r.Context(), solPos, heading)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}
