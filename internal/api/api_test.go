package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrie/geohunt/internal/api"
	"github.com/mpetrie/geohunt/internal/api/response"
	"github.com/mpetrie/geohunt/internal/factory"
	"github.com/mpetrie/geohunt/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Provider:       app.FakeProvider,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) register(t *testing.T, username, password string) response.AuthResponse {
	t.Helper()

	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func (ts *testServer) createGame(t *testing.T, token string, timeLimit int, gameType string) response.NewGameResponse {
	t.Helper()

	ts.app.MockRandom.QueueString("0123456789abcdef0123")
	body := map[string]any{
		"start_pos":    map[string]float64{"latitude": 48.8584, "longitude": 2.2945},
		"radius_limit": 5000,
		"time_limit":   timeLimit,
		"game_type":    gameType,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.NewGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.register(t, "alice", "secret123")
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "user-alice", resp.User.GroupID)
	assert.NotEmpty(t, resp.SessionToken)

	// Login with the same credentials
	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	// Wrong password is rejected
	body["password"] = "wrong"
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	ts.register(t, "alice", "secret123")

	body := map[string]string{"username": "alice", "password": "other456"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{"password": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{"username": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil, resp.SessionToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Token no longer works
	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, resp.SessionToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.register(t, "alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, resp.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)

	// No token at all
	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateGameAuthenticated(t *testing.T) {
	ts := newTestServer(t)

	auth := ts.register(t, "alice", "secret123")
	created := ts.createGame(t, auth.SessionToken, 10, "timed")
	assert.Equal(t, "0123456789abcdef0123", created.GameID)

	// The game lands in the user's group
	rr := ts.request(http.MethodGet, "/api/v1/games", nil, auth.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.GameListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Games, 1)
	assert.Equal(t, "user-alice", list.Games[0].GroupID)
	assert.Nil(t, list.Games[0].SolPos, "open games hide the solution")
}

func TestCreateGameAnonymous(t *testing.T) {
	ts := newTestServer(t)

	ts.createGame(t, "", 0, "completion")

	rr := ts.request(http.MethodGet, "/api/v1/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.GameListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Games, 1)
	assert.Equal(t, "anonymous", list.Games[0].GroupID)
}

func TestCreateGameInvalidParams(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"start_pos":    map[string]float64{"latitude": 95, "longitude": 0},
		"radius_limit": 1000,
		"game_type":    "timed",
		"time_limit":   10,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_GAME_PARAMS")
}

func TestCreateGameNoImagery(t *testing.T) {
	ts := newTestServer(t)

	// Every sampled candidate misses
	ts.app.FakeProvider.QueueMiss(5)

	body := map[string]any{
		"start_pos":    map[string]float64{"latitude": 48.8584, "longitude": 2.2945},
		"radius_limit": 1000,
		"game_type":    "completion",
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_IMAGERY")
}

func TestSubmitGame(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	ts.app.MockClock.Advance(5 * time.Minute)

	body := map[string]any{
		"end_pos": map[string]float64{"latitude": 48.86, "longitude": 2.3},
	}
	rr := ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/submit", body, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.SubmitGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 48.8584, resp.SolPos.Latitude, 0.0001)
	assert.InDelta(t, 2.2945, resp.SolPos.Longitude, 0.0001)

	// Submitting again conflicts
	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/submit", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_ALREADY_ENDED")
}

func TestSubmitExpiredGame(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	ts.app.MockClock.Advance(11 * time.Minute)

	body := map[string]any{
		"end_pos": map[string]float64{"latitude": 48.86, "longitude": 2.3},
	}
	rr := ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/submit", body, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_EXPIRED")
}

func TestSubmitUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"end_pos": map[string]float64{"latitude": 48.86, "longitude": 2.3},
	}
	rr := ts.request(http.MethodPost, "/api/v1/games/nosuchgame/submit", body, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestQuitGame(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	ts.app.MockClock.Advance(10 * time.Second)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/quit", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Gone from the listing
	rr = ts.request(http.MethodGet, "/api/v1/games", nil, "")
	var list response.GameListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Empty(t, list.Games)
}

func TestQuitAfterGracePeriod(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	ts.app.MockClock.Advance(25 * time.Second)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/quit", nil, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "QUIT_WINDOW_CLOSED")
}

func TestGameImage(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+created.GameID+"/image?heading=90", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))
	assert.Equal(t, "fake-image", rr.Body.String())
	assert.Equal(t, 90.0, ts.app.FakeProvider.LastFetchHeading)
}

func TestGameImageBadHeading(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+created.GameID+"/image?heading=north", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameImageAfterSubmit(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createGame(t, "", 10, "timed")

	body := map[string]any{
		"end_pos": map[string]float64{"latitude": 48.86, "longitude": 2.3},
	}
	rr := ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/submit", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+created.GameID+"/image", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGroupIsolationOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	alice := ts.register(t, "alice", "secret123")
	ts.createGame(t, alice.SessionToken, 10, "timed")

	bob := ts.register(t, "bob", "hunter22")
	rr := ts.request(http.MethodGet, "/api/v1/games", nil, bob.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.GameListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Empty(t, list.Games, "another user's games are not visible")
}
