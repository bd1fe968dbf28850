package game

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/UnveiledSafe8/SignalSiege/internal/domain/game"
	"github.com/UnveiledSafe8/SignalSiege/internal/httpresponse"
	repo "github.com/UnveiledSafe8/SignalSiege/internal/repository"
	gameuc "github.com/UnveiledSafe8/SignalSiege/internal/usecase/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop().Sugar()
	store, err := repo.NewMemoryGameRepository(log)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	uc := gameuc.NewGameUseCase(store, gameuc.LocalChooser{}, log, game.WithColorOrder(game.Black, game.White))
	r := chi.NewRouter()
	NewGameHandler(log, uc).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON[T any](t *testing.T, method, url, body string) (int, httpresponse.Response[T]) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out httpresponse.Response[T]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func createGame(t *testing.T, srv *httptest.Server, body string) game.CreateGameResponse {
	t.Helper()
	code, resp := doJSON[game.CreateGameResponse](t, http.MethodPost, srv.URL+"/games", body)
	require.Equal(t, http.StatusCreated, code)
	return resp.Body
}

func TestCreateAndPlay(t *testing.T) {
	srv := newTestServer(t)
	created := createGame(t, srv, `{"height": 5, "width": 5}`)
	require.NotEmpty(t, created.GameKey)
	assert.Equal(t, game.Self, created.Game.Difficulty)
	assert.Len(t, created.Game.LegalMoves, 25)

	code, moved := doJSON[game.MoveResponse](t, http.MethodPost,
		srv.URL+"/games/"+created.GameKey+"/moves", `{"move": "2.2"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, moved.Body.Accepted)
	assert.Equal(t, game.White, moved.Body.Game.CurrentPlayer)

	code, rejected := doJSON[game.MoveResponse](t, http.MethodPost,
		srv.URL+"/games/"+created.GameKey+"/moves", `{"move": "2.2"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, rejected.Body.Accepted)

	code, view := doJSON[game.GameView](t, http.MethodGet, srv.URL+"/public/"+created.PublicKey, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, view.Body.TotalTurns)

	res, err := http.Get(srv.URL + "/games/" + created.GameKey + "/board")
	require.NoError(t, err)
	defer res.Body.Close()
	var board bytes.Buffer
	_, err = board.ReadFrom(res.Body)
	require.NoError(t, err)
	assert.Contains(t, board.String(), "2  . . B . .")
}

func TestAIMoveRoute(t *testing.T) {
	srv := newTestServer(t)
	created := createGame(t, srv, `{"difficulty": "hard", "height": 5, "width": 5}`)

	code, _ := doJSON[httpresponse.ErrorResponse](t, http.MethodPost, srv.URL+"/games/"+created.GameKey+"/ai-move", "")
	assert.Equal(t, http.StatusConflict, code)

	code, moved := doJSON[game.MoveResponse](t, http.MethodPost,
		srv.URL+"/games/"+created.GameKey+"/moves", `{"move": "pass"}`)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, moved.Body.Played, 2)
	assert.True(t, moved.Body.Played[1].AI)
	// the hard tier passes, and two passes end the game
	require.NotNil(t, moved.Body.Game.Result)
	assert.Equal(t, "completed", moved.Body.Game.Status)
}

func TestErrorStatuses(t *testing.T) {
	srv := newTestServer(t)

	code, resp := doJSON[httpresponse.ErrorResponse](t, http.MethodGet, srv.URL+"/games/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, resp.Body.ErrorDescription)

	code, _ = doJSON[httpresponse.ErrorResponse](t, http.MethodPost, srv.URL+"/games", `{"height": 40}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = doJSON[httpresponse.ErrorResponse](t, http.MethodPost, srv.URL+"/games", `{"colour": "red"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON[httpresponse.ErrorResponse](t, http.MethodPost, srv.URL+"/games", `{"difficulty": "godlike"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestWebsocketPlay(t *testing.T) {
	srv := newTestServer(t)
	created := createGame(t, srv, `{"height": 3, "width": 3}`)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/" + created.GameKey + "/ws"

	player, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer player.Close()
	watcher, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer watcher.Close()

	var initial game.GameView
	require.NoError(t, player.ReadJSON(&initial))
	assert.Equal(t, game.Black, initial.CurrentPlayer)
	require.NoError(t, watcher.ReadJSON(&initial))

	require.NoError(t, player.WriteJSON(game.MoveRequest{Move: "1.1"}))
	var own, seen game.MoveResponse
	require.NoError(t, player.ReadJSON(&own))
	assert.True(t, own.Accepted)
	require.NoError(t, watcher.ReadJSON(&seen))
	assert.Equal(t, own.Played, seen.Played)
	assert.Equal(t, game.White, seen.Game.CurrentPlayer)
}
