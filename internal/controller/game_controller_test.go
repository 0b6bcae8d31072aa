package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quanvenc/BlindChess-Z/internal/middleware"
	"github.com/quanvenc/BlindChess-Z/internal/model"
	"github.com/quanvenc/BlindChess-Z/internal/oracle"
	"github.com/quanvenc/BlindChess-Z/internal/service"
)

var testKey = []byte("controller-test-key-0123456789ab")

func newTestApp(t *testing.T) (*fiber.App, *oracle.Sealer) {
	t.Helper()
	sealer, err := oracle.NewSealer(testKey)
	require.NoError(t, err)
	oracleService, err := oracle.NewService(testKey)
	require.NoError(t, err)

	gameService := service.NewGameService(oracleService, zap.NewNop())
	gc := NewGameController(gameService)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/register", gc.RegisterPlayer)
	gameRoutes.Post("/board", gc.InitializeBoard)
	gameRoutes.Post("/move", gc.MakeMove)
	gameRoutes.Get("/turn", gc.GetCurrentTurn)
	gameRoutes.Get("/over", gc.GetGameOver)
	gameRoutes.Get("/", gc.GetGameState)
	return app, sealer
}

func doJSON(t *testing.T, app *fiber.App, method, path, playerID string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func testGrid(sealer *oracle.Sealer) model.Grid {
	var g model.Grid
	for x := range g {
		for y := range g[x] {
			g[x][y] = model.Square{
				Position: sealer.Seal([]byte(fmt.Sprintf("blank-%d-%d", x, y))),
				Captured: true,
			}
		}
	}
	g[0][0] = model.Square{Position: sealer.Seal([]byte("white-queen")), Type: model.Queen, White: true}
	g[0][5] = model.Square{Position: sealer.Seal([]byte("black-pawn")), Type: model.Pawn, White: false}
	return g
}

func claimBody(sealer *oracle.Sealer, g model.Grid, fromX, fromY, toX, toY int) model.MoveClaim {
	from := g[fromX][fromY].Position
	to := g[toX][toY].Position
	return model.MoveClaim{
		FromX:     fromX,
		FromY:     fromY,
		ToX:       toX,
		ToY:       toY,
		FromToken: from,
		ToToken:   to,
		Proof: oracle.Combine(
			sealer.ProveEqual(from, from),
			sealer.ProveEqual(to, to),
		),
	}
}

func TestRegisterEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/game/register", "p1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), body["color"])
	require.Equal(t, "white", body["colorName"])
	require.NotEmpty(t, body["gameId"])

	status, body = doJSON(t, app, http.MethodPost, "/api/game/register", "p2", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "black", body["colorName"])

	status, body = doJSON(t, app, http.MethodPost, "/api/game/register", "p3", nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "gameFull", body["code"])

	status, body = doJSON(t, app, http.MethodPost, "/api/game/register", "p1", nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "alreadyRegistered", body["code"])

	// The roster must keep both IDs intact across requests; the transport
	// recycles its request buffers, so a retained ID that was not copied
	// out would be overwritten by the next request.
	status, body = doJSON(t, app, http.MethodGet, "/api/game/", "p1", nil)
	require.Equal(t, http.StatusOK, status)
	players, ok := body["players"].([]any)
	require.True(t, ok)
	require.Len(t, players, 2)
	require.Equal(t, "p1", players[0].(map[string]any)["id"])
	require.Equal(t, "p2", players[1].(map[string]any)["id"])
}

func TestRegisterMintsPlayerID(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/game/register", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	minted := resp.Header.Get("X-Player-ID")
	require.NotEmpty(t, minted, "an anonymous caller gets an identity back")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, minted, body["playerId"])
}

func TestBoardEndpointGating(t *testing.T) {
	app, sealer := newTestApp(t)
	grid := testGrid(sealer)

	doJSON(t, app, http.MethodPost, "/api/game/register", "white", nil)
	doJSON(t, app, http.MethodPost, "/api/game/register", "black", nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/game/board", "black", fiber.Map{"board": grid})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "notAuthorized", body["code"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/game/board", "white", fiber.Map{"board": grid})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/game/board", "white", fiber.Map{"board": grid})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "alreadyActive", body["code"])
}

func TestMoveAndQueryEndpoints(t *testing.T) {
	app, sealer := newTestApp(t)
	grid := testGrid(sealer)

	doJSON(t, app, http.MethodPost, "/api/game/register", "white", nil)
	doJSON(t, app, http.MethodPost, "/api/game/register", "black", nil)
	doJSON(t, app, http.MethodPost, "/api/game/board", "white", fiber.Map{"board": grid})

	status, body := doJSON(t, app, http.MethodGet, "/api/game/turn", "white", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "white", body["id"])

	status, body = doJSON(t, app, http.MethodGet, "/api/game/over", "white", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["gameOver"])

	// The queen cannot step diagonally under its code.
	status, body = doJSON(t, app, http.MethodPost, "/api/game/move", "white",
		claimBody(sealer, grid, 0, 0, 1, 1))
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Equal(t, "illegalMove", body["code"])

	status, body = doJSON(t, app, http.MethodPost, "/api/game/move", "black",
		claimBody(sealer, grid, 0, 5, 1, 5))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "turnViolation", body["code"])

	// Capturing black's only piece ends the match in one move.
	status, body = doJSON(t, app, http.MethodPost, "/api/game/move", "white",
		claimBody(sealer, grid, 0, 0, 0, 5))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["gameOver"])
	winner, ok := body["winner"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "black", winner["id"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/game/turn", "white", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/game/over", "white", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["gameOver"])

	status, body = doJSON(t, app, http.MethodGet, "/api/game/", "white", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "finished", body["phaseName"])
	boardJSON, ok := body["board"].([]any)
	require.True(t, ok)
	require.Len(t, boardJSON, 8)
}

func TestMoveRejectsMalformedBody(t *testing.T) {
	app, _ := newTestApp(t)
	doJSON(t, app, http.MethodPost, "/api/game/register", "white", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/game/move", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", "white")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
