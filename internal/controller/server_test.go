package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
)

const testOrigin = "http://localhost:5173"

// startServer serves the routes on a loopback listener so requests go
// through fasthttp's pooled contexts like they do in production.
func startServer(t *testing.T) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	gs := service.NewGameService(service.NewGameManager(service.Settings{DefaultDepth: 1, MaxDepth: 2}))
	RegisterRoutes(app, gs, []string{testOrigin})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})
	return ln.Addr().String()
}

// keepAliveClient sends every request over one reused connection.
func keepAliveClient() *http.Client {
	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: &http.Transport{MaxConnsPerHost: 1, MaxIdleConnsPerHost: 1},
	}
}

func send(t *testing.T, client *http.Client, method, url, player, body string, extra map[string]string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Player-ID", player)
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func createOver(t *testing.T, client *http.Client, base, player string) string {
	t.Helper()
	status, body := send(t, client, http.MethodPost, base+"/api/game/create", player, `{"color":"white"}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("create as %s: %d %s", player, status, body)
	}
	var payload struct {
		GameID string `json:"game_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return payload.GameID
}

func TestOwnerSurvivesKeepAliveReuse(t *testing.T) {
	base := "http://" + startServer(t)
	client := keepAliveClient()

	gameID := createOver(t, client, base, "alice")
	createOver(t, client, base, "bobby")

	status, body := send(t, client, http.MethodPost, base+"/api/game/"+gameID+"/move", "alice",
		`{"piece":"Pawn-5","to":{"row":5,"col":4}}`, map[string]string{"A-Pad": "padding"})
	if status != http.StatusOK {
		t.Fatalf("owner's move: %d %s", status, body)
	}

	status, body = send(t, client, http.MethodGet, base+"/api/game/"+gameID, "carol", "", nil)
	if status != http.StatusOK {
		t.Fatalf("state: %d %s", status, body)
	}
	var state model.ClientState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Players.White.ID != "alice" {
		t.Fatalf("owner changed to %q", state.Players.White.ID)
	}
}

func dial(t *testing.T, addr, gameID, player string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("Origin", testOrigin)
	header.Set("X-Player-ID", player)
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/game/"+gameID, header)
	if err != nil {
		t.Fatalf("dial as %s: %v", player, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

// nextState reads until a gameState message with at least plies plies.
func nextState(t *testing.T, conn *websocket.Conn, plies int) model.ClientState {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg ws.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != ws.MessageTypeGameState {
			continue
		}
		var state model.ClientState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if state.Plies >= plies {
			return state
		}
	}
}

func TestSecondSocketKeepsFirstRegistered(t *testing.T) {
	addr := startServer(t)
	client := keepAliveClient()
	gameID := createOver(t, client, "http://"+addr, "alice")

	first := dial(t, addr, gameID, "alice")
	if got := nextState(t, first, 0); got.Players.White.ID != "alice" {
		t.Fatalf("owner on socket: %q", got.Players.White.ID)
	}

	second := dial(t, addr, gameID, "alice")
	second.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := second.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != websocket.ClosePolicyViolation {
		t.Fatalf("expected policy close on duplicate socket, got %v", err)
	}

	status, body := send(t, client, http.MethodPost, "http://"+addr+"/api/game/"+gameID+"/move", "alice",
		`{"piece":"Pawn-5","to":{"row":5,"col":4}}`, nil)
	if status != http.StatusOK {
		t.Fatalf("move: %d %s", status, body)
	}
	if got := nextState(t, first, 2); got.ToMove != model.White {
		t.Fatalf("expected White to move after reply, got %s", got.ToMove)
	}
}
