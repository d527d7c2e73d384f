package model

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/benbeisheim/kingcapture-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// The connections watching a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer per connection at a time
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is a single human-versus-computer game and its observers.
type Game struct {
	ID          string
	Owner       string
	Depth       int
	mu          sync.Mutex
	state       *GameState
	connections *GameConnections
	clocks      map[Color]*Clock
}

// ClientState is the snapshot of a game sent to clients. It shares no
// pointers with the live game.
type ClientState struct {
	ID         string  `json:"id"`
	Board      *Board  `json:"board"`
	ToMove     Color   `json:"toMove"`
	Winner     Color   `json:"winner"`
	Resolve    *string `json:"resolve"`
	LastMove   *Ply    `json:"lastMove"`
	Evaluation int     `json:"evaluation"`
	Plies      int     `json:"plies"`
	MaxPlies   int     `json:"maxPlies"`
	Depth      int     `json:"depth"`
	Players    struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// Hint is a suggested move for the human side.
type Hint struct {
	Piece string   `json:"piece"`
	To    Position `json:"to"`
	Score int      `json:"score"`
}

// NewGame starts a game where owner plays player and the computer searches
// depth plies. When the computer has White it opens straight away.
func NewGame(id, owner string, player Color, depth, maxPlies int) (*Game, error) {
	state, err := NewGameState(player)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		depth = DefaultSearchDepth
	}
	if maxPlies > 0 {
		state.MaxPlies = maxPlies
	}
	g := &Game{
		ID:          id,
		Owner:       owner,
		Depth:       depth,
		state:       state,
		connections: NewGameConnections(),
		clocks:      map[Color]*Clock{White: NewClock(), Black: NewClock()},
	}
	if state.ToMove == state.Computer {
		g.playComputer()
	}
	g.clocks[state.ToMove].Start()
	return g, nil
}

func (g *Game) GetState() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() ClientState {
	s := ClientState{
		ID:         g.ID,
		Board:      g.state.Board.Clone(),
		ToMove:     g.state.ToMove,
		Winner:     g.state.Winner,
		Evaluation: Evaluate(g.state.Board),
		Plies:      g.state.Plies,
		MaxPlies:   g.state.MaxPlies,
		Depth:      g.Depth,
	}
	if g.state.Resolve != nil {
		r := *g.state.Resolve
		s.Resolve = &r
	}
	if g.state.LastMove != nil {
		lm := *g.state.LastMove
		s.LastMove = &lm
	}
	s.Players.White = g.clientPlayer(White)
	s.Players.Black = g.clientPlayer(Black)
	return s
}

func (g *Game) clientPlayer(color Color) ClientPlayer {
	p := ClientPlayer{
		Color:     color,
		Computer:  color == g.state.Computer,
		Captured:  g.state.Captured(color),
		ThinkTime: g.clocks[color].Used().Milliseconds(),
	}
	if !p.Computer {
		p.ID = g.Owner
	}
	return p
}

// Render draws the board as text, White at the bottom.
func (g *Game) Render() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Board.String()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	return playerID != "" && playerID == g.Owner
}

// Actions returns the destinations available to one of the human's pieces.
func (g *Game) Actions(name string) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pc, err := g.state.Piece(g.state.Player, name)
	if err != nil {
		return nil, err
	}
	actions := pc.Actions(g.state.Board)
	if actions == nil {
		actions = []Position{}
	}
	return actions, nil
}

// Moves returns every movable piece of the human side with its actions.
func (g *Game) Moves() map[string][]Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Moves(g.state.Player)
}

// Hint searches on behalf of the human side.
func (g *Game) Hint() (Hint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.IsOver() {
		return Hint{}, ErrGameOver
	}
	res := BestMove(g.state.Board, g.state.Player, g.Depth)
	if res.IsNull() {
		return Hint{Score: res.Score}, nil
	}
	return Hint{Piece: res.Piece.Name(), To: res.To, Score: res.Score}, nil
}

// MakeMove commits the human's move and, unless that ended the game, the
// computer's reply.
func (g *Game) MakeMove(playerID string, move MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotPlayer
	}
	if g.state.IsOver() {
		return ErrGameOver
	}
	if g.state.ToMove != g.state.Player {
		return ErrNotYourTurn
	}
	piece, err := g.state.Piece(g.state.Player, move.Piece)
	if err != nil {
		return err
	}

	g.clocks[g.state.Player].Stop()
	ply, err := g.state.Commit(piece, move.To)
	if err != nil {
		g.clocks[g.state.Player].Start()
		return err
	}
	log.Printf("game %s: %s played %s (%s), evaluation %d", g.ID, ply.Color, ply.Notation, ply.Piece, Evaluate(g.state.Board))

	if !g.state.IsOver() {
		g.playComputer()
	}
	if !g.state.IsOver() {
		g.clocks[g.state.ToMove].Start()
	}

	go g.broadcast(g.snapshot())
	return nil
}

// playComputer searches and commits the computer's move. A null search
// result passes the turn back.
func (g *Game) playComputer() {
	side := g.state.Computer
	clock := g.clocks[side]
	clock.Start()
	defer clock.Stop()

	res := BestMove(g.state.Board, side, g.Depth)
	if res.IsNull() {
		log.Printf("game %s: %s has no move, passing", g.ID, side)
		g.state.Pass()
		return
	}
	ply, err := g.state.Commit(res.Piece, res.To)
	if err != nil {
		// the search only proposes moves from the live action sets
		log.Printf("game %s: computer move rejected: %v", g.ID, err)
		g.state.Pass()
		return
	}
	log.Printf("game %s: %s played %s (%s), score %d", g.ID, ply.Color, ply.Notation, ply.Piece, res.Score)
}

// RegisterConnection adds conn as playerID's socket. A player keeps a single
// socket per game; a second one gets ErrAlreadyConnected and is left for the
// caller to close.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	go g.broadcast(g.GetState())
	return nil
}

// UnregisterConnection drops playerID's socket if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) broadcast(state ClientState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	failed := make(map[string]*websocket.Conn)
	for playerID, conn := range active {
		if err := g.Send(conn, ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			failed[playerID] = conn
		}
	}
	if len(failed) == 0 {
		return
	}
	g.connections.mu.Lock()
	for playerID, conn := range failed {
		if g.connections.connections[playerID] == conn {
			delete(g.connections.connections, playerID)
		}
	}
	g.connections.mu.Unlock()
}

// Send writes a message to one of the game's connections.
func (g *Game) Send(conn *websocket.Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
