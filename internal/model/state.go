package model

import (
	"fmt"
	"sort"
)

// DefaultMaxPlies caps a game the same way the console loop did.
const DefaultMaxPlies = 100

const (
	ResolveKingCaptured = "king-captured"
	ResolveMoveLimit    = "move-limit"
)

// PieceNames is the order pieces are handed out in each roster.
var PieceNames = []string{
	"Pawn-1", "Pawn-2", "Pawn-3", "Pawn-4", "Pawn-5", "Pawn-6", "Pawn-7", "Pawn-8",
	"Rook-1", "Knight-1", "Bishop-1", "Queen", "King", "Bishop-2", "Knight-2", "Rook-2",
}

// GameState is one game's board, the two rosters and whose turn it is.
type GameState struct {
	Board    *Board                      `json:"board"`
	Rosters  map[Color]map[string]*Piece `json:"-"`
	ToMove   Color                       `json:"toMove"`
	Player   Color                       `json:"player"`
	Computer Color                       `json:"computer"`
	Winner   Color                       `json:"winner"`
	Resolve  *string                     `json:"resolve"`
	LastMove *Ply                        `json:"lastMove"`
	Plies    int                         `json:"plies"`
	MaxPlies int                         `json:"maxPlies"`
}

// NewGameState sets up the starting position with the human playing player.
// White always moves first.
func NewGameState(player Color) (*GameState, error) {
	if player != White && player != Black {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, player)
	}
	board, rosters := newBoard()
	return &GameState{
		Board:    board,
		Rosters:  rosters,
		ToMove:   White,
		Player:   player,
		Computer: player.Opposite(),
		MaxPlies: DefaultMaxPlies,
	}, nil
}

func (s *GameState) IsOver() bool {
	return s.Resolve != nil
}

// Piece looks a piece up by roster name.
func (s *GameState) Piece(color Color, name string) (*Piece, error) {
	pc, ok := s.Rosters[color][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q", ErrUnknownPiece, color, name)
	}
	return pc, nil
}

// Commit applies a move for the side to move and advances the turn.
func (s *GameState) Commit(piece *Piece, to Position) (Ply, error) {
	if s.IsOver() {
		return Ply{}, ErrGameOver
	}
	if piece == nil || piece.Color != s.ToMove {
		return Ply{}, ErrNotYourTurn
	}
	from := piece.Position
	captured := s.Board.At(to)
	if err := s.Board.ApplyMove(piece, to); err != nil {
		return Ply{}, err
	}
	ply := Ply{
		Color: piece.Color,
		Piece: piece.Name(),
		From:  from,
		To:    to,
	}
	if captured != nil {
		ply.Captured = captured.Name()
	}
	ply.Notation = ply.notation(piece)
	s.LastMove = &ply
	s.advance()
	return ply, nil
}

// Pass hands the turn over without moving. Used when the search finds no
// move for the side to move.
func (s *GameState) Pass() {
	if s.IsOver() {
		return
	}
	s.advance()
}

func (s *GameState) advance() {
	s.Plies++
	s.ToMove = s.ToMove.Opposite()
	if Terminal(s.Board) {
		s.Winner = Winner(s.Board)
		s.resolve(ResolveKingCaptured)
		return
	}
	if s.MaxPlies > 0 && s.Plies >= s.MaxPlies {
		s.resolve(ResolveMoveLimit)
	}
}

func (s *GameState) resolve(reason string) {
	r := reason
	s.Resolve = &r
}

// Captured lists the captured pieces of color by name.
func (s *GameState) Captured(color Color) []string {
	names := []string{}
	for name, pc := range s.Rosters[color] {
		if !pc.Alive {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Moves returns the action set of every live piece of color, keyed by name.
func (s *GameState) Moves(color Color) map[string][]Position {
	moves := make(map[string][]Position)
	for name, pc := range s.Rosters[color] {
		if actions := pc.Actions(s.Board); len(actions) > 0 {
			moves[name] = actions
		}
	}
	return moves
}
