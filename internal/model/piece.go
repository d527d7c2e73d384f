package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

var pieceValues = map[PieceType]int{
	Pawn:   10,
	Knight: 30,
	Bishop: 30,
	Rook:   50,
	Queen:  90,
	King:   900,
}

func (p PieceType) displayName() string {
	switch p {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	}
	return string(p)
}

func (p PieceType) symbol(c Color) string {
	white := c == White
	switch p {
	case King:
		return pick(white, "♔", "♚")
	case Queen:
		return pick(white, "♕", "♛")
	case Rook:
		return pick(white, "♖", "♜")
	case Bishop:
		return pick(white, "♗", "♝")
	case Knight:
		return pick(white, "♘", "♞")
	case Pawn:
		return pick(white, "♙", "♟")
	}
	return "?"
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

type Piece struct {
	Type     PieceType `json:"type"`
	Number   int       `json:"number,omitempty"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	Alive    bool      `json:"alive"`
	HasMoved bool      `json:"hasMoved"`
}

// Name is the stable roster key, e.g. "Pawn-3" or "Queen".
func (p *Piece) Name() string {
	if p.Number == 0 {
		return p.Type.displayName()
	}
	return fmt.Sprintf("%s-%d", p.Type.displayName(), p.Number)
}

func (p *Piece) Symbol() string {
	return p.Type.symbol(p.Color)
}

// Value is the material value, positive for White and negative for Black.
func (p *Piece) Value() int {
	v := pieceValues[p.Type]
	if p.Color == Black {
		return -v
	}
	return v
}

// Actions lists the squares the piece could move to on b right now. A
// captured piece has none.
func (p *Piece) Actions(b *Board) []Position {
	if !p.Alive {
		return nil
	}
	var actions []Position
	for _, rule := range movementRules[p.Type] {
		actions = append(actions, rule(b, p.Position, p.Color)...)
	}
	return actions
}
