package model

import (
	"fmt"
	"strings"
)

const boardSize = 8

type Color string

const (
	White Color = "white"
	Black Color = "black"
	// NoColor is returned by Winner while both kings are alive.
	NoColor Color = ""
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < boardSize && p.Col >= 0 && p.Col < boardSize
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// String renders the square as file letter plus rank, row 0 being rank 8.
func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.Col+'a', boardSize-p.Row)
}

// Board is the 8x8 grid. A nil cell is empty; a non-nil cell holds the piece
// whose Position matches that cell.
type Board struct {
	Cells [boardSize][boardSize]*Piece `json:"cells"`
}

func (b *Board) At(p Position) *Piece {
	if !p.InBounds() {
		return nil
	}
	return b.Cells[p.Row][p.Col]
}

func (b *Board) place(pc *Piece) {
	b.Cells[pc.Position.Row][pc.Position.Col] = pc
}

// Clone returns a deep copy: every occupying piece is copied, so mutating the
// clone never touches the receiver's pieces.
func (b *Board) Clone() *Board {
	out := &Board{}
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if pc := b.Cells[r][c]; pc != nil {
				cp := *pc
				out.Cells[r][c] = &cp
			}
		}
	}
	return out
}

// Pieces returns the pieces of the given color in row-major scan order.
func (b *Board) Pieces(color Color) []*Piece {
	pieces := []*Piece{}
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if pc := b.Cells[r][c]; pc != nil && pc.Color == color {
				pieces = append(pieces, pc)
			}
		}
	}
	return pieces
}

// ApplyMove relocates piece to dest, capturing whatever stands there. The
// board is left unchanged and ErrInvalidMove returned unless dest is one of
// the piece's current actions.
func (b *Board) ApplyMove(piece *Piece, dest Position) error {
	if piece == nil || !piece.Alive || b.At(piece.Position) != piece {
		return fmt.Errorf("%w: piece is not on the board", ErrInvalidMove)
	}
	if !containsPosition(piece.Actions(b), dest) {
		return fmt.Errorf("%w: %s cannot reach %s", ErrInvalidMove, piece.Name(), dest)
	}
	if captured := b.At(dest); captured != nil {
		captured.Alive = false
		b.Cells[dest.Row][dest.Col] = nil
	}
	b.Cells[piece.Position.Row][piece.Position.Col] = nil
	piece.Position = dest
	piece.HasMoved = true
	b.place(piece)
	return nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < boardSize; r++ {
		fmt.Fprintf(&sb, "%d ", boardSize-r)
		for c := 0; c < boardSize; c++ {
			if pc := b.Cells[r][c]; pc != nil {
				sb.WriteString(pc.Symbol())
			} else {
				sb.WriteString(".")
			}
			if c < boardSize-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// newBoard lays out both sides in the standard arrangement and returns the
// rosters keyed by piece name.
func newBoard() (*Board, map[Color]map[string]*Piece) {
	board := &Board{}
	rosters := map[Color]map[string]*Piece{
		White: make(map[string]*Piece, 16),
		Black: make(map[string]*Piece, 16),
	}
	counts := map[Color]map[PieceType]int{White: {}, Black: {}}
	add := func(kind PieceType, color Color, row, col int) {
		pc := &Piece{
			Type:     kind,
			Color:    color,
			Position: Position{Row: row, Col: col},
			Alive:    true,
		}
		if kind != King && kind != Queen {
			counts[color][kind]++
			pc.Number = counts[color][kind]
		}
		board.place(pc)
		rosters[color][pc.Name()] = pc
	}
	for i := 0; i < boardSize; i++ {
		add(Pawn, Black, 1, i)
		add(Pawn, White, 6, i)
	}
	for i, kind := range backRank {
		add(kind, Black, 0, i)
		add(kind, White, 7, i)
	}
	return board, rosters
}
