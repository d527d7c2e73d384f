package model

import "fmt"

// MoveRequest is a human move: a roster name and the destination square.
type MoveRequest struct {
	Piece string   `json:"piece"`
	To    Position `json:"to"`
}

// Ply records a single committed move for display.
type Ply struct {
	Color    Color    `json:"color"`
	Piece    string   `json:"piece"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Captured string   `json:"captured,omitempty"`
	Notation string   `json:"notation"`
}

func (p PieceType) notationPrefix() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (p Ply) notation(piece *Piece) string {
	capture := ""
	pawnFile := ""
	if p.Captured != "" {
		capture = "x"
		if piece.Type == Pawn {
			pawnFile = p.From.String()[:1]
		}
	}
	return fmt.Sprintf("%s%s%s%s", piece.Type.notationPrefix(), pawnFile, capture, p.To)
}
