package model

import "math"

const DefaultSearchDepth = 3

const (
	scoreMax = math.MaxInt32
	scoreMin = -math.MaxInt32
)

// SearchResult is the move chosen by BestMove. A nil Piece means the side to
// move had nothing to play and the board should be left as it is.
type SearchResult struct {
	Piece *Piece   `json:"piece"`
	To    Position `json:"to"`
	Score int      `json:"score"`
}

func (r SearchResult) IsNull() bool {
	return r.Piece == nil
}

// BestMove runs a depth-limited minimax with alpha-beta pruning for side.
// A depth of zero or less returns the static evaluation with no move.
// White maximizes the material score and Black minimizes it. The returned
// piece belongs to b, so it can be handed straight to b.ApplyMove.
func BestMove(b *Board, side Color, depth int) SearchResult {
	if side == Black {
		return minimize(b, depth, scoreMin, scoreMax)
	}
	return maximize(b, depth, scoreMin, scoreMax)
}

// result plays one move on a copy of b.
func result(b *Board, piece *Piece, to Position) *Board {
	next := b.Clone()
	if err := next.ApplyMove(next.At(piece.Position), to); err != nil {
		// actions come from the same board, so a rejection here is a rule bug
		panic(err)
	}
	return next
}

func maximize(b *Board, depth, alpha, beta int) SearchResult {
	if Terminal(b) || depth <= 0 {
		return SearchResult{Score: Evaluate(b)}
	}
	best := SearchResult{Score: scoreMin}
	for _, piece := range b.Pieces(White) {
		for _, to := range piece.Actions(b) {
			value := minimize(result(b, piece, to), depth-1, alpha, beta).Score
			if value > best.Score || best.Piece == nil {
				best = SearchResult{Piece: piece, To: to, Score: value}
			}
			alpha = max(alpha, value)
			if alpha >= beta {
				break
			}
		}
	}
	if best.Piece == nil {
		return SearchResult{Score: Evaluate(b)}
	}
	return best
}

func minimize(b *Board, depth, alpha, beta int) SearchResult {
	if Terminal(b) || depth <= 0 {
		return SearchResult{Score: Evaluate(b)}
	}
	best := SearchResult{Score: scoreMax}
	for _, piece := range b.Pieces(Black) {
		for _, to := range piece.Actions(b) {
			value := maximize(result(b, piece, to), depth-1, alpha, beta).Score
			if value < best.Score || best.Piece == nil {
				best = SearchResult{Piece: piece, To: to, Score: value}
			}
			beta = min(beta, value)
			if alpha >= beta {
				break
			}
		}
	}
	if best.Piece == nil {
		return SearchResult{Score: Evaluate(b)}
	}
	return best
}
