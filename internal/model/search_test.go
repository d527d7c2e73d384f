package model

import (
	"testing"
)

// fullMinimax is plain minimax without pruning, using the same enumeration
// order and strict-improvement tie-break as the search.
func fullMinimax(b *Board, side Color, depth int) SearchResult {
	if Terminal(b) || depth == 0 {
		return SearchResult{Score: Evaluate(b)}
	}
	var best SearchResult
	found := false
	for _, piece := range b.Pieces(side) {
		for _, to := range piece.Actions(b) {
			value := fullMinimax(result(b, piece, to), side.Opposite(), depth-1).Score
			better := value > best.Score
			if side == Black {
				better = value < best.Score
			}
			if !found || better {
				best = SearchResult{Piece: piece, To: to, Score: value}
				found = true
			}
		}
	}
	if !found {
		return SearchResult{Score: Evaluate(b)}
	}
	return best
}

// midgame plays a fixed sequence from the opening so the search sees
// captures on both sides.
func midgame(t *testing.T) *Board {
	t.Helper()
	board, rosters := newBoard()
	moves := []struct {
		color Color
		name  string
		to    Position
	}{
		{White, "Pawn-5", pos(5, 4)},
		{Black, "Pawn-4", pos(2, 3)},
		{White, "Pawn-5", pos(4, 4)},
		{Black, "Pawn-4", pos(3, 3)},
		{White, "Knight-2", pos(5, 5)},
		{Black, "Bishop-1", pos(4, 6)},
		{White, "Pawn-4", pos(5, 3)},
		{Black, "Knight-1", pos(2, 2)},
	}
	for _, m := range moves {
		if err := board.ApplyMove(rosters[m.color][m.name], m.to); err != nil {
			t.Fatalf("setup %s %s -> %v: %v", m.color, m.name, m.to, err)
		}
	}
	return board
}

func TestAlphaBetaMatchesFullMinimax(t *testing.T) {
	opening, _ := newBoard()
	positions := map[string]*Board{
		"opening": opening,
		"midgame": midgame(t),
	}

	for name, board := range positions {
		for _, side := range []Color{White, Black} {
			for depth := 1; depth <= 3; depth++ {
				pruned := BestMove(board, side, depth)
				full := fullMinimax(board, side, depth)
				if pruned.Score != full.Score {
					t.Fatalf("%s %s depth %d: pruned score %d, full score %d", name, side, depth, pruned.Score, full.Score)
				}
				if pruned.Piece != full.Piece || pruned.To != full.To {
					t.Fatalf("%s %s depth %d: pruned chose %v->%v, full chose %v->%v",
						name, side, depth, pruned.Piece.Name(), pruned.To, full.Piece.Name(), full.To)
				}
			}
		}
	}
}

func TestBestMoveIsDeterministic(t *testing.T) {
	board := midgame(t)
	first := BestMove(board, White, 3)
	second := BestMove(board.Clone(), White, 3)

	if first.Piece.Name() != second.Piece.Name() || first.Piece.Position != second.Piece.Position {
		t.Fatalf("different pieces: %s and %s", first.Piece.Name(), second.Piece.Name())
	}
	if first.To != second.To || first.Score != second.Score {
		t.Fatalf("different results: %+v and %+v", first, second)
	}
}

func TestBestMoveLeavesBoardUntouched(t *testing.T) {
	board := midgame(t)
	before := cellsOf(board)
	BestMove(board, Black, 3)
	after := cellsOf(board)
	if len(before) != len(after) {
		t.Fatalf("piece count changed during search")
	}
	for p, pc := range before {
		if after[p] != pc {
			t.Fatalf("square %v changed during search", p)
		}
	}
}

func TestOpeningDepthOne(t *testing.T) {
	board, rosters := newBoard()
	res := BestMove(board, White, 1)

	if res.Score != 0 {
		t.Fatalf("score %d, want 0", res.Score)
	}
	// first piece in scan order is the a-pawn
	if res.Piece != rosters[White]["Pawn-1"] || res.To != pos(5, 0) {
		t.Fatalf("unexpected move %s -> %v", res.Piece.Name(), res.To)
	}
	if err := board.ApplyMove(res.Piece, res.To); err != nil {
		t.Fatalf("chosen move rejected: %v", err)
	}
}

func TestKingTakesAdjacentPawn(t *testing.T) {
	b := &Board{}
	king := put(b, King, White, 4, 4)
	put(b, King, Black, 0, 0)
	pawn := put(b, Pawn, Black, 3, 4)

	res := BestMove(b, White, 1)
	if res.Piece != king || res.To != pos(3, 4) {
		t.Fatalf("expected king to capture pawn, got %v -> %v", res.Piece, res.To)
	}
	if res.Score != 0 {
		t.Fatalf("score %d, want 0", res.Score)
	}
	if err := b.ApplyMove(res.Piece, res.To); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if pawn.Alive {
		t.Fatalf("pawn should be captured")
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	b := &Board{}
	put(b, King, White, 4, 4)
	put(b, King, Black, 3, 5)
	put(b, Pawn, Black, 1, 1)

	res := BestMove(b, White, 1)
	if res.To != pos(3, 5) {
		t.Fatalf("expected king capture, got %v", res.To)
	}
	if err := b.ApplyMove(res.Piece, res.To); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !Terminal(b) {
		t.Fatalf("board should be terminal")
	}
	if w := Winner(b); w != White {
		t.Fatalf("winner %q, want white", w)
	}
}

func TestBlackPrefersLowerScore(t *testing.T) {
	b := &Board{}
	put(b, King, White, 7, 7)
	put(b, Queen, White, 4, 0)
	put(b, Knight, White, 4, 7)
	rook := put(b, Rook, Black, 4, 4)
	put(b, King, Black, 0, 4)

	res := BestMove(b, Black, 1)
	if res.Piece != rook || res.To != pos(4, 0) {
		t.Fatalf("expected rook to take the queen, got %v -> %v", res.Piece, res.To)
	}
	if want := 900 + 30 - 50 - 900; res.Score != want {
		t.Fatalf("score %d, want %d", res.Score, want)
	}
}

func TestNoLegalMovesReturnsNullMove(t *testing.T) {
	b := &Board{}
	put(b, King, White, 7, 0)
	put(b, Pawn, White, 7, 1)
	for r := 0; r < 7; r++ {
		put(b, Pawn, White, r, 0)
		put(b, Pawn, White, r, 1)
	}
	put(b, King, Black, 0, 7)

	for _, pc := range b.Pieces(White) {
		if actions := pc.Actions(b); len(actions) != 0 {
			t.Fatalf("setup: %s at %v can still move to %v", pc.Name(), pc.Position, actions)
		}
	}

	res := BestMove(b, White, 2)
	if !res.IsNull() {
		t.Fatalf("expected null move, got %v -> %v", res.Piece, res.To)
	}
	if want := Evaluate(b); res.Score != want {
		t.Fatalf("score %d, want static evaluation %d", res.Score, want)
	}
	if Terminal(b) {
		t.Fatalf("no moves is not terminal")
	}
}

func TestTerminalBoardIsNotSearched(t *testing.T) {
	b := &Board{}
	put(b, King, White, 4, 4)
	put(b, Queen, Black, 0, 0)

	res := BestMove(b, White, 3)
	if !res.IsNull() {
		t.Fatalf("expected no move on a terminal board")
	}
	if res.Score != 900-90 {
		t.Fatalf("score %d", res.Score)
	}
}

func TestNonPositiveDepthReturnsStaticEval(t *testing.T) {
	board, _ := newBoard()
	for _, depth := range []int{0, -1, -5} {
		for _, side := range []Color{White, Black} {
			res := BestMove(board, side, depth)
			if !res.IsNull() || res.Score != 0 {
				t.Fatalf("depth %d %s: got %+v", depth, side, res)
			}
		}
	}
}
