package model

// Evaluate sums the material of every piece on the board, White positive.
func Evaluate(b *Board) int {
	score := 0
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if pc := b.Cells[r][c]; pc != nil && pc.Alive {
				score += pc.Value()
			}
		}
	}
	return score
}

func liveKings(b *Board) []*Piece {
	var kings []*Piece
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if pc := b.Cells[r][c]; pc != nil && pc.Type == King && pc.Alive {
				kings = append(kings, pc)
			}
		}
	}
	return kings
}

// Terminal reports whether a king has been captured.
func Terminal(b *Board) bool {
	return len(liveKings(b)) < 2
}

// Winner returns the color of the surviving king once the board is terminal,
// and NoColor otherwise.
func Winner(b *Board) Color {
	if !Terminal(b) {
		return NoColor
	}
	kings := liveKings(b)
	if len(kings) == 0 {
		return NoColor
	}
	return kings[0].Color
}
