package model

// MovementRule returns the destinations reachable from `from` under a single
// rule, ignoring every other rule of the piece and whose turn it is.
type MovementRule func(b *Board, from Position, color Color) []Position

// Row +1 is "front" and column +1 is "right" in the rule names below.
var (
	dirFront     = Position{Row: 1, Col: 0}
	dirBack      = Position{Row: -1, Col: 0}
	dirRight     = Position{Row: 0, Col: 1}
	dirLeft      = Position{Row: 0, Col: -1}
	dirRightFwd  = Position{Row: 1, Col: 1}
	dirRightBack = Position{Row: -1, Col: 1}
	dirLeftFwd   = Position{Row: 1, Col: -1}
	dirLeftBack  = Position{Row: -1, Col: -1}
)

// movementRules is built once and never written to afterwards.
var movementRules = map[PieceType][]MovementRule{
	Queen: {
		slide(dirFront), slide(dirBack), slide(dirRight), slide(dirLeft),
		slide(dirRightBack), slide(dirRightFwd), slide(dirLeftFwd), slide(dirLeftBack),
	},
	Rook: {
		slide(dirFront), slide(dirBack), slide(dirRight), slide(dirLeft),
	},
	Knight: {
		step(Position{Row: 1, Col: 2}, Position{Row: 1, Col: -2}, Position{Row: 2, Col: 1}, Position{Row: 2, Col: -1}),
		step(Position{Row: -1, Col: 2}, Position{Row: -1, Col: -2}, Position{Row: -2, Col: 1}, Position{Row: -2, Col: -1}),
	},
	Bishop: {
		slide(dirRightFwd), slide(dirRightBack), slide(dirLeftFwd), slide(dirLeftBack),
	},
	King: {
		step(dirFront), step(dirBack), step(dirRight), step(dirLeft),
		step(dirRightFwd), step(dirRightBack), step(dirLeftBack), step(dirLeftFwd),
	},
	Pawn: {
		pawnRule,
	},
}

// slide walks along dir until the edge or the first occupied square, which
// is included only when it holds an enemy piece.
func slide(dir Position) MovementRule {
	return func(b *Board, from Position, color Color) []Position {
		var moves []Position
		for target := from.add(dir); target.InBounds(); target = target.add(dir) {
			occupant := b.At(target)
			if occupant == nil {
				moves = append(moves, target)
				continue
			}
			if occupant.Color != color {
				moves = append(moves, target)
			}
			break
		}
		return moves
	}
}

// step tries each offset once; a square is reachable when empty or enemy
// occupied.
func step(offsets ...Position) MovementRule {
	return func(b *Board, from Position, color Color) []Position {
		var moves []Position
		for _, off := range offsets {
			target := from.add(off)
			if !target.InBounds() {
				continue
			}
			if occupant := b.At(target); occupant == nil || occupant.Color != color {
				moves = append(moves, target)
			}
		}
		return moves
	}
}

// pawnRule moves one square forward onto an empty square, or one square
// diagonally forward onto an enemy. There is no double step.
func pawnRule(b *Board, from Position, color Color) []Position {
	forward := -1
	if color == Black {
		forward = 1
	}
	var moves []Position
	ahead := Position{Row: from.Row + forward, Col: from.Col}
	if !ahead.InBounds() {
		return moves
	}
	if b.At(ahead) == nil {
		moves = append(moves, ahead)
	}
	for _, dc := range []int{1, -1} {
		diag := Position{Row: ahead.Row, Col: from.Col + dc}
		if !diag.InBounds() {
			continue
		}
		if occupant := b.At(diag); occupant != nil && occupant.Color != color {
			moves = append(moves, diag)
		}
	}
	return moves
}
