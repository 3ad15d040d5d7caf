package game

// IsInsufficientMaterial reports positions where neither side can mate: no
// pawns, rooks or queens, and at most one minor piece overall or a single
// bishop each on squares of the same color.
func (b *Board) IsInsufficientMaterial() bool {
	return insufficientMaterial(b)
}

func insufficientMaterial(pos Position) bool {
	for _, c := range []Color{White, Black} {
		for _, pt := range []PieceType{Pawn, Rook, Queen} {
			if len(pos.Pieces(pt, c)) > 0 {
				return false
			}
		}
	}

	whiteBishops := pos.Pieces(Bishop, White)
	blackBishops := pos.Pieces(Bishop, Black)
	minors := len(whiteBishops) + len(blackBishops) +
		len(pos.Pieces(Knight, White)) + len(pos.Pieces(Knight, Black))

	if minors <= 1 {
		return true
	}
	if minors == 2 && len(whiteBishops) == 1 && len(blackBishops) == 1 {
		return squareShade(whiteBishops[0]) == squareShade(blackBishops[0])
	}
	return false
}

func squareShade(sq Square) int {
	return (sq.File() + sq.Rank()) & 1
}
