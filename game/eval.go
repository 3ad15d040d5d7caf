package game

import "math"

const (
	MaxPhase = 24

	// scoreScale maps centipawns onto tanh; scoreCeiling keeps heuristic
	// scores strictly inside the ±1 reserved for mate.
	scoreScale   = 250.0
	scoreCeiling = 0.9
)

var (
	middlegameValues = [6]int{82, 337, 365, 477, 1025, 0}
	endgameValues    = [6]int{94, 281, 297, 512, 936, 0}
	phaseIncrements  = [6]int{0, 1, 1, 2, 4, 0}
)

// scoredPieces excludes the king.
var scoredPieces = []PieceType{Pawn, Knight, Bishop, Rook, Queen}

// EvaluatePosition scores a position in (-1, 1) from the side to move's
// perspective: exactly 0 for draws, exactly -1 when checkmated, otherwise a
// squashed tapered piece-square score.
func EvaluatePosition(pos Position) float64 {
	if pos.IsInsufficientMaterial() || pos.IsRepeatedPosition() {
		return 0
	}
	if pos.IsCheckmate() {
		return -1
	}
	if pos.IsStalemate() {
		return 0
	}

	score := Taper(Tally(pos))
	if pos.SideToMove() == Black {
		score = -score
	}
	return scoreCeiling * math.Tanh(float64(score)/scoreScale)
}

// Material is the per-color middlegame and endgame sums of piece values and
// piece-square bonuses, plus the game phase.
type Material struct {
	Middlegame [2]int
	Endgame    [2]int
	Phase      int
}

// Tally sums both tables over every non-king piece on the board.
func Tally(pos Position) Material {
	var m Material
	for _, c := range []Color{White, Black} {
		for _, pt := range scoredPieces {
			for _, sq := range pos.Pieces(pt, c) {
				m.Middlegame[c] += middlegameValues[pt] + middlegameBonus(pt, c, sq)
				m.Endgame[c] += endgameValues[pt] + endgameBonus(pt, c, sq)
				m.Phase += phaseIncrements[pt]
			}
		}
	}
	if m.Phase > MaxPhase {
		m.Phase = MaxPhase
	}
	return m
}

// Taper interpolates between the middlegame and endgame differentials by
// phase, from White's perspective.
func Taper(m Material) int {
	mg := m.Middlegame[White] - m.Middlegame[Black]
	eg := m.Endgame[White] - m.Endgame[Black]
	return (mg*m.Phase + eg*(MaxPhase-m.Phase)) / MaxPhase
}
