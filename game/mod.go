package game

// Move is a legal move produced by a Position. Moves are only meaningful to
// the Position that generated them.
type Move interface {
	String() string // UCI notation
}

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return 1 - c
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType indexes the packed tables, so the order is fixed.
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = -1
)

// Square is 0 for a1 through 63 for h8.
type Square int8

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

// Position is the live, mutable position searched and evaluated in place.
// Apply mutates the position and returns the matching undo; callers must run
// undos in reverse order of application.
type Position interface {
	LegalMoves(capturesOnly bool) []Move
	Apply(move Move) (undo func())
	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsRepeatedPosition() bool
	SideToMove() Color
	PieceAt(sq Square) (PieceType, Color, bool)
	Pieces(pt PieceType, c Color) []Square
}

// Evaluate scores a position in (-1, 1) from the perspective of the side to
// move. Positive favors the side to move.
type Evaluate func(Position) float64
