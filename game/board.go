package game

import (
	"errors"
	"fmt"

	"chessbot/utils"

	"github.com/notnil/chess"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrIllegalMove = errors.New("illegal move")
)

// Board adapts notnil/chess positions to the make/undo Position contract by
// keeping the history as a stack. The top of the stack is the live position.
type Board struct {
	history []frame
}

type frame struct {
	pos *chess.Position
	key positionKey
}

// positionKey identifies a position for repetition: placement, side to move,
// castling rights and en passant square, ignoring the move counters.
type positionKey struct {
	placement string
	turn      chess.Color
	castling  chess.CastleRights
	enPassant chess.Square
}

func newFrame(pos *chess.Position) frame {
	return frame{
		pos: pos,
		key: positionKey{
			placement: pos.Board().String(),
			turn:      pos.Turn(),
			castling:  pos.CastleRights(),
			enPassant: pos.EnPassantSquare(),
		},
	}
}

// NewBoard returns a board without prior history.
func NewBoard(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	g := chess.NewGame(opt)
	return &Board{history: []frame{newFrame(g.Position())}}, nil
}

// BoardFromGame returns a board whose history is the game's positions, so
// repetitions of earlier game positions are detected during search.
func BoardFromGame(g *chess.Game) *Board {
	positions := g.Positions()
	history := make([]frame, len(positions))
	for i, pos := range positions {
		history[i] = newFrame(pos)
	}
	return &Board{history: history}
}

func (b *Board) current() *chess.Position {
	return b.history[len(b.history)-1].pos
}

func (b *Board) FEN() string {
	return b.current().String()
}

// Depth is the number of positions in the history, the live one included.
func (b *Board) Depth() int {
	return len(b.history)
}

func (b *Board) LegalMoves(capturesOnly bool) []Move {
	valid := b.current().ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, m := range valid {
		if capturesOnly && !m.HasTag(chess.Capture) && !m.HasTag(chess.EnPassant) {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}

func (b *Board) Apply(move Move) func() {
	m, ok := move.(*chess.Move)
	if !ok {
		panic(fmt.Sprintf("move %v was not generated by a board", move))
	}
	b.history = append(b.history, newFrame(b.current().Update(m)))
	depth := len(b.history)
	return func() {
		if len(b.history) != depth {
			panic(fmt.Sprintf("undo of %s out of order: depth %d, want %d", m, len(b.history), depth))
		}
		b.history[depth-1] = frame{}
		b.history = b.history[:depth-1]
	}
}

// ParseMove resolves UCI text against the legal moves of the live position.
func (b *Board) ParseMove(uci string) (Move, error) {
	moves := b.LegalMoves(false)
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	i := utils.FindIndex(names, uci)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrIllegalMove, uci, b.FEN())
	}
	return moves[i], nil
}

func (b *Board) IsCheckmate() bool {
	return b.current().Status() == chess.Checkmate
}

func (b *Board) IsStalemate() bool {
	return b.current().Status() == chess.Stalemate
}

// IsRepeatedPosition reports whether the live position occurred earlier in
// the history.
func (b *Board) IsRepeatedPosition() bool {
	key := b.history[len(b.history)-1].key
	for _, f := range b.history[:len(b.history)-1] {
		if f.key == key {
			return true
		}
	}
	return false
}

func (b *Board) SideToMove() Color {
	return fromChessColor(b.current().Turn())
}

func (b *Board) PieceAt(sq Square) (PieceType, Color, bool) {
	p := b.current().Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return NoPieceType, White, false
	}
	return fromChessPieceType(p.Type()), fromChessColor(p.Color()), true
}

func (b *Board) Pieces(pt PieceType, c Color) []Square {
	var squares []Square
	board := b.current().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		if fromChessPieceType(p.Type()) == pt && fromChessColor(p.Color()) == c {
			squares = append(squares, Square(sq))
		}
	}
	return squares
}

func fromChessColor(c chess.Color) Color {
	if c == chess.Black {
		return Black
	}
	return White
}

func fromChessPieceType(pt chess.PieceType) PieceType {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	default:
		return NoPieceType
	}
}
