package board_test

import (
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartingBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.NewBoard()

	back := [8]board.Piece{board.Rook, board.Knight, board.Bishop, board.Queen, board.King, board.Bishop, board.Knight, board.Rook}
	for f := board.FileA; f <= board.FileH; f++ {
		b.AddPiece(back[f], board.White, board.NewSquare(f, board.Rank1))
		b.AddPiece(board.Pawn, board.White, board.NewSquare(f, board.Rank2))
		b.AddPiece(board.Pawn, board.Black, board.NewSquare(f, board.Rank7))
		b.AddPiece(back[f], board.Black, board.NewSquare(f, board.Rank8))
	}
	b.SetCastling(board.FullRights())
	return b
}

func TestMakeMoveThenUndoRestoresPosition(t *testing.T) {
	b := newStartingBoard(t)
	before := b.String()

	m := board.NewMove(board.E2, board.E4)
	b.MakeMove(m, board.White)
	assert.NotEqual(t, before, b.String())

	b.Undo(m, board.White, board.FullRights(), board.NoSquare)
	assert.Equal(t, before, b.String())
}

func TestEnPassantCaptureRemovesTargetPawn(t *testing.T) {
	b := board.NewBoard()
	b.AddPiece(board.King, board.White, board.E1)
	b.AddPiece(board.King, board.Black, board.E8)
	b.AddPiece(board.Pawn, board.White, board.E5)
	b.AddPiece(board.Pawn, board.Black, board.D5)
	b.SetEnPassant(board.D6)

	m := board.NewMove(board.E5, board.D6).WithCapture(board.Pawn).WithEnPassant()
	b.MakeMove(m, board.White)

	_, p := b.PieceAt(board.D6)
	require.Equal(t, board.Pawn, p)
	assert.True(t, b.IsEmpty(board.D5))

	b.Undo(m, board.White, board.Rights{}, board.D6)
	_, captured := b.PieceAt(board.D5)
	assert.Equal(t, board.Pawn, captured)
	assert.True(t, b.IsEmpty(board.D6))
}

func TestCastlingMovesRookAndClearsRights(t *testing.T) {
	b := board.NewBoard()
	b.AddPiece(board.King, board.White, board.E1)
	b.AddPiece(board.Rook, board.White, board.H1)
	b.AddPiece(board.King, board.Black, board.E8)
	b.SetCastling(board.FullRights())

	m := board.NewMove(board.E1, board.G1).WithCastle(board.Kingside)
	b.MakeMove(m, board.White)

	_, rook := b.PieceAt(board.F1)
	assert.Equal(t, board.Rook, rook)
	assert.False(t, b.Castling()[board.White][board.Kingside])
	assert.False(t, b.Castling()[board.White][board.Queenside])

	b.Undo(m, board.White, board.FullRights(), board.NoSquare)
	_, rookBack := b.PieceAt(board.H1)
	assert.Equal(t, board.Rook, rookBack)
	assert.True(t, b.Castling()[board.White][board.Kingside])
}

func TestPromotionReplacesWithChosenPiece(t *testing.T) {
	b := board.NewBoard()
	b.AddPiece(board.King, board.White, board.E1)
	b.AddPiece(board.King, board.Black, board.E8)
	b.AddPiece(board.Pawn, board.White, board.A7)

	m := board.NewMove(board.A7, board.A8).WithPromotion(board.Queen)
	b.MakeMove(m, board.White)

	_, p := b.PieceAt(board.A8)
	assert.Equal(t, board.Queen, p)

	b.Undo(m, board.White, board.Rights{}, board.NoSquare)
	_, pawn := b.PieceAt(board.A7)
	assert.Equal(t, board.Pawn, pawn)
	assert.True(t, b.IsEmpty(board.A8))
}

func TestRookAttacksRespectsBlockers(t *testing.T) {
	occ := board.BitMask(board.D4) | board.BitMask(board.D6)
	attacks := board.RookAttacks(board.D4, occ)
	assert.True(t, attacks.IsSet(board.D5))
	assert.True(t, attacks.IsSet(board.D6))
	assert.False(t, attacks.IsSet(board.D7))
}

func TestBishopAttacksRespectsBlockers(t *testing.T) {
	occ := board.BitMask(board.D4) | board.BitMask(board.F6)
	attacks := board.BishopAttacks(board.D4, occ)
	assert.True(t, attacks.IsSet(board.E5))
	assert.True(t, attacks.IsSet(board.F6))
	assert.False(t, attacks.IsSet(board.G7))
}
