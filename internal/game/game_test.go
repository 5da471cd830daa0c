package game_test

import (
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, s string) *game.Game {
	t.Helper()
	zt := board.NewZobristTable(7)
	g, err := game.NewFromFEN(zt, s)
	require.NoError(t, err)
	return g
}

func TestMakeMoveThenUndoRoundTrips(t *testing.T) {
	g := newGame(t, fen.Initial)
	before := g.Hash()

	require.True(t, g.MakeMove(board.E2, board.E4, board.NoPiece))
	assert.NotEqual(t, before, g.Hash())
	assert.Equal(t, board.Black, g.Turn())

	require.True(t, g.Undo())
	assert.Equal(t, before, g.Hash())
	assert.Equal(t, board.White, g.Turn())
}

func TestIllegalMoveIsRejected(t *testing.T) {
	g := newGame(t, fen.Initial)
	assert.False(t, g.MakeMove(board.E2, board.E5, board.NoPiece))
}

func TestThreefoldRepetitionIsDetected(t *testing.T) {
	g := newGame(t, fen.Initial)

	shuffle := func() {
		require.True(t, g.MakeMove(board.G1, board.F3, board.NoPiece))
		require.True(t, g.MakeMove(board.G8, board.F6, board.NoPiece))
		require.True(t, g.MakeMove(board.F3, board.G1, board.NoPiece))
		require.True(t, g.MakeMove(board.F6, board.G8, board.NoPiece))
	}

	shuffle()
	assert.NotEqual(t, game.DrawByRepetition, g.CurrentGameStateEvaluation())
	shuffle()
	assert.Equal(t, game.DrawByRepetition, g.CurrentGameStateEvaluation())
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	g := newGame(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, game.DrawByInsufficientMaterial, g.CurrentGameStateEvaluation())
}

func TestCheckmateIsDetected(t *testing.T) {
	// Fool's mate.
	g := newGame(t, fen.Initial)
	require.True(t, g.MakeMove(board.F2, board.F3, board.NoPiece))
	require.True(t, g.MakeMove(board.E7, board.E5, board.NoPiece))
	require.True(t, g.MakeMove(board.G2, board.G4, board.NoPiece))
	require.True(t, g.MakeMove(board.D8, board.H4, board.NoPiece))

	assert.Equal(t, game.Checkmate, g.CurrentGameStateEvaluation())
}
