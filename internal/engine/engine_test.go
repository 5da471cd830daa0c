package engine_test

import (
	"context"
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/book"
	"github.com/arborchess/chessengine/internal/engine"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMoveFindsMateInOne(t *testing.T) {
	e := engine.New(0, 1, 2, engine.WithHash(1), engine.WithSeed(3))
	g, err := game.NewFromFEN(e.Zobrist(), "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	require.NoError(t, err)

	m, err := e.GetMove(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, board.D8, m.From())
	assert.Equal(t, board.H4, m.To())
	assert.Equal(t, 1, e.MaxDepthSearched())
}

func TestGetMovePrefersBookLineWhenPresent(t *testing.T) {
	e := engine.New(0, 3, 2, engine.WithHash(1), engine.WithSeed(1))
	bk, err := book.CompileLines(e.Zobrist(), []book.Line{{"e2e4"}}, 1)
	require.NoError(t, err)
	e.SetBook(bk)

	g, err := game.NewFromFEN(e.Zobrist(), fen.Initial)
	require.NoError(t, err)

	m, err := e.GetMove(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, board.E2, m.From())
	assert.Equal(t, board.E4, m.To())
}

func TestGetMoveErrorsWithNoLegalMoves(t *testing.T) {
	e := engine.New(0, 2, 1, engine.WithHash(1))
	// Black is stalemated.
	g, err := game.NewFromFEN(e.Zobrist(), "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	_, err = e.GetMove(context.Background(), g)
	assert.Error(t, err)
}
