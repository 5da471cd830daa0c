package book_test

import (
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/book"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLinesAndGetMoveFindsReply(t *testing.T) {
	zt := board.NewZobristTable(1)
	bk, err := book.CompileLines(zt, []book.Line{
		{"e2e4", "c7c5"},
		{"e2e4", "e7e5"},
	}, 1)
	require.NoError(t, err)

	b, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m := bk.GetMove(zt.Hash(b, turn))
	require.False(t, m.IsNull())
	assert.Equal(t, board.E2, m.From())
	assert.Equal(t, board.E4, m.To())
}

func TestFindReturnsBothRepliesAfterOpeningMove(t *testing.T) {
	zt := board.NewZobristTable(1)
	bk, err := book.CompileLines(zt, []book.Line{
		{"e2e4", "c7c5"},
		{"e2e4", "e7e5"},
	}, 1)
	require.NoError(t, err)

	b, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	e2e4 := board.NewMove(board.E2, board.E4)
	b.MakeMove(e2e4, turn)
	turn = turn.Opponent()

	replies := bk.Find(zt.Hash(b, turn))
	assert.Len(t, replies, 2)
}

func TestGetMoveForBoardPatchesFieldsAndReturnsNullWhenAbsent(t *testing.T) {
	zt := board.NewZobristTable(1)
	bk, err := book.CompileLines(zt, []book.Line{{"e2e4"}}, 1)
	require.NoError(t, err)

	b, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m := bk.GetMoveForBoard(zt.Hash(b, turn), b, turn)
	require.False(t, m.IsNull())
	assert.Equal(t, board.E2, m.From())
	assert.Equal(t, board.E4, m.To())

	// A hash with no recorded entry patches to the null sentinel.
	none := bk.GetMoveForBoard(^zt.Hash(b, turn), b, turn)
	assert.True(t, none.IsNull())
}

func TestEmptyBookNeverReturnsAMove(t *testing.T) {
	m := book.Empty.GetMove(0xdeadbeef)
	assert.True(t, m.IsNull())
}

func TestCompileLinesRejectsIllegalLine(t *testing.T) {
	zt := board.NewZobristTable(1)
	_, err := book.CompileLines(zt, []book.Line{{"e2e5"}}, 1)
	assert.Error(t, err)
}
