package eval_test

import (
	"context"
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/eval"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStartingPositionIsEvaluatedAsEqual covers the trivial case of the symmetric
// evaluation property (spec §8.5): the opening position has no material or positional
// imbalance, so it scores to zero for the side to move.
func TestStartingPositionIsEvaluatedAsEqual(t *testing.T) {
	b, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	s := eval.Standard{}
	assert.Equal(t, eval.Score(0), s.Evaluate(context.Background(), b, turn))
}

// TestEvaluationIsSideToMoveRelative covers spec §8.5: evaluating the same material
// imbalance from each side's perspective must produce opposite scores.
func TestEvaluationIsSideToMoveRelative(t *testing.T) {
	// White is up a queen.
	b, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	s := eval.Standard{}
	white := s.Evaluate(context.Background(), b, board.White)
	black := s.Evaluate(context.Background(), b, board.Black)

	assert.Positive(t, white)
	assert.Equal(t, white, -black)
}

func TestTerminalScoreConvertsGameStates(t *testing.T) {
	mate, ok := eval.TerminalScore(game.Checkmate, 3)
	require.True(t, ok)
	assert.True(t, eval.IsMateScore(mate))

	draw, ok := eval.TerminalScore(game.DrawByFiftyMoveRule, 3)
	require.True(t, ok)
	assert.Equal(t, eval.Draw, draw)

	_, ok = eval.TerminalScore(game.InProgress, 3)
	assert.False(t, ok)
}
