package movegen_test

import (
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) (*board.Board, board.Color) {
	t.Helper()
	b, turn, _, _, err := fen.Decode(s)
	require.NoError(t, err)
	return b, turn
}

// TestStartingPositionHasTwentyLegalMoves covers spec §8's S1 scenario.
func TestStartingPositionHasTwentyLegalMoves(t *testing.T) {
	b, turn := decode(t, fen.Initial)

	var buf [256]board.Move
	moves := movegen.Legal(b, turn, buf[:0])
	assert.Len(t, moves, 20)
}

// TestDoublePushSetsEnPassantTarget covers spec §8's S1 en-passant-target half.
func TestDoublePushSetsEnPassantTarget(t *testing.T) {
	b, turn := decode(t, fen.Initial)

	m := board.NewMove(board.E2, board.E4)
	require.True(t, movegen.IsLegal(b, turn, m))

	b.MakeMove(m, turn)
	ep, ok := b.EnPassant()
	require.True(t, ok)
	assert.Equal(t, board.E3, ep)
}

// TestEnPassantCaptureIsGenerated covers spec §8's S2 scenario.
func TestEnPassantCaptureIsGenerated(t *testing.T) {
	// White pawn on d5, black just played e7e5: en passant target e6.
	b, _ := decode(t, "4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")

	var buf [256]board.Move
	moves := movegen.Legal(b, board.White, buf[:0])

	var found *board.Move
	for i := range moves {
		if moves[i].From() == board.D5 && moves[i].To() == board.E6 {
			found = &moves[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.IsEnPassant())
	cap, ok := found.Captured()
	require.True(t, ok)
	assert.Equal(t, board.Pawn, cap)
}

// TestBothCastlesLegalWhenPathsClear covers spec §8's S3 scenario.
func TestBothCastlesLegalWhenPathsClear(t *testing.T) {
	b, turn := decode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	var buf [256]board.Move
	moves := movegen.Legal(b, turn, buf[:0])

	kingside, queenside := false, false
	for _, m := range moves {
		if side, ok := m.Castle(); ok {
			if side == board.Kingside {
				kingside = true
			} else {
				queenside = true
			}
		}
	}
	assert.True(t, kingside)
	assert.True(t, queenside)
}

// TestIsInCheckDetectsRookCheck covers spec §8's S4 scenario: a rook giving check is
// detected, and a quiet king-and-rook position is not.
func TestIsInCheckDetectsRookCheck(t *testing.T) {
	quiet, turn := decode(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.False(t, checkState(quiet, turn))

	inCheck, turn2 := decode(t, "4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	assert.True(t, checkState(inCheck, turn2))
}

func checkState(b *board.Board, c board.Color) bool {
	return movegen.EvaluateCheckState(b, c) == movegen.Check
}

// TestPawnPromotionGeneratesAllFourPieces covers spec §8's S5 scenario.
func TestPawnPromotionGeneratesAllFourPieces(t *testing.T) {
	b, turn := decode(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	var buf [256]board.Move
	moves := movegen.Legal(b, turn, buf[:0])

	promos := map[board.Piece]bool{}
	for _, m := range moves {
		if m.From() == board.A7 && m.To() == board.A8 {
			if p, ok := m.Promotion(); ok {
				promos[p] = true
			}
		}
	}
	assert.True(t, promos[board.Queen])
	assert.True(t, promos[board.Rook])
	assert.True(t, promos[board.Bishop])
	assert.True(t, promos[board.Knight])
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	b, turn := decode(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.Equal(t, movegen.Checkmate, movegen.EvaluateCheckState(b, turn))
}

func TestCastleThroughCheckIsIllegal(t *testing.T) {
	// Black rook on f8 attacks f1, the square the king would pass through.
	b, turn := decode(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.True(t, hasCastle(b, turn, board.Kingside))

	b2, _ := decode(t, "5r2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	assert.False(t, hasCastle(b2, board.White, board.Kingside))
}

func hasCastle(b *board.Board, stm board.Color, side board.CastleSide) bool {
	var buf [256]board.Move
	for _, m := range movegen.Legal(b, stm, buf[:0]) {
		if s, ok := m.Castle(); ok && s == side {
			return true
		}
	}
	return false
}
