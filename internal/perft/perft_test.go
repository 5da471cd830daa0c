package perft_test

import (
	"testing"

	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/perft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStartingPositionLeafCounts covers spec §8.3's reference leaf counts for the
// standard starting position.
func TestStartingPositionLeafCounts(t *testing.T) {
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	b, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	for _, c := range cases {
		got := perft.Count(b, turn, c.depth)
		assert.Equal(t, c.want, got, "depth %d", c.depth)
	}
}

// TestKiwipeteLeafCounts covers spec §8.3's Kiwipete stress position, which exercises
// castling, en passant, and promotions all at once.
func TestKiwipeteLeafCounts(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	b, turn, _, _, err := fen.Decode(kiwipete)
	require.NoError(t, err)

	for _, c := range cases {
		got := perft.Count(b, turn, c.depth)
		assert.Equal(t, c.want, got, "depth %d", c.depth)
	}
}
