package board_test

import (
	"math/rand"
	"testing"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/arborchess/chessengine/internal/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestZobristUpdateMatchesFromScratchHash exercises the hash-consistency property: the
// incremental Update must always agree with recomputing Hash from scratch after the
// same MakeMove (spec §8 hash-consistency property).
func TestZobristUpdateMatchesFromScratchHash(t *testing.T) {
	zt := board.NewZobristTable(42)
	b := newStartingBoard(t)

	moves := []board.Move{
		board.NewMove(board.E2, board.E4),
	}

	turn := board.White
	h := zt.Hash(b, turn)

	for _, m := range moves {
		prevCastling := b.Castling()
		prevEP := board.NoSquare
		if ep, ok := b.EnPassant(); ok {
			prevEP = ep
		}
		_, piece := b.PieceAt(m.From())

		b.MakeMove(m, turn)

		newCastling := b.Castling()
		newEP := board.NoSquare
		if ep, ok := b.EnPassant(); ok {
			newEP = ep
		}

		h = zt.Update(h, m, turn, piece, prevCastling, newCastling, prevEP, newEP)
		turn = turn.Opponent()

		want := zt.Hash(b, turn)
		assert.Equal(t, want, h, "incremental hash diverged from from-scratch hash")
	}
}

// TestZobristRandomWalkMatchesFromScratchHash plays N random legal moves from the
// starting position and checks, at every ply, that game.Game's incrementally
// maintained hash (built on top of Zobrist.Update) agrees with a from-scratch
// Zobrist.Hash recomputation of the resulting board (spec §8 testable property 1: "play
// N random legal moves and compare"). A single quiet pawn push only exercises the
// plain from/to-square toggle in Zobrist.Update; a random walk over many games is what
// actually drives play through captures, castling, and en passant often enough to
// catch a regression in those branches.
func TestZobristRandomWalkMatchesFromScratchHash(t *testing.T) {
	const games = 40
	const pliesPerGame = 80

	for seed := int64(0); seed < games; seed++ {
		zt := board.NewZobristTable(seed)
		g, err := game.NewFromFEN(zt, fen.Initial)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(seed))

		for ply := 0; ply < pliesPerGame; ply++ {
			var buf [256]board.Move
			legal := movegen.Legal(g.Board, g.Turn(), buf[:0])
			if len(legal) == 0 {
				break // checkmate or stalemate: nothing left to play
			}

			m := legal[rng.Intn(len(legal))]
			require.True(t, g.PushMove(m), "movegen.Legal produced an illegal move")

			want := zt.Hash(g.Board, g.Turn())
			assert.Equal(t, want, g.Hash(),
				"incremental hash diverged from from-scratch hash at seed=%v ply=%v move=%v", seed, ply, m)

			if g.CurrentGameStateEvaluation() == game.Checkmate || g.CurrentGameStateEvaluation() == game.Stalemate {
				break
			}
		}
	}
}

// TestZobristUpdateSpecialMoves drives specific positions through capture, castling,
// en passant, and promotion -- the four branches of Zobrist.Update (zobrist.go:97-115)
// a quiet pawn push or an unseeded random walk has no guarantee of ever reaching -- and
// checks the incremental hash against a from-scratch recomputation after each one.
func TestZobristUpdateSpecialMoves(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		from board.Square
		to   board.Square
		kind string
	}{
		{
			name: "capture",
			fen:  "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
			from: board.E4,
			to:   board.D5,
			kind: "capture",
		},
		{
			name: "kingside castle",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from: board.E1,
			to:   board.G1,
			kind: "castle",
		},
		{
			name: "queenside castle",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			from: board.E8,
			to:   board.C8,
			kind: "castle",
		},
		{
			name: "en passant",
			fen:  "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
			from: board.E5,
			to:   board.D6,
			kind: "ep",
		},
		{
			name: "promotion",
			fen:  "8/P6k/8/8/8/8/6p1/6K1 w - - 0 1",
			from: board.A7,
			to:   board.A8,
			kind: "promotion",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			zt := board.NewZobristTable(7)
			g, err := game.NewFromFEN(zt, tc.fen)
			require.NoError(t, err)

			var buf [256]board.Move
			legal := movegen.Legal(g.Board, g.Turn(), buf[:0])

			var chosen board.Move
			var found bool
			for _, m := range legal {
				if m.From() != tc.from || m.To() != tc.to {
					continue
				}
				switch tc.kind {
				case "capture":
					if _, ok := m.Captured(); !ok {
						continue
					}
				case "castle":
					if _, ok := m.Castle(); !ok {
						continue
					}
				case "ep":
					if !m.IsEnPassant() {
						continue
					}
				case "promotion":
					if _, ok := m.Promotion(); !ok {
						continue
					}
				}
				chosen = m
				found = true
				break
			}
			require.True(t, found, "no legal move matched the %v case", tc.kind)

			require.True(t, g.PushMove(chosen))

			want := zt.Hash(g.Board, g.Turn())
			assert.Equal(t, want, g.Hash(), "incremental hash diverged from from-scratch hash for %v", tc.name)
		})
	}
}
