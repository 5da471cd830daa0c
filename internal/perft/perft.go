// Package perft counts leaf nodes of the legal move tree to a fixed depth, the
// standard correctness harness for move generation (spec §8.3), grounded on the
// teacher's test style of exercising board/movegen directly rather than through search.
package perft

import (
	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/movegen"
)

// Count returns the number of leaf positions reachable from b (with stm to move) in
// exactly depth plies.
func Count(b *board.Board, stm board.Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var buf [256]board.Move
	moves := movegen.Legal(b, stm, buf[:0])

	if depth == 1 {
		return uint64(len(moves))
	}

	var total uint64
	for _, m := range moves {
		prevCastling := b.Castling()
		prevEP := board.NoSquare
		if ep, ok := b.EnPassant(); ok {
			prevEP = ep
		}

		b.MakeMove(m, stm)
		total += Count(b, stm.Opponent(), depth-1)
		b.Undo(m, stm, prevCastling, prevEP)
	}
	return total
}

// Divide returns the perft count broken down by each legal root move, useful for
// isolating a move-generation bug against a reference engine's per-move counts.
func Divide(b *board.Board, stm board.Color, depth int) map[string]uint64 {
	var buf [256]board.Move
	moves := movegen.Legal(b, stm, buf[:0])

	out := make(map[string]uint64, len(moves))
	for _, m := range moves {
		prevCastling := b.Castling()
		prevEP := board.NoSquare
		if ep, ok := b.EnPassant(); ok {
			prevEP = ep
		}

		b.MakeMove(m, stm)
		out[m.String()] = Count(b, stm.Opponent(), depth-1)
		b.Undo(m, stm, prevCastling, prevEP)
	}
	return out
}
