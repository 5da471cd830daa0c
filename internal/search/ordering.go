package search

import (
	"sort"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/eval"
)

// historyTable is the history heuristic: a [color][from][to] score bumped by depth^2 on
// a quiet move that causes a beta cutoff (spec §4.8).
type historyTable [board.NumColors][64][64]int

// Age scales every history score by 3/4 (rounding toward zero), so history decays
// between top-level searches rather than persisting unboundedly.
func (h *historyTable) Age() {
	for c := range h {
		for f := range h[c] {
			for t := range h[c][f] {
				h[c][f][t] = h[c][f][t] * 3 / 4
			}
		}
	}
}

func (h *historyTable) Bump(stm board.Color, m board.Move, depth int) {
	h[stm][m.From()][m.To()] += depth * depth
}

// killerTable stores up to two non-capture moves per ply that recently caused a beta
// cutoff (spec §4.8).
type killerTable struct {
	moves [maxPly][2]board.Move
}

func (k *killerTable) Add(ply int, m board.Move) {
	if ply >= maxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *killerTable) IsKiller(ply int, m board.Move) bool {
	if ply >= maxPly {
		return false
	}
	return k.moves[ply][0] == m || k.moves[ply][1] == m
}

// orderMoves sorts moves in place for best-first search: the transposition-table move
// first, then captures ranked by victim value (MVV, grounded on the teacher's
// board.ByMVVLVA/search.MVVLVA -- the attacker side of MVV-LVA is omitted since the
// packed Move does not carry the moving piece type, and victim value dominates the
// ordering anyway), then killer moves, then quiet moves by history score.
func orderMoves(moves []board.Move, ttMove board.Move, ply int, killers *killerTable, history *historyTable, stm board.Color) {
	score := make([]int, len(moves))
	for i, m := range moves {
		switch {
		case m == ttMove:
			score[i] = 1 << 30
		case m.IsCapture():
			cap, _ := m.Captured()
			score[i] = (1 << 20) + int(eval.NominalValue(cap))*16
		case killers.IsKiller(ply, m):
			score[i] = 1 << 15
		default:
			score[i] = history[stm][m.From()][m.To()]
		}
	}

	sort.Slice(moves, func(i, j int) bool {
		return score[i] > score[j]
	})
}
