package eval

import "github.com/arborchess/chessengine/internal/board"

// NominalValue is the middlegame material value of a piece in centipawns, grounded on
// the teacher's pkg/eval/eval.go NominalValue (there expressed in whole pawns; widened
// to centipawns here to give the tapered tables sub-pawn resolution).
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 320
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 0
	default:
		return 0
	}
}

// endgameValue is the same piece's endgame-table material value; bishops and knights
// separate slightly in the endgame (bishop pair becomes more valuable), grounded on the
// standard tapered-eval convention used across the example engines' PST literature.
func endgameValue(p board.Piece) Score {
	switch p {
	case board.Bishop:
		return 330
	default:
		return NominalValue(p)
	}
}

// phaseWeight is this piece's contribution to the game-phase counter used to blend
// middlegame/endgame tables (spec's supplemented tapered-eval feature).
func phaseWeight(p board.Piece) int {
	switch p {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

// totalPhase is the phase counter value for a full starting set of minor/major pieces:
// 4*1 (knights) + 4*1 (bishops) + 4*2 (rooks) + 2*4 (queens) = 24.
const totalPhase = 4*1 + 4*1 + 4*2 + 2*4

// gamePhase returns a 0 (pure endgame) .. totalPhase (full middlegame) blend weight.
func gamePhase(b *board.Board) int {
	phase := 0
	for _, c := range [2]board.Color{board.White, board.Black} {
		for p := board.Knight; p <= board.Queen; p++ {
			phase += b.Piece(c, p).PopCount() * phaseWeight(p)
		}
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

// taper blends a middlegame and endgame term by the current phase.
func taper(mg, eg Score, phase int) Score {
	return Score((int(mg)*phase + int(eg)*(totalPhase-phase)) / totalPhase)
}

// material returns White-relative material balance, separately tallied for the mg and
// eg tables since bishops value differently across phases.
func material(b *board.Board) (mg, eg Score) {
	for p := board.Pawn; p <= board.King; p++ {
		wn := b.Piece(board.White, p).PopCount()
		bn := b.Piece(board.Black, p).PopCount()
		diff := wn - bn
		mg += Score(diff) * NominalValue(p)
		eg += Score(diff) * endgameValue(p)
	}
	return mg, eg
}
