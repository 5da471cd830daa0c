package eval

import (
	"context"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/game"
)

// Evaluator is a static position evaluator, grounded on the teacher's
// pkg/eval/eval.go Evaluator interface.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, relative to the side to move.
	Evaluate(ctx context.Context, b *board.Board, turn board.Color) Score
}

// Standard combines material, tapered piece-square tables, pawn structure, king
// safety, mobility and rook/file terms into a single White-relative score, then
// reorients it to the side to move.
type Standard struct{}

func (Standard) Evaluate(ctx context.Context, b *board.Board, turn board.Color) Score {
	phase := gamePhase(b)
	mgMat, egMat := material(b)

	total := taper(mgMat, egMat, phase)
	total += pieceSquareTables(b, phase)
	total += pawnStructure(b)
	total += kingSafety(b, phase)
	total += mobility(b)

	return Crop(total * Unit(turn))
}

// TerminalScore converts a game.GameStateEval into a side-to-move relative Score, or
// reports that the position is non-terminal (spec §4.9's terminal handling, which the
// search consults before calling Evaluate at all).
func TerminalScore(stateEval game.GameStateEval, ply int) (Score, bool) {
	switch stateEval {
	case game.Checkmate:
		return MinScore + 1000 + Score(ply), true
	case game.Stalemate, game.DrawByRepetition, game.DrawByFiftyMoveRule, game.DrawByInsufficientMaterial:
		return Draw, true
	default:
		return 0, false
	}
}
