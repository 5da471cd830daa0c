package search

import (
	"context"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/eval"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/arborchess/chessengine/internal/movegen"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// maxPly bounds the killer table and the search's recursion depth (plenty for the
// engine's depth/time budgets per spec §5).
const maxPly = 128

// nullMoveReduction is the depth subtracted from a null-move probe (spec §4.10).
const nullMoveReduction = 2

// lmrMinDepth/lmrMinMoveIndex gate late-move reductions to deep-enough, late-enough
// quiet moves (spec §4.10).
const (
	lmrMinDepth     = 3
	lmrMinMoveIndex = 3
	lmrReduction    = 1
)

// maxExtensionCount caps the number of check extensions (spec §4.10 point 5, §9),
// matching the original's Engine::MAX_EXTENSION_COUNT
// (original_source/backend/include/engine/engine.h:95). Without this cap a long run of
// consecutive checks (e.g. a forced perpetual) would never net a depth decrease and
// negamax would recurse unbounded.
const maxExtensionCount = 5

// PV is one iterative-deepening result, grounded on the teacher's search.PV.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Move  board.Move
}

// Engine runs iterative-deepening negamax/PVS search over a game.Game, grounded on the
// teacher's pkg/search (pvs.go, alphabeta.go) and pkg/search/searchctl (iterative.go).
// Not safe for concurrent use: owns one transposition table and one set of move-
// ordering heuristics per instance (spec §5).
type Engine struct {
	Eval  eval.Evaluator
	TT    *Table
	QDepth int

	killers killerTable
	history historyTable
	nodes   uint64
}

// NewEngine constructs a search Engine with the given evaluator, transposition table,
// and quiescence-search depth cap.
func NewEngine(e eval.Evaluator, tt *Table, qdepth int) *Engine {
	return &Engine{Eval: e, TT: tt, QDepth: qdepth}
}

// Search performs iterative deepening from depth 1 up to maxDepth, stopping early when
// timeUp reports true between completed iterations (spec §4.10/§5). It returns the best
// move found, its score (relative to the side to move), and the deepest fully completed
// ply.
func (e *Engine) Search(ctx context.Context, g *game.Game, maxDepth int, timeUp func() bool) (board.Move, eval.Score, int) {
	e.history.Age()
	if e.TT != nil {
		e.TT.NewGeneration()
	}

	var bestMove board.Move
	var bestScore eval.Score
	deepest := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if contextx.IsCancelled(ctx) {
			break
		}

		e.nodes = 0
		score, move, ok := e.searchRoot(g, depth)
		if !ok {
			// searchRoot reports !ok only when the root has no legal moves; an iteration
			// is never cut short, since timeUp is checked only after it completes.
			break
		}

		bestScore, bestMove, deepest = score, move, depth
		logw.Debugf(ctx, "depth=%v nodes=%v score=%v move=%v", depth, e.nodes, bestScore, bestMove)

		if eval.IsMateScore(bestScore) {
			break // forced mate found at full width; deepening further cannot improve it
		}
		if timeUp != nil && timeUp() {
			break
		}
	}

	return bestMove, bestScore, deepest
}

func (e *Engine) searchRoot(g *game.Game, depth int) (eval.Score, board.Move, bool) {
	var buf [256]board.Move
	moves := movegen.Legal(g.Board, g.Turn(), buf[:0])
	if len(moves) == 0 {
		return 0, 0, false
	}

	ttMove, _, _, _, _ := e.probeTT(g)
	orderMoves(moves, ttMove, 0, &e.killers, &e.history, g.Turn())

	alpha, beta := eval.MinScore, eval.MaxScore
	best := moves[0]
	bestScore := eval.MinScore - 1

	for i, m := range moves {
		if !g.PushMove(m) {
			continue
		}
		var score eval.Score
		if i == 0 {
			score = -e.negamax(g, depth-1, 1, -beta, -alpha, true, 0)
		} else {
			score = -e.negamax(g, depth-1, 1, -alpha-1, -alpha, true, 0)
			if score > alpha && score < beta {
				score = -e.negamax(g, depth-1, 1, -beta, -score, true, 0)
			}
		}
		g.Undo()

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}

	if e.TT != nil {
		e.TT.Store(g.Hash(), best, bestScore, depth, ExactBound)
	}
	return bestScore, best, true
}

// negamax implements PVS with null-move pruning, late-move reductions, and check
// extensions (spec §4.10). extensions counts how many check extensions have already
// been applied on this line, so the cap at maxExtensionCount holds across the whole
// search path, not just the current call. Returns the score relative to the side to
// move at this node.
func (e *Engine) negamax(g *game.Game, depth, ply int, alpha, beta eval.Score, nullOK bool, extensions int) eval.Score {
	e.nodes++

	if stateEval := g.CurrentGameStateEvaluation(); stateEval != game.InProgress && stateEval != game.InCheck {
		if s, ok := eval.TerminalScore(stateEval, ply); ok {
			return s
		}
	}

	inCheck := g.IsInCheck()
	if inCheck && extensions < maxExtensionCount {
		depth++ // check extension: never let a check be evaluated as a leaf
		extensions++
	}

	if depth <= 0 {
		return e.quiescence(g, alpha, beta, e.QDepth)
	}

	ttMove, ttScore, ttDepth, ttBound, found := e.probeTT(g)
	if found && ttDepth >= depth {
		switch ttBound {
		case ExactBound:
			return ttScore
		case LowerBound:
			if ttScore > alpha {
				alpha = ttScore
			}
		case UpperBound:
			if ttScore < beta {
				beta = ttScore
			}
		}
		if alpha >= beta {
			return ttScore
		}
	}

	// Null-move pruning: skip a move entirely and see if the resulting position is
	// still so good it fails high, meaning the real move need not be searched deeply
	// (spec §4.10). Disabled in check and too close to the leaves.
	if nullOK && !inCheck && depth >= 3 && hasNonPawnMaterial(g) {
		if g.PushNull() {
			score := -e.negamax(g, depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false, extensions)
			g.Undo()
			if score >= beta {
				return beta
			}
		}
	}

	var buf [256]board.Move
	moves := movegen.Legal(g.Board, g.Turn(), buf[:0])
	if len(moves) == 0 {
		if inCheck {
			return eval.MinScore + 1000 + eval.Score(ply)
		}
		return eval.Draw
	}
	orderMoves(moves, ttMove, ply, &e.killers, &e.history, g.Turn())

	origAlpha := alpha
	var best board.Move
	bestScore := eval.MinScore - 1

	for i, m := range moves {
		if !g.PushMove(m) {
			continue
		}

		reduction := 0
		if i >= lmrMinMoveIndex && depth >= lmrMinDepth && !m.IsCapture() && !inCheck {
			if _, isPromo := m.Promotion(); !isPromo {
				reduction = lmrReduction
			}
		}

		var score eval.Score
		if i == 0 {
			score = -e.negamax(g, depth-1, ply+1, -beta, -alpha, true, extensions)
		} else {
			score = -e.negamax(g, depth-1-reduction, ply+1, -alpha-1, -alpha, true, extensions)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -e.negamax(g, depth-1, ply+1, -beta, -alpha, true, extensions)
			}
		}
		g.Undo()

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !m.IsCapture() {
				e.killers.Add(ply, m)
				e.history.Bump(g.Turn(), m, depth)
			}
			break
		}
	}

	bound := ExactBound
	switch {
	case bestScore <= origAlpha:
		bound = UpperBound
	case bestScore >= beta:
		bound = LowerBound
	}
	if e.TT != nil {
		e.TT.Store(g.Hash(), best, bestScore, depth, bound)
	}

	return bestScore
}

// deltaMargin is the material margin added to a quiescence capture's potential gain
// before it is allowed to stand a chance of raising alpha (spec §4.10 delta pruning),
// matching the original's Engine::DELTA_MARGIN
// (original_source/backend/include/engine/engine.h:94).
const deltaMargin = 150

// quiescence extends search through captures/queen-promotions/checks until the
// position is "quiet", with delta pruning and a standing-pat floor (spec §4.10).
func (e *Engine) quiescence(g *game.Game, alpha, beta eval.Score, depth int) eval.Score {
	e.nodes++

	standPat := e.Eval.Evaluate(context.Background(), g.Board, g.Turn())
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if depth <= 0 {
		return alpha
	}

	var buf [256]board.Move
	moves := movegen.Quiescence(g.Board, g.Turn(), buf[:0])
	orderMoves(moves, 0, maxPly-1, &e.killers, &e.history, g.Turn())

	for _, m := range moves {
		if cap, ok := m.Captured(); ok {
			if standPat+eval.NominalValue(cap)+deltaMargin < alpha {
				continue // delta pruning: even winning this capture outright can't help
			}
		}

		if !g.PushMove(m) {
			continue
		}
		score := -e.quiescence(g, -beta, -alpha, depth-1)
		g.Undo()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

func (e *Engine) probeTT(g *game.Game) (board.Move, eval.Score, int, Bound, bool) {
	if e.TT == nil {
		return 0, 0, 0, 0, false
	}
	return e.TT.Probe(g.Hash())
}

// hasNonPawnMaterial reports whether the side to move has any piece besides pawns and
// the king, used to disable null-move pruning in pawn/king-only endgames where zugzwang
// makes the null-move assumption ("a free tempo never helps") unsound.
func hasNonPawnMaterial(g *game.Game) bool {
	stm := g.Turn()
	b := g.Board
	return b.Piece(stm, board.Knight)|b.Piece(stm, board.Bishop)|b.Piece(stm, board.Rook)|b.Piece(stm, board.Queen) != 0
}
