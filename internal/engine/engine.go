// Package engine assembles the board, evaluator, transposition table, search, and
// opening book into the public façade described by spec §6.1, grounded on the
// teacher's pkg/engine/engine.go (functional-options construction, Reset/Options
// shape) adapted from the teacher's async searchctl.Launcher/Handle streaming design
// to a single synchronous GetMove call, since the spec's Engine::get_move is a blocking
// call returning one Move rather than a PV stream.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/book"
	"github.com/arborchess/chessengine/internal/eval"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/arborchess/chessengine/internal/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine construction options, grounded on the teacher's engine.Options.
type Options struct {
	// TimeLimit is checked after each completed iterative-deepening iteration; an
	// iteration already under way runs to completion. Zero means MaxDepth governs instead.
	TimeLimit time.Duration
	// MaxDepth is the iterative-deepening depth ceiling (spec §6.1 max_depth).
	MaxDepth int
	// QuiescenceDepth caps quiescence search recursion (spec §6.1 quiescence_depth).
	QuiescenceDepth int
	// HashMB is the transposition table size in MB. Zero disables the table.
	HashMB uint
	// Seed seeds the Zobrist table. An opening book installed via SetBook carries its
	// own tie-break seed.
	Seed int64
}

func (o Options) String() string {
	return fmt.Sprintf("{time=%v, maxDepth=%v, qDepth=%v, hash=%vMB}", o.TimeLimit, o.MaxDepth, o.QuiescenceDepth, o.HashMB)
}

// Option configures an Engine at construction time.
type Option func(*Options)

func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }
func WithHash(mb uint) Option               { return func(o *Options) { o.HashMB = mb } }
func WithSeed(seed int64) Option            { return func(o *Options) { o.Seed = seed } }

// Engine is the public façade combining board representation, evaluation, search, the
// transposition table, and the opening book (spec §6.1, "C1-C11 assembled").
type Engine struct {
	opts Options
	zt   *board.ZobristTable
	tt   *search.Table
	eval eval.Evaluator
	book *book.Book

	mu        sync.Mutex // guards book, swapped out via SetBook concurrently with GetMove
	lastDepth atomic.Int32
	lastEval  atomic.Int32
}

// New constructs an Engine per spec §6.1's Engine::new(time_limit_ms, max_depth,
// quiescence_depth), generalized via functional options for the ambient knobs (hash
// size, seed) the teacher's engine.New also exposes.
func New(timeLimitMs, maxDepth, quiescenceDepth int, opts ...Option) *Engine {
	o := Options{
		TimeLimit:       time.Duration(timeLimitMs) * time.Millisecond,
		MaxDepth:        maxDepth,
		QuiescenceDepth: quiescenceDepth,
		HashMB:          32,
	}
	for _, fn := range opts {
		fn(&o)
	}

	e := &Engine{
		opts: o,
		zt:   board.NewZobristTable(o.Seed),
		eval: eval.Standard{},
		book: book.Empty,
	}
	if o.HashMB > 0 {
		e.tt = search.NewTable(uint64(o.HashMB) << 20)
	}
	return e
}

// Zobrist returns the table used to hash positions for this engine, so hosts can build
// game.Game values that share it.
func (e *Engine) Zobrist() *board.ZobristTable {
	return e.zt
}

// SetBook installs an opening book to consult before searching.
func (e *Engine) SetBook(b *book.Book) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.book = b
}

// Name returns the engine's name and version string.
func (e *Engine) Name() string {
	return fmt.Sprintf("chessengine %v", version)
}

// MaxDepthSearched returns the deepest fully completed iterative-deepening ply from the
// most recent GetMove call (spec §6.1 Engine::max_depth_searched).
func (e *Engine) MaxDepthSearched() int {
	return int(e.lastDepth.Load())
}

// CurrentEvaluation returns the most recent search's score in centipawns, relative to
// the side that moved (spec §6.1 Engine::current_evaluation).
func (e *Engine) CurrentEvaluation() int16 {
	return int16(e.lastEval.Load())
}

// GetMove computes the engine's choice of move for g's current position (spec §6.1
// Engine::get_move). It does not apply the move; callers pass the result to
// game.Game.PushMove or MakeMove. Consults the opening book first; falls back to
// search once the book is exhausted for this line.
func (e *Engine) GetMove(ctx context.Context, g *game.Game) (board.Move, error) {
	if m, ok := e.consultBook(g); ok {
		logw.Debugf(ctx, "book move: %v", m)
		return m, nil
	}

	searcher := search.NewEngine(e.eval, e.tt, e.opts.QuiescenceDepth)

	var timeUp func() bool
	if e.opts.TimeLimit > 0 {
		deadline := time.Now().Add(e.opts.TimeLimit)
		timeUp = func() bool { return time.Now().After(deadline) }
	}

	maxDepth := e.opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	move, score, depth := searcher.Search(ctx, g, maxDepth, timeUp)
	if move == 0 {
		return 0, fmt.Errorf("no legal move available")
	}

	e.lastDepth.Store(int32(depth))
	e.lastEval.Store(int32(score))

	logw.Infof(ctx, "GetMove: depth=%v score=%v move=%v", depth, score, move)
	return move, nil
}

func (e *Engine) consultBook(g *game.Game) (board.Move, bool) {
	e.mu.Lock()
	b := e.book
	e.mu.Unlock()
	if b == nil {
		return 0, false
	}

	m := b.GetMoveForBoard(g.Hash(), g.Board, g.Turn())
	if m.IsNull() {
		return 0, false
	}
	return m, true
}
