// Package book implements the opening book (spec §4.11/§6.5, C11): a table of known
// replies keyed by position hash, grounded on the teacher's pkg/engine/book.go. Per
// spec §1, opening-book *data* loading (file format, payload) is an external
// collaborator's concern -- this package only consumes already-parsed
// {positionHash -> moves[]} entries (spec §6.5 OpeningBook::load) and enriches a picked
// move against the live board before handing it back.
package book

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/movegen"
)

// Entry pairs a position's Zobrist hash with its recorded replies, the unit the
// external book loader supplies (spec §6.5's `Iterator<(hash, moves: Move[])>`).
type Entry struct {
	Hash  uint64
	Moves []board.Move
}

// Book looks up known replies for a position by its Zobrist hash.
type Book struct {
	moves map[uint64][]board.Move
	rng   *rand.Rand
}

// Empty is a book with no entries, always returning the null-move sentinel.
var Empty = &Book{moves: map[uint64][]board.Move{}}

// Load compiles a set of externally-parsed entries into a Book (spec §6.5
// OpeningBook::load). seed controls the deterministic tie-break order GetMove uses
// when a position has more than one recorded reply (spec's Open Question on
// opening-book move selection: resolved as seeded-random rather than always-first, so
// repeated games from the same book don't play an identical line every time, while
// remaining reproducible for a fixed seed -- spec §5). GetMove/GetMoveForBoard use it.
func Load(entries []Entry, seed int64) *Book {
	moves := make(map[uint64][]board.Move, len(entries))
	for _, e := range entries {
		moves[e.Hash] = append(moves[e.Hash], e.Moves...)
	}
	return &Book{moves: moves, rng: rand.New(rand.NewSource(seed))}
}

// GetMove returns a recorded reply for the position with the given hash, chosen
// (deterministically, given the book's seed) among the recorded replies, or the
// NoMove sentinel if the position has none (spec §6.5 get_move(hash)).
func (bk *Book) GetMove(hash uint64) board.Move {
	moves := bk.moves[hash]
	if len(moves) == 0 {
		return board.NoMove
	}
	return moves[bk.rng.Intn(len(moves))]
}

// GetMoveForBoard returns a recorded reply for hash, patched against the live board so
// its castle/en-passant/captured-piece fields agree with the current position (spec
// §6.5 get_move(hash, board)): book entries may have been recorded against a replay of
// the line and only carry from/to/promotion, so the picked move is re-resolved against
// b's own legal-move set. Returns the NoMove sentinel if absent or no longer legal in
// this position (defends against a book built from a slightly different rule variant,
// or a transposition whose hash collides but whose legal moves differ).
func (bk *Book) GetMoveForBoard(hash uint64, b *board.Board, stm board.Color) board.Move {
	picked := bk.GetMove(hash)
	if picked.IsNull() {
		return board.NoMove
	}

	wantPromo, wantHasPromo := picked.Promotion()

	var buf [256]board.Move
	for _, cand := range movegen.Legal(b, stm, buf[:0]) {
		if cand.From() != picked.From() || cand.To() != picked.To() {
			continue
		}
		gotPromo, gotHasPromo := cand.Promotion()
		if gotHasPromo != wantHasPromo {
			continue
		}
		if gotHasPromo && gotPromo != wantPromo {
			continue
		}
		return cand
	}
	return board.NoMove
}

// Find returns the raw recorded replies, if any, for the given position hash.
func (bk *Book) Find(hash uint64) []board.Move {
	return bk.moves[hash]
}

// Line is a sequence of moves in coordinate notation, e.g. "e2e4", used by
// CompileLines to build a Book from human-authored opening repertoires (e.g. in tests
// or a small bundled default book) rather than from a pre-parsed external payload.
type Line []string

// CompileLines replays each line from the initial position using zt to hash every
// position reached, and returns the Entry set in the shape Load expects. This is the
// one piece of "opening-book data" this module manufactures itself; any other source
// (a file format, a network payload) is the external collaborator spec §1 describes,
// and only needs to produce the same Entry shape.
func CompileLines(zt *board.ZobristTable, lines []Line, seed int64) (*Book, error) {
	type keyedMove struct {
		hash uint64
		move board.Move
	}
	var all []keyedMove

	for _, line := range lines {
		b, turn, _, _, err := fen.Decode(fen.Initial)
		if err != nil {
			return nil, err
		}

		for _, str := range line {
			h := zt.Hash(b, turn)

			var buf [256]board.Move
			candidates := movegen.Legal(b, turn, buf[:0])

			found := false
			for _, m := range candidates {
				if m.String() != str {
					continue
				}
				found = true
				all = append(all, keyedMove{hash: h, move: m})
				b.MakeMove(m, turn)
				turn = turn.Opponent()
				break
			}
			if !found {
				return nil, fmt.Errorf("invalid opening line %v: move %q not legal", line, str)
			}
		}
	}

	dedup := map[uint64]map[board.Move]bool{}
	for _, km := range all {
		if dedup[km.hash] == nil {
			dedup[km.hash] = map[board.Move]bool{}
		}
		dedup[km.hash][km.move] = true
	}

	entries := make([]Entry, 0, len(dedup))
	for h, set := range dedup {
		var list []board.Move
		for m := range set {
			list = append(list, m)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		entries = append(entries, Entry{Hash: h, Moves: list})
	}

	return Load(entries, seed), nil
}
