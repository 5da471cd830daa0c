// Package search implements iterative-deepening negamax/PVS search over a game.Game
// (spec §4.8/§4.10, C9/C10), grounded on the teacher's pkg/search (transposition.go,
// pvs.go) and pkg/search/searchctl (iterative.go), generalized from the teacher's
// lock-free single-entry table to the spec's bucketed 4-way table and from the
// teacher's persistent-position PushMove/PopMove to the same style over game.Game.
package search

import (
	"math/bits"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/eval"
)

// Bound represents whether a stored score is exact, or a lower/upper bound produced by
// a beta or alpha cutoff, grounded on the teacher's search.Bound.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

// entry is one transposition-table slot. 24 bytes (19 bytes of fields, padded).
type entry struct {
	hash       uint64
	move       board.Move
	score      eval.Score
	depth      int16
	generation uint16
	bound      Bound
}

// bucketSize is the number of entries probed per hash index before falling back to
// always-replace -- a 4-way set-associative table trades a larger probe for a much
// lower collision rate than one entry per slot (spec §4.7).
const bucketSize = 4

// Table is a bucketed, 4-way transposition table (spec §4.7). Not safe for concurrent
// use; the engine owns one table per search the way it owns one board.Board.
type Table struct {
	buckets    [][bucketSize]entry
	mask       uint64
	generation uint16
}

// NewTable allocates a table sized to at most sizeBytes, rounded down to a power of
// two number of buckets (never fewer than one bucket).
func NewTable(sizeBytes uint64) *Table {
	const entrySize = 24
	n := sizeBytes / (entrySize * bucketSize)
	if n == 0 {
		n = 1
	}
	shift := bits.Len64(n) - 1
	numBuckets := uint64(1) << shift

	return &Table{
		buckets: make([][bucketSize]entry, numBuckets),
		mask:    numBuckets - 1,
	}
}

// NewGeneration should be called once per new root search (not per ply), so stale
// entries from prior searches age out of the replacement scoring.
func (t *Table) NewGeneration() {
	t.generation++
}

func (t *Table) index(hash uint64) uint64 {
	return hash & t.mask
}

// Probe looks up hash, returning the stored entry and whether it was found.
func (t *Table) Probe(hash uint64) (board.Move, eval.Score, int, Bound, bool) {
	bucket := &t.buckets[t.index(hash)]
	for i := range bucket {
		if bucket[i].hash == hash && (bucket[i].depth != 0 || bucket[i].move != 0) {
			e := bucket[i]
			return e.move, e.score, int(e.depth), e.bound, true
		}
	}
	return 0, 0, 0, 0, false
}

// replacementScore ranks an existing entry's worth of keeping: deeper and more recent
// searches score higher (spec §4.7's replacement formula -- depth dominates, generation
// breaks ties so this search's own nodes are never evicted by themselves).
func replacementScore(e entry, currentGen uint16) int {
	if e.hash == 0 && e.depth == 0 {
		return -1 // empty slot: always the first choice
	}
	age := int(currentGen) - int(e.generation)
	return int(e.depth)*4 - age
}

// Store inserts a search result, replacing the weakest entry in the hash's bucket. A
// slot already holding this exact position (spec §4.7: "if any slot has the same key,
// overwrite") always wins over the replacement-score scan, including bucket[0] --
// otherwise Probe (which returns the first hash match it finds) can keep returning a
// stale entry at index 0 even after a fresh result for the same position was written
// elsewhere in the bucket.
func (t *Table) Store(hash uint64, move board.Move, score eval.Score, depth int, bound Bound) {
	bucket := &t.buckets[t.index(hash)]

	worst := 0
	worstScore := 0
	for i := 0; i < bucketSize; i++ {
		if bucket[i].hash == hash {
			// Prefer overwriting a stale entry for the same position outright.
			worst = i
			break
		}
		s := replacementScore(bucket[i], t.generation)
		if i == 0 || s < worstScore {
			worstScore = s
			worst = i
		}
	}

	bucket[worst] = entry{
		hash:       hash,
		move:       move,
		score:      score,
		depth:      int16(depth),
		generation: t.generation,
		bound:      bound,
	}
}

// Used estimates table utilization as a fraction in [0;1] by sampling occupied slots.
func (t *Table) Used() float64 {
	if len(t.buckets) == 0 {
		return 0
	}
	sample := len(t.buckets)
	if sample > 10000 {
		sample = 10000
	}
	occupied := 0
	for i := 0; i < sample; i++ {
		for j := 0; j < bucketSize; j++ {
			if t.buckets[i][j].hash != 0 || t.buckets[i][j].depth != 0 {
				occupied++
			}
		}
	}
	return float64(occupied) / float64(sample*bucketSize)
}
