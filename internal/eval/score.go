// Package eval implements static position evaluation (spec §4.9, C8): material,
// tapered piece-square tables, pawn structure, king safety, mobility, and terminal
// (mate/draw) scores, grounded on the teacher's pkg/eval and pkg/board/score.go.
package eval

import (
	"fmt"

	"github.com/arborchess/chessengine/internal/board"
)

// Score is a signed centipawn evaluation, positive favoring the side to move unless
// stated otherwise. 16 bits, matching the teacher's pkg/board/score.go.
type Score int16

const (
	MinScore Score = -30000
	MaxScore Score = 30000

	// Mate is the base score for "side to move is checkmated in 0 plies". Terminal
	// scores add the ply distance from the root (Mate + ply), so a mate nearer the root
	// scores further from zero and shorter mates sort higher (spec §4.9 terminal scores).
	Mate Score = MinScore + 1000

	// Draw is the fixed score for any drawn position (repetition, fifty-move,
	// insufficient material, stalemate).
	Draw Score = 0
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// IsMateScore reports whether s represents a forced mate (for either side).
func IsMateScore(s Score) bool {
	return s <= MinScore+2000 || s >= MaxScore-2000
}

// MateIn returns the number of full moves to mate implied by a mate score, signed by
// which side is winning. Only meaningful when IsMateScore(s) is true.
func MateIn(s Score) int {
	if s > 0 {
		return (int(MaxScore-1000-s) + 1) / 2
	}
	return -((int(s-(MinScore+1000)) + 1) / 2)
}

// Unit returns the signed unit for the color: +1 for White, -1 for Black, used to
// convert a side-relative (negamax) score into an absolute, White-positive one.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

func Max(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}
