package eval

import "github.com/arborchess/chessengine/internal/board"

// fileMask returns the bitboard of all 8 squares on file f.
func fileMask(f board.File) board.Bitboard {
	return board.BitFile(f)
}

// adjacentFilesMask returns the union of the files directly left and right of f.
func adjacentFilesMask(f board.File) board.Bitboard {
	var m board.Bitboard
	if f > board.FileA {
		m |= fileMask(f - 1)
	}
	if f < board.FileH {
		m |= fileMask(f + 1)
	}
	return m
}

// passedPawnMask returns the files (own + adjacent) ahead of sq for color c -- any enemy
// pawn on one of these squares stops sq's pawn from being passed.
func passedPawnMask(c board.Color, sq board.Square) board.Bitboard {
	front := fileMask(sq.File()) | adjacentFilesMask(sq.File())
	if c == board.White {
		for r := board.Rank1; r <= sq.Rank(); r++ {
			front &^= board.BitRank(r)
		}
	} else {
		for r := sq.Rank(); r <= board.Rank8; r++ {
			front &^= board.BitRank(r)
		}
	}
	return front
}

const (
	doubledPawnPenalty  = -10
	isolatedPawnPenalty = -15
	backwardPawnPenalty = -8
	connectedPawnBonus  = 5
)

var passedPawnBonusByRank = [8]Score{0, 5, 10, 20, 35, 60, 100, 0}

// pawnStructure scores doubled/isolated/backward/connected/passed pawns, White relative
// (spec's supplemented pawn-structure terms, grounded on the king-safety/pawn shield
// precompute idiom in original_source/backend/include/engine/precompute.h).
func pawnStructure(b *board.Board) Score {
	var total Score
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := Unit(c)
		own := b.Piece(c, board.Pawn)
		opp := b.Piece(c.Opponent(), board.Pawn)

		for f := board.FileA; f <= board.FileH; f++ {
			onFile := own & fileMask(f)
			if n := onFile.PopCount(); n > 1 {
				total += sign * Score(n-1) * doubledPawnPenalty
			}
			if onFile != 0 && own&adjacentFilesMask(f) == 0 {
				total += sign * isolatedPawnPenalty
			}
		}

		for bb := own; bb != 0; {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)

			if own&board.PawnCaptures[c.Opponent()][sq] != 0 {
				total += sign * connectedPawnBonus
			}

			if opp&passedPawnMask(c, sq) == 0 {
				rank := int(sq.Rank())
				if c == board.Black {
					rank = 7 - rank
				}
				total += sign * passedPawnBonusByRank[rank]
			} else if isBackward(b, c, sq) {
				total += sign * backwardPawnPenalty
			}
		}
	}
	return total
}

// isBackward reports whether the pawn on sq has no friendly pawn able to support its
// advance and the square ahead of it is covered by an enemy pawn.
func isBackward(b *board.Board, c board.Color, sq board.Square) bool {
	own := b.Piece(c, board.Pawn)
	opp := b.Piece(c.Opponent(), board.Pawn)

	support := adjacentFilesMask(sq.File())
	if own&support != 0 {
		// Has a pawn somewhere on an adjacent file; any of those pawns that is behind or
		// level with this one can support its advance.
		ahead := own & support
		for bbb := ahead; bbb != 0; {
			s := bbb.LastPopSquare()
			bbb &^= board.BitMask(s)
			if c == board.White && s.Rank() <= sq.Rank() {
				return false
			}
			if c == board.Black && s.Rank() >= sq.Rank() {
				return false
			}
		}
	}

	aheadSq := board.SinglePush[c][sq]
	if aheadSq == 0 {
		return false
	}
	return aheadSq&opp != 0 || opp&board.PawnCaptures[c][aheadSq.LastPopSquare()] != 0
}
