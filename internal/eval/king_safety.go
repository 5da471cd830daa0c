package eval

import "github.com/arborchess/chessengine/internal/board"

// attackerWeight assigns a threat weight per attacking piece type, used to score the
// pressure on the enemy king zone (the supplemented king-zone-attacker-weighting term
// noted in SPEC_FULL.md, grounded on the shield/zone precompute idiom of
// original_source/backend/include/engine/precompute.h).
func attackerWeight(p board.Piece) Score {
	switch p {
	case board.Queen:
		return 4
	case board.Rook:
		return 2
	case board.Bishop, board.Knight:
		return 1
	default:
		return 0
	}
}

const (
	openFilePenalty     = -20
	semiOpenFilePenalty = -10
	shieldPawnBonus     = 8
	kingZoneAttackUnit  = -6
)

// kingSafety scores pawn-shield integrity, open/semi-open files in front of the king,
// and weighted attacker pressure on the king zone, White relative.
func kingSafety(b *board.Board, phase int) Score {
	// Fades out in pure endgames, where king activity (handled by the king PST) matters
	// far more than shelter.
	if phase == 0 {
		return 0
	}

	var total Score
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := Unit(c)
		ksq := b.KingSquare(c)
		own := b.Piece(c, board.Pawn)
		opp := b.Piece(c.Opponent(), board.Pawn)

		for _, f := range shieldFiles(ksq.File()) {
			file := fileMask(f)
			switch {
			case own&file == 0 && opp&file == 0:
				total += sign * openFilePenalty
			case own&file == 0:
				total += sign * semiOpenFilePenalty
			default:
				if hasShieldPawn(c, ksq, own&file) {
					total += sign * shieldPawnBonus
				}
			}
		}

		total += sign * Score(int(kingZoneWeight(b, c, ksq))*phase/totalPhase)
	}
	return total
}

func shieldFiles(f board.File) []board.File {
	files := []board.File{f}
	if f > board.FileA {
		files = append(files, f-1)
	}
	if f < board.FileH {
		files = append(files, f+1)
	}
	return files
}

// hasShieldPawn reports whether any of the given file's own pawns sits on the two ranks
// directly in front of the king.
func hasShieldPawn(c board.Color, ksq board.Square, onFile board.Bitboard) bool {
	for bb := onFile; bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)
		d := int(sq.Rank()) - int(ksq.Rank())
		if c == board.Black {
			d = -d
		}
		if d >= 1 && d <= 2 {
			return true
		}
	}
	return false
}

// kingZoneWeight sums attackerWeight over every enemy piece attacking a square in c's
// king zone (the king's own square plus its king-move neighborhood), scaled by
// kingZoneAttackUnit.
func kingZoneWeight(b *board.Board, c board.Color, ksq board.Square) Score {
	zone := board.KingAttacks[ksq] | board.BitMask(ksq)
	opp := c.Opponent()
	occ := b.All()

	var weight Score
	for bb := b.Piece(opp, board.Knight); bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)
		if board.KnightAttacks[sq]&zone != 0 {
			weight += attackerWeight(board.Knight)
		}
	}
	for bb := b.Piece(opp, board.Bishop); bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)
		if board.BishopAttacks(sq, occ)&zone != 0 {
			weight += attackerWeight(board.Bishop)
		}
	}
	for bb := b.Piece(opp, board.Rook); bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)
		if board.RookAttacks(sq, occ)&zone != 0 {
			weight += attackerWeight(board.Rook)
		}
	}
	for bb := b.Piece(opp, board.Queen); bb != 0; {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)
		if board.QueenAttacks(sq, occ)&zone != 0 {
			weight += attackerWeight(board.Queen)
		}
	}

	return weight * kingZoneAttackUnit
}
