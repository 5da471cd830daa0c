package eval

import "github.com/arborchess/chessengine/internal/board"

const mobilityUnit = 2

// mobility scores the count of squares each knight/bishop/rook/queen attacks that are
// not occupied by a friendly piece, White relative. Pawns and the king are excluded:
// their placement is already captured by the piece-square tables.
func mobility(b *board.Board) Score {
	var total Score
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := Unit(c)
		own := b.Color(c)
		occ := b.All()

		for bb := b.Piece(c, board.Knight); bb != 0; {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)
			total += sign * Score((board.KnightAttacks[sq] &^ own).PopCount()) * mobilityUnit
		}
		for bb := b.Piece(c, board.Bishop); bb != 0; {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)
			total += sign * Score((board.BishopAttacks(sq, occ) &^ own).PopCount()) * mobilityUnit
		}
		total += sign * connectedRooksBonus(b, c)
		for bb := b.Piece(c, board.Rook); bb != 0; {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)
			total += sign * Score((board.RookAttacks(sq, occ) &^ own).PopCount()) * mobilityUnit
			total += sign * rookFileBonus(b, c, sq)
		}
		for bb := b.Piece(c, board.Queen); bb != 0; {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)
			total += sign * Score((board.QueenAttacks(sq, occ) &^ own).PopCount())
		}
	}
	return total
}

const (
	rookOpenFileBonus     = 15
	rookSemiOpenFileBonus = 8
	connectedRooksUnit    = 10
)

// rookFileBonus rewards a rook on an open or semi-open file.
func rookFileBonus(b *board.Board, c board.Color, sq board.Square) Score {
	file := fileMask(sq.File())
	own := b.Piece(c, board.Pawn)
	opp := b.Piece(c.Opponent(), board.Pawn)
	switch {
	case own&file == 0 && opp&file == 0:
		return rookOpenFileBonus
	case own&file == 0:
		return rookSemiOpenFileBonus
	default:
		return 0
	}
}

// connectedRooksBonus rewards a color's two rooks defending each other along a shared
// rank or file with nothing between them.
func connectedRooksBonus(b *board.Board, c board.Color) Score {
	rooks := b.Piece(c, board.Rook)
	if rooks.PopCount() != 2 {
		return 0
	}
	a, rest := rooks.PopLSB()
	bq, _ := rest.PopLSB()

	occ := b.All() &^ board.BitMask(a) &^ board.BitMask(bq)
	if board.RookAttacks(a, occ).IsSet(bq) {
		return connectedRooksUnit
	}
	return 0
}
