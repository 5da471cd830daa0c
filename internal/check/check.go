// Package check implements attack/check detection over a board.Board (spec §4.4, C6).
// It depends only on board, never on movegen, so that movegen can depend on it without
// creating an import cycle (move generation's legality filter and castling-through-check
// rule both call IsInDanger).
package check

import "github.com/arborchess/chessengine/internal/board"

// IsInDanger reports whether any piece of the opposing color attacks sq. Symmetric by
// construction: "what would a rook/bishop/knight/king placed on sq see?" ANDed against
// the opponent's matching pieces; pawns are handled via color c's own capture table
// evaluated from sq (a pawn attacking sq is one that could capture onto sq).
func IsInDanger(b *board.Board, c board.Color, sq board.Square) bool {
	opp := c.Opponent()
	occ := b.All()

	if bishops := b.Piece(opp, board.Bishop) | b.Piece(opp, board.Queen); bishops != 0 {
		if board.BishopAttacks(sq, occ)&bishops != 0 {
			return true
		}
	}
	if rooks := b.Piece(opp, board.Rook) | b.Piece(opp, board.Queen); rooks != 0 {
		if board.RookAttacks(sq, occ)&rooks != 0 {
			return true
		}
	}
	if knights := b.Piece(opp, board.Knight); knights != 0 {
		if board.KnightAttacks[sq]&knights != 0 {
			return true
		}
	}
	if kings := b.Piece(opp, board.King); kings != 0 {
		if board.KingAttacks[sq]&kings != 0 {
			return true
		}
	}
	// A pawn of color 'opp' attacks sq iff sq is one of the diagonal capture squares
	// of an opposing pawn, i.e. iff sq is a PawnCaptures[c]-table square from 'opp'
	// pawns -- equivalently, look up which squares an opponent pawn on sq could have
	// come from by using our own color's capture table rooted at sq.
	return board.PawnCaptures[c][sq]&b.Piece(opp, board.Pawn) != 0
}

// IsInCheck reports whether color c's king is currently attacked.
func IsInCheck(b *board.Board, c board.Color) bool {
	return IsInDanger(b, c, b.KingSquare(c))
}
