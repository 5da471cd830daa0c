package board

import "fmt"

// Board is the bitboard position representation (spec §3/§4.2). It caches redundant
// per-square piece/color lookups alongside the per-(color,piece) bitboards so that
// PieceAt() and IsEmpty() style queries used by the mover and the evaluator are O(1).
// Not safe for concurrent use; a search owns one Board and mutates it in place via
// MakeMove/Undo rather than allocating a new position per node (spec §5).
type Board struct {
	pieceBB [NumColors][NumPieces]Bitboard
	colorBB [NumColors]Bitboard
	allBB   Bitboard

	pieceAt [NumSquares]Piece
	colorAt [NumSquares]Color

	castling Rights
	epSquare Square // NoSquare if no en-passant target
}

// NewBoard returns an empty board with no castling rights and no en-passant target.
func NewBoard() *Board {
	b := &Board{epSquare: NoSquare}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		b.pieceAt[sq] = NoPiece
		b.colorAt[sq] = NoColor
	}
	return b
}

func (b *Board) Piece(c Color, p Piece) Bitboard { return b.pieceBB[c][p] }
func (b *Board) Color(c Color) Bitboard          { return b.colorBB[c] }
func (b *Board) All() Bitboard                   { return b.allBB }
func (b *Board) Castling() Rights                { return b.castling }
func (b *Board) EnPassant() (Square, bool)        { return b.epSquare, b.epSquare != NoSquare }

func (b *Board) PieceAt(sq Square) (Color, Piece) {
	return b.colorAt[sq], b.pieceAt[sq]
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.pieceAt[sq] == NoPiece
}

func (b *Board) KingSquare(c Color) Square {
	return b.pieceBB[c][King].LastPopSquare()
}

// SetCastling overwrites the castling rights directly. Used by FEN import to establish
// the initial position; make/unmake derive rights incrementally thereafter.
func (b *Board) SetCastling(r Rights) {
	b.castling = r
}

// SetEnPassant overwrites the en-passant target directly. Used by FEN import.
func (b *Board) SetEnPassant(sq Square) {
	b.epSquare = sq
}

// AddPiece places piece p of color c on sq. Precondition: sq is empty (asserted).
func (b *Board) AddPiece(p Piece, c Color, sq Square) {
	assertf(b.pieceAt[sq] == NoPiece, "AddPiece: square %v not empty", sq)

	mask := BitMask(sq)
	b.pieceBB[c][p] |= mask
	b.colorBB[c] |= mask
	b.allBB |= mask
	b.pieceAt[sq] = p
	b.colorAt[sq] = c
}

// RemovePiece removes whatever piece occupies sq. Precondition: sq is occupied.
func (b *Board) RemovePiece(sq Square) {
	c, p := b.colorAt[sq], b.pieceAt[sq]
	assertf(p != NoPiece, "RemovePiece: square %v is empty", sq)

	mask := BitMask(sq)
	b.pieceBB[c][p] &^= mask
	b.colorBB[c] &^= mask
	b.allBB &^= mask
	b.pieceAt[sq] = NoPiece
	b.colorAt[sq] = NoColor
}

// MovePiece relocates whatever occupies from to the (empty) square to, preserving piece
// and color. Precondition: from is occupied, to is empty.
func (b *Board) MovePiece(from, to Square) {
	c, p := b.colorAt[from], b.pieceAt[from]
	assertf(p != NoPiece, "MovePiece: from %v is empty", from)
	assertf(b.pieceAt[to] == NoPiece, "MovePiece: to %v is not empty", to)

	b.RemovePiece(from)
	b.AddPiece(p, c, to)
}

// homeRookSquare returns the starting rook square for the given color/side, used to
// detect castling-right loss on rook moves/captures.
func homeRookSquare(c Color, side CastleSide) Square {
	switch {
	case c == White && side == Kingside:
		return H1
	case c == White && side == Queenside:
		return A1
	case c == Black && side == Kingside:
		return H8
	default:
		return A8
	}
}

func castleRookSquares(c Color, side CastleSide) (from, to Square) {
	switch {
	case c == White && side == Kingside:
		return H1, F1
	case c == White && side == Queenside:
		return A1, D1
	case c == Black && side == Kingside:
		return H8, F8
	default:
		return A8, D8
	}
}

// MakeMove applies m, played by stm, to the board. It mutates castling rights and the
// en-passant target as a side effect. The caller (Game/Zobrist) is responsible for
// recording the pre-move state needed to Undo, since it cannot be derived from the
// board alone (spec §4.2).
func (b *Board) MakeMove(m Move, stm Color) {
	from, to := m.From(), m.To()
	_, piece := b.PieceAt(from)
	assertf(piece != NoPiece, "MakeMove: no piece on %v", from)

	// (1) Captured piece removal (including en passant's off-target square).
	if cap, ok := m.Captured(); ok {
		capSq := to
		if m.IsEnPassant() {
			capSq = epCaptureSquare(stm, to)
		}
		b.RemovePiece(capSq)
		if cap == Rook {
			b.clearCastlingIfHomeRook(stm.Opponent(), capSq)
		}
	}

	// (2) Move the piece itself (promotion replaces it at the destination).
	b.RemovePiece(from)
	if promo, ok := m.Promotion(); ok {
		b.AddPiece(promo, stm, to)
	} else {
		b.AddPiece(piece, stm, to)
	}

	// (3) Castling rook hop.
	if side, ok := m.Castle(); ok {
		rf, rt := castleRookSquares(stm, side)
		b.MovePiece(rf, rt)
		b.castling[stm] = [2]bool{}
	}

	// (4) Castling-right loss from the mover itself.
	if piece == King {
		b.castling[stm] = [2]bool{}
	}
	if piece == Rook {
		b.clearCastlingIfHomeRook(stm, from)
	}

	// (5) En-passant target for the next move.
	b.epSquare = NoSquare
	if piece == Pawn && (to-from == 16 || from-to == 16) {
		b.epSquare = epTargetSquare(stm, from)
	}
}

// Undo reverses MakeMove. The caller supplies the pre-move castling rights and
// en-passant target, sourced from the history frame, since they cannot be derived from
// the resulting board alone.
func (b *Board) Undo(m Move, stm Color, prevCastling Rights, prevEP Square) {
	from, to := m.From(), m.To()

	if side, ok := m.Castle(); ok {
		rf, rt := castleRookSquares(stm, side)
		b.MovePiece(rt, rf)
	}

	if promo, ok := m.Promotion(); ok {
		b.RemovePiece(to)
		b.AddPiece(Pawn, stm, from)
		_ = promo
	} else {
		b.MovePiece(to, from)
	}

	if cap, ok := m.Captured(); ok {
		capSq := to
		if m.IsEnPassant() {
			capSq = epCaptureSquare(stm, to)
		}
		b.AddPiece(cap, stm.Opponent(), capSq)
	}

	b.castling = prevCastling
	b.epSquare = prevEP
}

func (b *Board) clearCastlingIfHomeRook(c Color, sq Square) {
	if sq == homeRookSquare(c, Kingside) {
		b.castling[c][Kingside] = false
	}
	if sq == homeRookSquare(c, Queenside) {
		b.castling[c][Queenside] = false
	}
}

// epTargetSquare returns the square recorded as the en-passant target after a
// double pawn push from 'from' by color c (i.e. the square "behind" the pawn).
func epTargetSquare(c Color, from Square) Square {
	if c == White {
		return from + 8
	}
	return from - 8
}

// epCaptureSquare returns the square of the pawn actually captured by an en-passant
// capture landing on 'to' (the ep target square), played by color stm.
func epCaptureSquare(stm Color, to Square) Square {
	if stm == White {
		return to - 8
	}
	return to + 8
}

func (b *Board) String() string {
	var out [71]byte
	k := 0
	for r := int(Rank8); r >= int(Rank1); r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			sq := NewSquare(f, Rank(r))
			c, p := b.PieceAt(sq)
			if p == NoPiece {
				out[k] = '-'
			} else if c == White {
				out[k] = []byte(p.String())[0] - 32
			} else {
				out[k] = []byte(p.String())[0]
			}
			k++
		}
		if r != int(Rank1) {
			out[k] = '/'
			k++
		}
	}
	return fmt.Sprintf("%s %v (%v)", out[:k], b.castling, b.epSquare)
}

// debugAsserts toggles panics on precondition violations. It is on by default and
// nothing in the module turns it off, so precondition violations always panic.
var debugAsserts = true

func assertf(cond bool, format string, args ...interface{}) {
	if debugAsserts && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
