package board

import "math/rand"

// ZobristTable is a pseudo-randomized table of keys for computing position hashes,
// incrementally updatable on MakeMove/Undo (spec §4.6).
type ZobristTable struct {
	pieces   [NumColors][NumPieces][NumSquares]uint64
	castling [NumColors][NumCastleSides]uint64
	epFile   [NumFiles]uint64
	turn     uint64
}

// NewZobristTable builds a table from the given seed. The opening book's move
// selection RNG is seeded separately (spec §9); this seed is purely for hash keys.
func NewZobristTable(seed int64) *ZobristTable {
	r := rand.New(rand.NewSource(seed))
	zt := &ZobristTable{}

	for c := Color(0); c < NumColors; c++ {
		for p := Piece(0); p < NumPieces; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				zt.pieces[c][p][sq] = r.Uint64()
			}
		}
		for s := CastleSide(0); s < NumCastleSides; s++ {
			zt.castling[c][s] = r.Uint64()
		}
	}
	for f := ZeroFile; f < NumFiles; f++ {
		zt.epFile[f] = r.Uint64()
	}
	zt.turn = r.Uint64()
	return zt
}

// Hash computes the zobrist hash for the given board/turn from scratch.
func (zt *ZobristTable) Hash(b *Board, turn Color) uint64 {
	var h uint64
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		c, p := b.PieceAt(sq)
		if p != NoPiece {
			h ^= zt.pieces[c][p][sq]
		}
	}
	h ^= zt.castlingKey(b.Castling())
	if ep, ok := b.EnPassant(); ok {
		h ^= zt.epFile[ep.File()]
	}
	if turn == Black {
		h ^= zt.turn
	}
	return h
}

// TurnKey returns the XOR key that flips the side-to-move bit of a hash.
func (zt *ZobristTable) TurnKey() uint64 {
	return zt.turn
}

// EPFileKey returns the XOR key for an en-passant target on file f.
func (zt *ZobristTable) EPFileKey(f File) uint64 {
	return zt.epFile[f]
}

func (zt *ZobristTable) castlingKey(r Rights) uint64 {
	var h uint64
	for c := Color(0); c < NumColors; c++ {
		for s := CastleSide(0); s < NumCastleSides; s++ {
			if r[c][s] {
				h ^= zt.castling[c][s]
			}
		}
	}
	return h
}

// Update incrementally computes the hash after playing m by stm from a position with
// hash 'h', prior castling rights prevCastling/prevEP, and the resulting rights
// newCastling (read off the board after MakeMove). It mirrors board.Board.MakeMove's
// side effects exactly, since the two must always agree (spec §8 hash-consistency
// property).
func (zt *ZobristTable) Update(h uint64, m Move, stm Color, piece Piece, prevCastling, newCastling Rights, prevEP, newEP Square) uint64 {
	hash := h

	// (1) XOR out stale metadata.
	hash ^= zt.castlingKey(prevCastling)
	if prevEP != NoSquare {
		hash ^= zt.epFile[prevEP.File()]
	}
	hash ^= zt.turn // side to move flips every ply

	// (2) Piece movement.
	from, to := m.From(), m.To()
	hash ^= zt.pieces[stm][piece][from]

	if cap, ok := m.Captured(); ok {
		capSq := to
		if m.IsEnPassant() {
			capSq = epCaptureSquare(stm, to)
		}
		hash ^= zt.pieces[stm.Opponent()][cap][capSq]
	}

	if promo, ok := m.Promotion(); ok {
		hash ^= zt.pieces[stm][promo][to]
	} else {
		hash ^= zt.pieces[stm][piece][to]
	}

	if side, ok := m.Castle(); ok {
		rf, rt := castleRookSquares(stm, side)
		hash ^= zt.pieces[stm][Rook][rf]
		hash ^= zt.pieces[stm][Rook][rt]
	}

	// (3) XOR in fresh metadata.
	hash ^= zt.castlingKey(newCastling)
	if newEP != NoSquare {
		hash ^= zt.epFile[newEP.File()]
	}

	return hash
}
