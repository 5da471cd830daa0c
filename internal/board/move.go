package board

import "fmt"

// Move is an opaque packed 32-bit value (spec §6.2). Bit layout:
//
//	bits 0-5:   from square (0..63)
//	bits 6-11:  to square (0..63)
//	bits 12-14: captured piece index (0..5), NoPieceCode (7) if none
//	bits 15-17: promotion piece index (0..5), NoPieceCode (7) if none
//	bits 18-20: castle side + 1 (0 = no castle, 1 = Kingside+1, 2 = Queenside+1) --
//	            widened to 3 bits per spec §6.2 ("implementations may widen to 3 bits
//	            for clarity")
//	bit 21:     en-passant flag
//
// Equality is bitwise integer equality.
type Move uint32

const (
	moveFromShift = 0
	moveToShift   = 6
	moveCapShift  = 12
	movePromShift = 15
	moveCastShift = 18
	moveEPShift   = 21

	moveSquareMask = 0x3f
	movePieceMask  = 0x7
	moveCastMask   = 0x7
)

// NoMove is the null-move sentinel (from == to == A1, no other fields set). Used by the
// opening book and quiescence/null-move search to indicate "no move".
const NoMove Move = Move(NoPieceCode)<<moveCapShift | Move(NoPieceCode)<<movePromShift

// NewMove packs a basic (non-capture, non-promotion, non-castle, non-ep) move.
func NewMove(from, to Square) Move {
	return Move(from)<<moveFromShift | Move(to)<<moveToShift |
		Move(NoPieceCode)<<moveCapShift | Move(NoPieceCode)<<movePromShift
}

// WithCapture returns m with the given captured piece recorded.
func (m Move) WithCapture(p Piece) Move {
	return (m &^ (movePieceMask << moveCapShift)) | Move(p)<<moveCapShift
}

// WithPromotion returns m with the given promotion piece recorded.
func (m Move) WithPromotion(p Piece) Move {
	return (m &^ (movePieceMask << movePromShift)) | Move(p)<<movePromShift
}

// WithCastle returns m marked as a castling move on the given side.
func (m Move) WithCastle(side CastleSide) Move {
	return (m &^ (moveCastMask << moveCastShift)) | Move(side+1)<<moveCastShift
}

// WithEnPassant returns m marked as an en-passant capture.
func (m Move) WithEnPassant() Move {
	return m | Move(1)<<moveEPShift
}

func (m Move) From() Square {
	return Square(m >> moveFromShift & moveSquareMask)
}

func (m Move) To() Square {
	return Square(m >> moveToShift & moveSquareMask)
}

// Captured returns the captured piece and whether the move is a capture at all
// (en-passant captures report Pawn here too).
func (m Move) Captured() (Piece, bool) {
	p := Piece(m >> moveCapShift & movePieceMask)
	return p, p != NoPieceCode
}

// Promotion returns the promotion piece and whether the move promotes.
func (m Move) Promotion() (Piece, bool) {
	p := Piece(m >> movePromShift & movePieceMask)
	return p, p != NoPieceCode
}

// Castle returns the castling side and whether the move castles.
func (m Move) Castle() (CastleSide, bool) {
	v := m >> moveCastShift & moveCastMask
	if v == 0 {
		return 0, false
	}
	return CastleSide(v - 1), true
}

// IsEnPassant returns true iff the move is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m>>moveEPShift&1 != 0
}

// IsCapture returns true iff the move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	_, ok := m.Captured()
	return ok
}

// IsNull reports whether m is the book's "no move" sentinel.
func (m Move) IsNull() bool {
	return m == NoMove
}

func (m Move) String() string {
	s := fmt.Sprintf("%v%v", m.From(), m.To())
	if p, ok := m.Promotion(); ok {
		s += p.String()
	}
	return s
}
