// Package movegen generates pseudo-legal and legal moves from a board.Board (spec §4.3,
// C5), and classifies game/check state from the resulting legal-move set (spec §4.4,
// C6's "game-state classifier" half -- the pure attack-detection half lives in
// package check, which movegen depends on).
package movegen

import (
	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/check"
)

// promotionPieces lists the four promotion targets in generation order.
var promotionPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

// PseudoLegal appends every pseudo-legal move for stm to buf (which the caller
// preallocates and reuses per ply, per spec §5) and returns the extended slice.
func PseudoLegal(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	buf = genPawnMoves(b, stm, buf)
	buf = genKnightMoves(b, stm, buf)
	buf = genBishopMoves(b, stm, buf)
	buf = genRookMoves(b, stm, buf)
	buf = genQueenMoves(b, stm, buf)
	buf = genKingMoves(b, stm, buf)
	return buf
}

// Legal appends every legal move for stm to buf: every pseudo-legal move is made, the
// mover's king safety is tested, and the move is unmade (spec §4.3's legality filter).
func Legal(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	var pseudo [256]board.Move
	candidates := PseudoLegal(b, stm, pseudo[:0])

	for _, m := range candidates {
		if IsLegal(b, stm, m) {
			buf = append(buf, m)
		}
	}
	return buf
}

// IsLegal tests a single pseudo-legal move for legality by making, checking, and
// unmaking it.
func IsLegal(b *board.Board, stm board.Color, m board.Move) bool {
	prevCastling := b.Castling()
	prevEP := prevEPSquare(b)

	b.MakeMove(m, stm)
	ok := !check.IsInCheck(b, stm)
	b.Undo(m, stm, prevCastling, prevEP)
	return ok
}

func prevEPSquare(b *board.Board) board.Square {
	if ep, ok := b.EnPassant(); ok {
		return ep
	}
	return board.NoSquare
}

// GivesCheck reports whether playing m by stm would attack the opponent's king.
func GivesCheck(b *board.Board, stm board.Color, m board.Move) bool {
	prevCastling := b.Castling()
	prevEP := prevEPSquare(b)

	b.MakeMove(m, stm)
	gives := check.IsInCheck(b, stm.Opponent())
	b.Undo(m, stm, prevCastling, prevEP)
	return gives
}

// Quiescence appends the legal subset of moves suitable for quiescence search: captures,
// queen promotions, and checks (spec §4.3).
func Quiescence(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	var pseudo [256]board.Move
	candidates := PseudoLegal(b, stm, pseudo[:0])

	for _, m := range candidates {
		isQueenPromo := false
		if p, ok := m.Promotion(); ok && p == board.Queen {
			isQueenPromo = true
		}
		if !m.IsCapture() && !isQueenPromo {
			if !IsLegal(b, stm, m) || !GivesCheck(b, stm, m) {
				continue
			}
			buf = append(buf, m)
			continue
		}
		if IsLegal(b, stm, m) {
			buf = append(buf, m)
		}
	}
	return buf
}

// HasLegalMove reports whether stm has at least one legal move, short-circuiting as
// soon as one is found (spec §4.4).
func HasLegalMove(b *board.Board, stm board.Color) bool {
	var pseudo [256]board.Move
	candidates := PseudoLegal(b, stm, pseudo[:0])
	for _, m := range candidates {
		if IsLegal(b, stm, m) {
			return true
		}
	}
	return false
}

// State is the per-move check/mate/stalemate classification (spec §4.4).
type State int

const (
	NoCheck State = iota
	Check
	Checkmate
	Stalemate
)

// EvaluateCheckState classifies the position for stm to move.
func EvaluateCheckState(b *board.Board, stm board.Color) State {
	inCheck := check.IsInCheck(b, stm)
	hasMove := HasLegalMove(b, stm)

	switch {
	case inCheck && !hasMove:
		return Checkmate
	case !inCheck && !hasMove:
		return Stalemate
	case inCheck:
		return Check
	default:
		return NoCheck
	}
}

func genPawnMoves(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	pawns := b.Piece(stm, board.Pawn)
	opp := stm.Opponent()
	occ := b.All()
	promoRank := board.Rank8
	if stm == board.Black {
		promoRank = board.Rank1
	}

	for bb := pawns; bb != 0; {
		from := bb.LastPopSquare()
		bb &^= board.BitMask(from)

		// Single push.
		if push := board.SinglePush[stm][from] &^ occ; push != 0 {
			to := push.LastPopSquare()
			buf = appendPawnMove(buf, from, to, to.Rank() == promoRank, board.NoPiece, false)

			// Double push, only if the single push square is also empty.
			if dbl := board.DoublePush[stm][from] &^ occ; dbl != 0 {
				buf = append(buf, board.NewMove(from, dbl.LastPopSquare()))
			}
		}

		// Diagonal captures.
		for caps := board.PawnCaptures[stm][from] & b.Color(opp); caps != 0; {
			to := caps.LastPopSquare()
			caps &^= board.BitMask(to)
			_, cap := b.PieceAt(to)
			buf = appendPawnMove(buf, from, to, to.Rank() == promoRank, cap, true)
		}

		// En passant.
		if ep, ok := b.EnPassant(); ok && board.PawnCaptures[stm][from]&board.BitMask(ep) != 0 {
			buf = append(buf, board.NewMove(from, ep).WithCapture(board.Pawn).WithEnPassant())
		}
	}
	return buf
}

func appendPawnMove(buf []board.Move, from, to board.Square, promotes bool, cap board.Piece, isCapture bool) []board.Move {
	base := board.NewMove(from, to)
	if isCapture {
		base = base.WithCapture(cap)
	}
	if !promotes {
		return append(buf, base)
	}
	for _, p := range promotionPieces {
		buf = append(buf, base.WithPromotion(p))
	}
	return buf
}

func genKnightMoves(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	return genOfficerMoves(b, stm, board.Knight, buf, func(sq board.Square, _ board.Bitboard) board.Bitboard {
		return board.KnightAttacks[sq]
	})
}

func genBishopMoves(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	return genOfficerMoves(b, stm, board.Bishop, buf, board.BishopAttacks)
}

func genRookMoves(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	return genOfficerMoves(b, stm, board.Rook, buf, board.RookAttacks)
}

func genQueenMoves(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	return genOfficerMoves(b, stm, board.Queen, buf, board.QueenAttacks)
}

func genOfficerMoves(b *board.Board, stm board.Color, piece board.Piece, buf []board.Move, attacks func(board.Square, board.Bitboard) board.Bitboard) []board.Move {
	occ := b.All()
	own := b.Color(stm)
	opp := b.Color(stm.Opponent())

	for bb := b.Piece(stm, piece); bb != 0; {
		from := bb.LastPopSquare()
		bb &^= board.BitMask(from)

		targets := attacks(from, occ) &^ own
		for t := targets; t != 0; {
			to := t.LastPopSquare()
			t &^= board.BitMask(to)

			m := board.NewMove(from, to)
			if opp.IsSet(to) {
				_, cap := b.PieceAt(to)
				m = m.WithCapture(cap)
			}
			buf = append(buf, m)
		}
	}
	return buf
}

func genKingMoves(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	from := b.KingSquare(stm)
	own := b.Color(stm)
	opp := b.Color(stm.Opponent())
	occ := b.All()

	for t := board.KingAttacks[from] &^ own; t != 0; {
		to := t.LastPopSquare()
		t &^= board.BitMask(to)

		m := board.NewMove(from, to)
		if opp.IsSet(to) {
			_, cap := b.PieceAt(to)
			m = m.WithCapture(cap)
		}
		buf = append(buf, m)
	}

	buf = genCastle(b, stm, board.Kingside, from, occ, buf)
	buf = genCastle(b, stm, board.Queenside, from, occ, buf)
	return buf
}

func genCastle(b *board.Board, stm board.Color, side board.CastleSide, kingSq board.Square, occ board.Bitboard, buf []board.Move) []board.Move {
	if !b.Castling()[stm][side] {
		return buf
	}

	var betweenMask board.Bitboard
	var passThrough board.Square
	if stm == board.White {
		if side == board.Kingside {
			betweenMask = board.BitMask(board.F1) | board.BitMask(board.G1)
			passThrough = board.F1
		} else {
			betweenMask = board.BitMask(board.B1) | board.BitMask(board.C1) | board.BitMask(board.D1)
			passThrough = board.D1
		}
	} else {
		if side == board.Kingside {
			betweenMask = board.BitMask(board.F8) | board.BitMask(board.G8)
			passThrough = board.F8
		} else {
			betweenMask = board.BitMask(board.B8) | board.BitMask(board.C8) | board.BitMask(board.D8)
			passThrough = board.D8
		}
	}

	if occ&betweenMask != 0 {
		return buf
	}
	if check.IsInCheck(b, stm) {
		return buf
	}
	if check.IsInDanger(b, stm, passThrough) {
		return buf
	}

	return append(buf, board.NewMove(kingSq, kingDestSquare(stm, side)).WithCastle(side))
}

func kingDestSquare(stm board.Color, side board.CastleSide) board.Square {
	switch {
	case stm == board.White && side == board.Kingside:
		return board.G1
	case stm == board.White:
		return board.C1
	case side == board.Kingside:
		return board.G8
	default:
		return board.C8
	}
}
