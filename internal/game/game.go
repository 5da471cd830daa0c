// Package game implements the Game façade (spec §4.5/§6.1, C7): a Board plus history
// stack, repetition map, and draw/verdict classification, grounded on the teacher's
// pkg/board/board.go (node/history chain) adapted to explicit stack-based undo per
// spec §4.2/§4.5 rather than the teacher's persistent-position style.
package game

import (
	"fmt"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/check"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/movegen"
)

// GameStateEval is the externally visible verdict for the side to move (§4.5/§6.1).
type GameStateEval int

const (
	InProgress GameStateEval = iota
	InCheck
	Checkmate
	Stalemate
	DrawByRepetition
	DrawByFiftyMoveRule
	DrawByInsufficientMaterial
)

func (g GameStateEval) String() string {
	switch g {
	case InProgress:
		return "in_progress"
	case InCheck:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByRepetition:
		return "draw_by_repetition"
	case DrawByFiftyMoveRule:
		return "draw_by_fifty_move_rule"
	case DrawByInsufficientMaterial:
		return "draw_by_insufficient_material"
	default:
		return "?"
	}
}

// frame is an immutable snapshot of game metadata captured before a move, so Undo can
// restore it without recomputation (spec §3 GameState).
type frame struct {
	turn          board.Color
	epSquare      board.Square
	castling      board.Rights
	halfMoveClock int
	fullMoves     int
	hash          uint64
}

// MoveInfo describes a move's semantic content for host consumption (§6.1).
type MoveInfo struct {
	Piece          board.Piece
	Color          board.Color
	Captured       board.Piece
	CapturedColor  board.Color
	IsCapture      bool
	IsCastle       bool
	IsEnPassant    bool
	IsPromotion    bool
	PromotionPiece board.Piece
}

// Game holds a Board plus its history, the move stack, and a hash->occurrence map used
// for threefold-repetition detection (spec §4.5).
type Game struct {
	Board *board.Board
	zt    *board.ZobristTable

	turn          board.Color
	halfMoveClock int
	fullMoves     int
	hash          uint64

	frames     []frame
	moves      []board.Move
	isNull     []bool
	repetition map[uint64]int
}

// New constructs a Game from the given board/turn/clock state, as produced by FEN
// decoding.
func New(zt *board.ZobristTable, b *board.Board, turn board.Color, halfMoveClock, fullMoves int) *Game {
	g := &Game{
		Board:         b,
		zt:            zt,
		turn:          turn,
		halfMoveClock: halfMoveClock,
		fullMoves:     fullMoves,
		repetition:    map[uint64]int{},
	}
	g.hash = zt.Hash(b, turn)
	g.repetition[g.hash]++
	return g
}

// NewFromFEN constructs a Game from a FEN string.
func NewFromFEN(zt *board.ZobristTable, s string) (*Game, error) {
	b, turn, halfmove, fullmoves, err := fen.Decode(s)
	if err != nil {
		return nil, err
	}
	return New(zt, b, turn, halfmove, fullmoves), nil
}

func (g *Game) Turn() board.Color       { return g.turn }
func (g *Game) Hash() uint64            { return g.hash }
func (g *Game) HalfMoveClock() int      { return g.halfMoveClock }
func (g *Game) FullMoves() int          { return g.fullMoves }
func (g *Game) Ply() int                { return len(g.moves) }

// LastMove returns the most recently played move, if any.
func (g *Game) LastMove() (board.Move, bool) {
	if len(g.moves) == 0 {
		return 0, false
	}
	return g.moves[len(g.moves)-1], true
}

// PushMove plays a pseudo-legal move and returns true iff it was legal. This is the
// engine-facing make/unmake entry point used by search (spec §4.5 makeMove).
func (g *Game) PushMove(m board.Move) bool {
	stm := g.turn
	_, piece := g.Board.PieceAt(m.From())
	if piece == board.NoPiece {
		return false
	}

	if !movegen.IsLegal(g.Board, stm, m) {
		return false
	}

	f := frame{
		turn:          g.turn,
		halfMoveClock: g.halfMoveClock,
		fullMoves:     g.fullMoves,
		hash:          g.hash,
	}
	if ep, ok := g.Board.EnPassant(); ok {
		f.epSquare = ep
	} else {
		f.epSquare = board.NoSquare
	}
	f.castling = g.Board.Castling()

	prevCastling := f.castling
	prevEP := f.epSquare

	g.Board.MakeMove(m, stm)

	newCastling := g.Board.Castling()
	newEP := board.NoSquare
	if ep, ok := g.Board.EnPassant(); ok {
		newEP = ep
	}
	g.hash = g.zt.Update(g.hash, m, stm, piece, prevCastling, newCastling, prevEP, newEP)

	if piece == board.Pawn || !isNoProgress(m) {
		g.halfMoveClock = 0
	} else {
		g.halfMoveClock++
	}
	g.turn = stm.Opponent()
	if g.turn == board.White {
		g.fullMoves++
	}

	g.frames = append(g.frames, f)
	g.moves = append(g.moves, m)
	g.isNull = append(g.isNull, false)
	g.repetition[g.hash]++

	return true
}

// PopMove undoes the most recent move (or null move). Returns false if there is
// nothing to undo.
func (g *Game) PopMove() (board.Move, bool) {
	if len(g.moves) == 0 {
		return 0, false
	}

	m := g.moves[len(g.moves)-1]
	f := g.frames[len(g.frames)-1]
	wasNull := g.isNull[len(g.isNull)-1]

	g.repetition[g.hash]--
	if g.repetition[g.hash] == 0 {
		delete(g.repetition, g.hash)
	}

	g.moves = g.moves[:len(g.moves)-1]
	g.frames = g.frames[:len(g.frames)-1]
	g.isNull = g.isNull[:len(g.isNull)-1]

	if wasNull {
		g.Board.SetEnPassant(f.epSquare)
	} else {
		g.Board.Undo(m, f.turn, f.castling, f.epSquare)
	}

	g.turn = f.turn
	g.halfMoveClock = f.halfMoveClock
	g.fullMoves = f.fullMoves
	g.hash = f.hash

	return m, true
}

// PushNull plays a null move: the side to move passes without moving a piece, used
// only by null-move pruning (spec §4.10). The en-passant target is forfeited, matching
// the rule that en passant is only available on the very next move. The board itself is
// left untouched; PopMove detects the null marker in g.isNull and skips Board.Undo.
// Returns false if the side to move is in check, since passing while in check is not a
// legal search probe.
func (g *Game) PushNull() bool {
	if g.IsInCheck() {
		return false
	}

	prevEP := board.NoSquare
	if ep, ok := g.Board.EnPassant(); ok {
		prevEP = ep
	}

	f := frame{
		turn:          g.turn,
		halfMoveClock: g.halfMoveClock,
		fullMoves:     g.fullMoves,
		hash:          g.hash,
		castling:      g.Board.Castling(),
		epSquare:      prevEP,
	}

	newHash := g.hash ^ g.zt.TurnKey()
	if prevEP != board.NoSquare {
		newHash ^= g.zt.EPFileKey(prevEP.File())
		g.Board.SetEnPassant(board.NoSquare)
	}
	g.hash = newHash

	g.turn = g.turn.Opponent()
	if g.turn == board.White {
		g.fullMoves++
	}

	g.frames = append(g.frames, f)
	g.moves = append(g.moves, board.NoMove)
	g.isNull = append(g.isNull, true)
	g.repetition[g.hash]++

	return true
}

func isNoProgress(m board.Move) bool {
	if m.IsCapture() {
		return false
	}
	_, isPromo := m.Promotion()
	return !isPromo
}

// CurrentGameStateEvaluation classifies the current position per spec §4.5's
// precedence: repetition, then fifty-move, then insufficient material, then check
// state.
func (g *Game) CurrentGameStateEvaluation() GameStateEval {
	if g.repetition[g.hash] >= 3 {
		return DrawByRepetition
	}
	if g.halfMoveClock >= 100 {
		return DrawByFiftyMoveRule
	}
	if hasInsufficientMaterial(g.Board) {
		return DrawByInsufficientMaterial
	}

	switch movegen.EvaluateCheckState(g.Board, g.turn) {
	case movegen.Checkmate:
		return Checkmate
	case movegen.Stalemate:
		return Stalemate
	case movegen.Check:
		return InCheck
	default:
		return InProgress
	}
}

// hasInsufficientMaterial implements spec §4.5's insufficient-material table: applies
// only when neither side has a pawn, rook, or queen.
func hasInsufficientMaterial(b *board.Board) bool {
	for _, c := range [2]board.Color{board.White, board.Black} {
		if b.Piece(c, board.Pawn)|b.Piece(c, board.Rook)|b.Piece(c, board.Queen) != 0 {
			return false
		}
	}

	wn, wb := b.Piece(board.White, board.Knight).PopCount(), b.Piece(board.White, board.Bishop).PopCount()
	bn, bb := b.Piece(board.Black, board.Knight).PopCount(), b.Piece(board.Black, board.Bishop).PopCount()

	switch {
	case wn+wb == 0 && bn+bb == 0:
		return true // K vs K
	case wn+wb+bn+bb == 1:
		return true // K+N or K+B vs K
	case wn == 0 && bn == 0 && wb == 1 && bb == 1:
		return sameColorSquares(b.Piece(board.White, board.Bishop), b.Piece(board.Black, board.Bishop))
	default:
		return false
	}
}

func sameColorSquares(a, bb board.Bitboard) bool {
	sa := a.LastPopSquare()
	sb := bb.LastPopSquare()
	return (int(sa.Rank())+int(sa.File()))%2 == (int(sb.Rank())+int(sb.File()))%2
}

// MakeMove is the host-facing API: play the move from 'from' to 'to', with an optional
// promotion piece, by coordinates (spec §6.1 Game::make_move). Returns false for any
// illegal or malformed move; never panics on bad host input (spec §7).
func (g *Game) MakeMove(from, to board.Square, promotion board.Piece) bool {
	m, ok := g.findMove(from, to, promotion)
	if !ok {
		return false
	}
	return g.PushMove(m)
}

// Undo undoes the last move (spec §6.1 Game::undo).
func (g *Game) Undo() bool {
	_, ok := g.PopMove()
	return ok
}

// LegalMoves returns every legal move originating from sq (spec §6.1 Game::legal_moves).
func (g *Game) LegalMoves(sq board.Square) []board.Move {
	var buf [256]board.Move
	all := movegen.Legal(g.Board, g.turn, buf[:0])

	var ret []board.Move
	for _, m := range all {
		if m.From() == sq {
			ret = append(ret, m)
		}
	}
	return ret
}

// MoveInfo resolves the semantic content of the move from->to->promotion without
// playing it (spec §6.1 Game::move_info).
func (g *Game) MoveInfo(from, to board.Square, promotion board.Piece) (MoveInfo, bool) {
	m, ok := g.findMove(from, to, promotion)
	if !ok {
		return MoveInfo{}, false
	}

	color, piece := g.Board.PieceAt(from)
	info := MoveInfo{Piece: piece, Color: color}
	if cap, capOK := m.Captured(); capOK {
		info.IsCapture = true
		info.Captured = cap
		info.CapturedColor = color.Opponent()
	}
	if _, castleOK := m.Castle(); castleOK {
		info.IsCastle = true
	}
	if m.IsEnPassant() {
		info.IsEnPassant = true
	}
	if promo, promoOK := m.Promotion(); promoOK {
		info.IsPromotion = true
		info.PromotionPiece = promo
	}
	return info, true
}

func (g *Game) findMove(from, to board.Square, promotion board.Piece) (board.Move, bool) {
	var buf [256]board.Move
	all := movegen.Legal(g.Board, g.turn, buf[:0])

	for _, m := range all {
		if m.From() != from || m.To() != to {
			continue
		}
		promo, hasPromo := m.Promotion()
		if hasPromo != (promotion != board.NoPiece) {
			continue
		}
		if hasPromo && promo != promotion {
			continue
		}
		return m, true
	}
	return 0, false
}

// IsInCheck reports whether the side to move is currently in check.
func (g *Game) IsInCheck() bool {
	return check.IsInCheck(g.Board, g.turn)
}

func (g *Game) String() string {
	return fmt.Sprintf("game{turn=%v hash=%x halfmove=%v fullmoves=%v}", g.turn, g.hash, g.halfMoveClock, g.fullMoves)
}
