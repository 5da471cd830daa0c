// Package fen decodes and encodes Forsyth-Edwards Notation positions (spec §6.3: used
// only for tests/setup). Decode covers the spec's stated need; Encode is included too
// since the REPL driver (cmd/chessengine) needs to round-trip a position to text for
// display, grounded on the teacher's pkg/board/fen/fen.go.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arborchess/chessengine/internal/board"
)

// Initial is the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN string into a board, the side to move, the half-move (no
// progress) clock, and the full-move counter.
func Decode(s string) (*board.Board, board.Color, int, int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: expected 6 fields, got %v", s, len(parts))
	}

	b := board.NewBoard()
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: expected 8 ranks", s)
	}
	for i, rankStr := range ranks {
		rank := board.Rank(7 - i)
		file := 0
		for _, r := range rankStr {
			switch {
			case unicode.IsDigit(r):
				file += int(r - '0')
			default:
				c, p, ok := parsePiece(r)
				if !ok {
					return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: bad piece %q", s, r)
				}
				if file > 7 {
					return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: rank overflow", s)
				}
				b.AddPiece(p, c, board.NewSquare(board.File(file), rank))
				file++
			}
		}
	}

	var turn board.Color
	switch parts[1] {
	case "w":
		turn = board.White
	case "b":
		turn = board.Black
	default:
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: bad turn %q", s, parts[1])
	}

	rights := board.Rights{}
	if parts[2] != "-" {
		for _, r := range parts[2] {
			switch r {
			case 'K':
				rights[board.White][board.Kingside] = true
			case 'Q':
				rights[board.White][board.Queenside] = true
			case 'k':
				rights[board.Black][board.Kingside] = true
			case 'q':
				rights[board.Black][board.Queenside] = true
			default:
				return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: bad castling %q", s, parts[2])
			}
		}
	}
	b.SetCastling(rights)

	if parts[3] != "-" {
		ep, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: bad en-passant square: %v", s, err)
		}
		b.SetEnPassant(ep)
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: bad halfmove clock: %v", s, err)
	}
	fullmoves, err := strconv.Atoi(parts[5])
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: bad fullmove counter: %v", s, err)
	}

	return b, turn, halfmove, fullmoves, nil
}

// Encode writes a board/turn/clock/counter tuple back to FEN.
func Encode(b *board.Board, turn board.Color, halfmove, fullmoves int) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := board.NewSquare(board.File(f), board.Rank(r))
			c, p := b.PieceAt(sq)
			if p == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(printPiece(c, p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != 0 {
			sb.WriteRune('/')
		}
	}

	sb.WriteRune(' ')
	sb.WriteString(turn.String())

	sb.WriteRune(' ')
	sb.WriteString(b.Castling().String())

	sb.WriteRune(' ')
	if ep, ok := b.EnPassant(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteRune('-')
	}

	sb.WriteRune(' ')
	sb.WriteString(strconv.Itoa(halfmove))
	sb.WriteRune(' ')
	sb.WriteString(strconv.Itoa(fullmoves))

	return sb.String()
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(unicode.ToLower(r))
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return p.String()
}
