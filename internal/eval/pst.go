package eval

import "github.com/arborchess/chessengine/internal/board"

// Piece-square tables, stored rank1-to-rank8, file a-to-h (index 0 = A1), from White's
// side of the board; mirrored vertically for Black via pstIndex. Values are in
// centipawns and are added on top of NominalValue. This is the one evaluation
// component with no direct teacher equivalent (the teacher ships nominal-material-only
// evaluators per cmd/*); grounded on the well-known PeSTO-style tapered tables used
// across the broader example corpus's chess engines (e.g. dragontoothmg-derived
// evaluators) rather than any single file.
var pawnPST = [64]Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnEndgamePST = [64]Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	20, 20, 20, 20, 20, 20, 20, 20,
	35, 35, 35, 35, 35, 35, 35, 35,
	60, 60, 60, 60, 60, 60, 60, 60,
	90, 90, 90, 90, 90, 90, 90, 90,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]Score{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]Score{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]Score{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]Score{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMiddlegamePST = [64]Score{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingEndgamePST = [64]Score{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// pstIndex maps a square to its table index, stored rank1-up/file-a-across above;
// White reads it directly, Black reads it mirrored vertically so that each side's own
// back rank maps to the table's first row.
func pstIndex(c board.Color, sq board.Square) int {
	if c == board.White {
		return int(sq.Rank())*8 + int(sq.File())
	}
	return int(7-sq.Rank())*8 + int(sq.File())
}

func pieceSquareValue(c board.Color, p board.Piece, sq board.Square, phase int) Score {
	idx := pstIndex(c, sq)
	switch p {
	case board.Pawn:
		return taper(pawnPST[idx], pawnEndgamePST[idx], phase)
	case board.Knight:
		return knightPST[idx]
	case board.Bishop:
		return bishopPST[idx]
	case board.Rook:
		return rookPST[idx]
	case board.Queen:
		return queenPST[idx]
	case board.King:
		return taper(kingMiddlegamePST[idx], kingEndgamePST[idx], phase)
	default:
		return 0
	}
}

// pieceSquareTables returns the White-relative positional (non-material) PST
// contribution for the whole board at the given phase.
func pieceSquareTables(b *board.Board, phase int) Score {
	var total Score
	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := Unit(c)
		for p := board.Pawn; p <= board.King; p++ {
			for bb := b.Piece(c, p); bb != 0; {
				sq := bb.LastPopSquare()
				bb &^= board.BitMask(sq)
				total += sign * pieceSquareValue(c, p, sq, phase)
			}
		}
	}
	return total
}
