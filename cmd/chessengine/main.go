// Command chessengine is a minimal interactive console driver, grounded on the
// teacher's pkg/engine/console (synchronous here, since search blocks on a time
// budget rather than streaming a PV over a channel).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/arborchess/chessengine/internal/board"
	"github.com/arborchess/chessengine/internal/engine"
	"github.com/arborchess/chessengine/internal/fen"
	"github.com/arborchess/chessengine/internal/game"
	"github.com/seekerror/logw"
)

func main() {
	timeMs := flag.Int("time", 3000, "time budget per move, in milliseconds")
	maxDepth := flag.Int("depth", 32, "maximum search depth")
	qDepth := flag.Int("qdepth", 6, "maximum quiescence search depth")
	hashMB := flag.Uint("hash", 32, "transposition table size, in MB")
	flag.Parse()

	ctx := context.Background()
	e := engine.New(*timeMs, *maxDepth, *qDepth, engine.WithHash(*hashMB))

	g, err := game.NewFromFEN(e.Zobrist(), fen.Initial)
	if err != nil {
		logw.Errorf(ctx, "init: %v", err)
		os.Exit(1)
	}

	fmt.Println(e.Name())
	printBoard(g)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit", "q":
			return

		case "reset", "r":
			pos := fen.Initial
			if len(args) >= 6 {
				pos = strings.Join(args[:6], " ")
			}
			next, err := game.NewFromFEN(e.Zobrist(), pos)
			if err != nil {
				fmt.Println("invalid position:", err)
				continue
			}
			g = next
			printBoard(g)

		case "undo", "u":
			if !g.Undo() {
				fmt.Println("no move to undo")
			}
			printBoard(g)

		case "print", "p":
			printBoard(g)

		case "go":
			m, err := e.GetMove(ctx, g)
			if err != nil {
				fmt.Println("no move:", err)
				continue
			}
			g.PushMove(m)
			fmt.Printf("bestmove %v (depth=%v score=%v)\n", m, e.MaxDepthSearched(), e.CurrentEvaluation())
			printBoard(g)

		default:
			from, to, promo, err := parseMove(cmd)
			if err != nil {
				fmt.Println("invalid input:", cmd)
				continue
			}
			if !g.MakeMove(from, to, promo) {
				fmt.Println("illegal move:", cmd)
				continue
			}
			printBoard(g)
		}
	}
}

func parseMove(s string) (board.Square, board.Square, board.Piece, error) {
	if len(s) < 4 {
		return 0, 0, board.NoPiece, fmt.Errorf("too short")
	}
	from, err := board.ParseSquareStr(s[0:2])
	if err != nil {
		return 0, 0, board.NoPiece, err
	}
	to, err := board.ParseSquareStr(s[2:4])
	if err != nil {
		return 0, 0, board.NoPiece, err
	}
	promo := board.NoPiece
	if len(s) >= 5 {
		p, ok := board.ParsePiece(rune(s[4]))
		if !ok {
			return 0, 0, board.NoPiece, fmt.Errorf("invalid promotion: %v", s[4])
		}
		promo = p
	}
	return from, to, promo, nil
}

func printBoard(g *game.Game) {
	fmt.Println()
	fmt.Println(g.Board.String())
	fmt.Printf("turn=%v state=%v fen=%v\n\n", g.Turn(), g.CurrentGameStateEvaluation(), currentFEN(g))
}

func currentFEN(g *game.Game) string {
	return fen.Encode(g.Board, g.Turn(), g.HalfMoveClock(), g.FullMoves())
}
