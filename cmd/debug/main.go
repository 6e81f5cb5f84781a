package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", xiangqi.InitialFEN, "position to inspect")
	perft := flag.Int("perft", 3, "perft depth")
	flag.Parse()

	pos, err := xiangqi.DecodePosition(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad fen:", err)
		os.Exit(1)
	}
	fmt.Println("FEN:", pos.Encode())
	fmt.Print(pos.Board().String())
	fmt.Println("Side to move:", pos.SideToMove())
	fmt.Println("Pseudo legal moves:", len(pos.PseudoMoves()))

	moves := pos.LegalMoves()
	fmt.Println("Legal moves:", len(moves))
	for _, mv := range moves {
		fmt.Print(mv, " ")
	}
	fmt.Println()
	if w := pos.Winner(); w != xiangqi.NoSide {
		fmt.Println("Winner:", w)
	}

	for d := 1; d <= *perft; d++ {
		start := time.Now()
		n := pos.Perft(d)
		fmt.Printf("perft(%d) = %d (%v)\n", d, n, time.Since(start))
	}
}
