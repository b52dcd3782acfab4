package main

import (
	"fmt"
	"log"
	"os"

	"flag"

	"github.com/M-DinhHoangViet/scalachess/internal/board"
)

var (
	variantFlag = flag.String("variant", "standard", "rule set: standard, chess960, threeCheck, antichess, atomic, crazyhouse, racingKings, horde")
	fenFlag     = flag.String("fen", "", "position in FEN (default: the variant's starting position)")
	playLine    = flag.String("play", "", "moves to apply first, UCI or SAN, space separated")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 5, "perft depth")
	perftDivide   = flag.Bool("perft.divide", false, "print per-root-move node counts")
	perftParallel = flag.Bool("perft.parallel", true, "split root moves across goroutines")
	perftStore    = flag.Bool("perft.store", false, "persist the result in the local store")

	movesRun  = flag.Bool("moves", false, "list the legal moves")
	svgPath   = flag.String("svg", "", "write an SVG diagram to the given path")
	bookPath  = flag.String("book", "", "list Polyglot book moves for the position")
	gameStore = flag.Bool("store", false, "record the played game in the local store")
)

func main() {
	flag.Parse()

	if err := realMain(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func realMain() error {
	v, err := board.ParseVariant(*variantFlag)
	if err != nil {
		return err
	}

	fen := *fenFlag
	if fen == "" {
		fen = v.StartingFEN()
	}
	pos, err := board.ParseFEN(fen, v)
	if err != nil {
		return fmt.Errorf("parse %q: %w", fen, err)
	}

	if *playLine != "" {
		pos, err = play(pos, *playLine, *gameStore)
		if err != nil {
			return err
		}
	}

	switch {
	case *perftRun:
		return perft(pos, *perftDepth, *perftDivide, *perftParallel, *perftStore)
	case *movesRun:
		return listMoves(pos)
	case *svgPath != "":
		return writeSVG(pos, *svgPath)
	case *bookPath != "":
		return listBookMoves(pos, *bookPath)
	default:
		draw(pos)
		return nil
	}
}
