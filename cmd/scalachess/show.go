package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/M-DinhHoangViet/scalachess/internal/board"
	"github.com/M-DinhHoangViet/scalachess/internal/book"
	"github.com/M-DinhHoangViet/scalachess/internal/diagram"
	"github.com/M-DinhHoangViet/scalachess/internal/storage"
)

// play applies a space-separated move line and optionally records the game.
func play(pos *board.Position, line string, store bool) (*board.Position, error) {
	moves := strings.Fields(line)
	played := make([]string, 0, len(moves))

	for _, s := range moves {
		m, err := pos.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("at move %d (%q): %w", len(played)+1, s, err)
		}
		next, err := pos.Apply(m)
		if err != nil {
			return nil, err
		}
		played = append(played, pos.UCI(m))
		pos = next
	}

	if store {
		db, err := storage.OpenDefault()
		if err != nil {
			return nil, err
		}
		defer db.Close()

		rec := storage.GameRecord{
			Variant:  pos.Variant.String(),
			Moves:    played,
			Status:   pos.Status().String(),
			FinalFEN: pos.FEN(),
		}
		if w := pos.Winner(); w != board.NoColor {
			rec.Winner = w.String()
		}
		if err := db.SaveGame(rec); err != nil {
			return nil, err
		}
	}

	return pos, nil
}

func listMoves(pos *board.Position) error {
	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		fmt.Printf("%-7s %s\n", pos.UCI(m), pos.SAN(m))
	}
	fmt.Printf("%d legal moves\n", moves.Len())
	return nil
}

func listBookMoves(pos *board.Position, path string) error {
	b, err := book.Load(path)
	if err != nil {
		return err
	}

	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		fmt.Println("out of book")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-7s %-7s %d\n", pos.UCI(e.Move), pos.SAN(e.Move), e.Weight)
	}
	return nil
}

func writeSVG(pos *board.Position, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	diagram.Render(f, pos, diagram.Options{MarkLastMove: true})
	return nil
}

// draw prints the board with colored squares, then the position summary.
func draw(pos *board.Position) {
	light := color.New(color.FgBlack, color.BgHiWhite)
	dark := color.New(color.FgBlack, color.BgHiGreen)
	label := color.New(color.Bold)

	for rank := 7; rank >= 0; rank-- {
		label.Printf(" %d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			sym := " "
			if piece := pos.PieceAt(sq); piece != board.NoPiece {
				sym = piece.String()
			}
			cell := light
			if (file+rank)%2 == 0 {
				cell = dark
			}
			cell.Printf(" %s ", sym)
		}
		fmt.Println()
	}
	label.Printf("    a  b  c  d  e  f  g  h\n")

	fmt.Printf("fen:    %s\n", pos.FEN())
	fmt.Printf("status: %s", pos.Status())
	if w := pos.Winner(); w != board.NoColor {
		fmt.Printf(" (%s wins)", w)
	}
	fmt.Println()
	if pos.InCheck() {
		fmt.Println("check!")
	}
}
