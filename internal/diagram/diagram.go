// Package diagram renders a board position as an SVG image.
package diagram

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/M-DinhHoangViet/scalachess/internal/board"
)

const (
	squareSize = 45
	margin     = 20
	boardSize  = 8 * squareSize
)

const (
	lightFill = "fill:#f0d9b5"
	darkFill  = "fill:#b58863"
	lastFill  = "fill:#cdd26a"
	textStyle = "font-size:34px;font-family:'DejaVu Sans',sans-serif;text-anchor:middle"
	coordText = "font-size:12px;font-family:'DejaVu Sans',sans-serif;text-anchor:middle;fill:#666"
)

var glyphs = map[board.Piece]string{
	board.NewPiece(board.King, board.White):   "♔",
	board.NewPiece(board.Queen, board.White):  "♕",
	board.NewPiece(board.Rook, board.White):   "♖",
	board.NewPiece(board.Bishop, board.White): "♗",
	board.NewPiece(board.Knight, board.White): "♘",
	board.NewPiece(board.Pawn, board.White):   "♙",
	board.NewPiece(board.King, board.Black):   "♚",
	board.NewPiece(board.Queen, board.Black):  "♛",
	board.NewPiece(board.Rook, board.Black):   "♜",
	board.NewPiece(board.Bishop, board.Black): "♝",
	board.NewPiece(board.Knight, board.Black): "♞",
	board.NewPiece(board.Pawn, board.Black):   "♟",
}

// Options controls diagram rendering.
type Options struct {
	// FlipBoard draws the position from Black's point of view.
	FlipBoard bool
	// MarkLastMove highlights the from and to squares of the last move.
	MarkLastMove bool
}

// Render writes an SVG diagram of the position to w.
func Render(w io.Writer, p *board.Position, opts Options) {
	canvas := svg.New(w)
	canvas.Start(boardSize+2*margin, boardSize+2*margin)
	canvas.Rect(0, 0, boardSize+2*margin, boardSize+2*margin, "fill:#ffffff")

	var markFrom, markTo board.Square = board.NoSquare, board.NoSquare
	if opts.MarkLastMove && p.LastMove != board.NoMove {
		markFrom = p.LastMove.From()
		markTo = p.LastMove.To()
	}

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			x, y := squareOrigin(file, rank, opts.FlipBoard)

			style := darkFill
			if (file+rank)%2 == 1 {
				style = lightFill
			}
			if sq == markFrom || sq == markTo {
				style = lastFill
			}
			canvas.Rect(x, y, squareSize, squareSize, style)

			if piece := p.PieceAt(sq); piece != board.NoPiece {
				canvas.Text(x+squareSize/2, y+squareSize-10, glyphs[piece], textStyle)
			}
		}
	}

	for i := 0; i < 8; i++ {
		fileIdx, rankIdx := i, i
		if opts.FlipBoard {
			fileIdx, rankIdx = 7-i, 7-i
		}
		fx := margin + i*squareSize + squareSize/2
		canvas.Text(fx, margin+boardSize+14, string(rune('a'+fileIdx)), coordText)
		ry := margin + (7-i)*squareSize + squareSize/2 + 4
		canvas.Text(margin/2, ry, string(rune('1'+rankIdx)), coordText)
	}

	canvas.End()
}

// squareOrigin maps a square to the pixel origin of its cell. Rank 0 sits at
// the bottom unless the board is flipped.
func squareOrigin(file, rank int, flip bool) (int, int) {
	if flip {
		file, rank = 7-file, 7-rank
	}
	return margin + file*squareSize, margin + (7-rank)*squareSize
}
