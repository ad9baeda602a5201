package testutil

import "github.com/mcoot/quarto/internal/model"

// Layout assigns one of the 16 pieces to every cell
type Layout [model.BoardSize][model.BoardSize]model.Piece

// DrawLayout returns a full board on which no line of any shape family shares
// an attribute. Each attribute is a different parity combination of the row
// and column bits, so every piece appears exactly once.
func DrawLayout() Layout {
	var layout Layout
	for r := 0; r < model.BoardSize; r++ {
		for c := 0; c < model.BoardSize; c++ {
			x, y := uint8(r>>1), uint8(r&1)
			a, b := uint8(c>>1), uint8(c&1)
			layout[r][c] = model.Piece{
				Width: model.Width(a ^ y),
				Shape: model.Shape(x ^ b),
				Color: model.Color(y ^ a ^ b),
				Fill:  model.Fill(x ^ y ^ b),
			}
		}
	}
	return layout
}

// OrderedLayout places AllPieces row-major, so row 0 holds four wide square
// pieces and wins on width
func OrderedLayout() Layout {
	var layout Layout
	for i, p := range model.AllPieces() {
		layout[i/model.BoardSize][i%model.BoardSize] = p
	}
	return layout
}

// Board builds a board with every cell filled from the layout and an empty
// pool
func (l Layout) Board() *model.Board {
	board := model.NewBoard(nil)
	for r := 0; r < model.BoardSize; r++ {
		for c := 0; c < model.BoardSize; c++ {
			p := l[r][c]
			board.Cells[r][c] = &p
		}
	}
	return board
}

// At returns the piece for the nth cell in row-major order
func (l Layout) At(n int) (model.Piece, model.Position) {
	pos := model.Position{Row: n / model.BoardSize, Col: n % model.BoardSize}
	return l[pos.Row][pos.Col], pos
}
