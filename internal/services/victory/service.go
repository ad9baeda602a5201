package victory

import (
	"github.com/mcoot/quarto/internal/model"
)

// line is one four-cell candidate together with the result it yields if
// its pieces share an attribute
type line struct {
	result model.VictoryResult // Attribute left empty
	cells  [4]model.Position
}

// scanOrder lists every candidate line in the order they are checked: rows,
// columns, diagonals, 2x2 squares, 3x3 squares, board corners. Squares are
// scanned by top-left corner in row-major order.
var scanOrder = buildScanOrder()

func buildScanOrder() []line {
	var lines []line

	for row := 0; row < model.BoardSize; row++ {
		lines = append(lines, line{
			result: model.VictoryResult{Family: model.FamilyRow, Index: row},
			cells:  [4]model.Position{{Row: row, Col: 0}, {Row: row, Col: 1}, {Row: row, Col: 2}, {Row: row, Col: 3}},
		})
	}

	for col := 0; col < model.BoardSize; col++ {
		lines = append(lines, line{
			result: model.VictoryResult{Family: model.FamilyColumn, Index: col},
			cells:  [4]model.Position{{Row: 0, Col: col}, {Row: 1, Col: col}, {Row: 2, Col: col}, {Row: 3, Col: col}},
		})
	}

	lines = append(lines,
		line{
			result: model.VictoryResult{Family: model.FamilyDiagonal, Diagonal: model.DiagonalMain},
			cells:  [4]model.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}},
		},
		line{
			result: model.VictoryResult{Family: model.FamilyDiagonal, Diagonal: model.DiagonalAnti},
			cells:  [4]model.Position{{Row: 0, Col: 3}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 3, Col: 0}},
		},
	)

	lines = append(lines, squares(model.FamilySquare2x2, 2)...)
	lines = append(lines, squares(model.FamilySquare3x3, 3)...)
	lines = append(lines, squares(model.FamilySquare4x4, 4)...)

	return lines
}

// squares returns the corner lines of every square with the given side
func squares(family model.ShapeFamily, side int) []line {
	var lines []line
	span := side - 1
	for row := 0; row+span < model.BoardSize; row++ {
		for col := 0; col+span < model.BoardSize; col++ {
			corner := model.Position{Row: row, Col: col}
			lines = append(lines, line{
				result: model.VictoryResult{Family: family, Corner: corner},
				cells: [4]model.Position{
					corner,
					{Row: row, Col: col + span},
					{Row: row + span, Col: col},
					{Row: row + span, Col: col + span},
				},
			})
		}
	}
	return lines
}

// Service checks boards for winning lines. It keeps no state between calls.
type Service struct{}

// New creates a new VictoryService
func New() *Service {
	return &Service{}
}

// CheckWin scans every enabled family in a fixed order and returns the
// first winning line, or model.NoWin
func (s *Service) CheckWin(board *model.Board, cfg model.WinConfig) model.VictoryResult {
	for _, l := range scanOrder {
		if !cfg.Enabled(l.result.Family) {
			continue
		}
		if attr, ok := CheckLine(board, l.cells); ok {
			result := l.result
			result.Attribute = attr
			return result
		}
	}
	return model.NoWin
}

// CheckLine returns the first attribute (Width, Shape, Color, Fill) shared
// by all four cells. A line with an empty cell never matches.
func CheckLine(board *model.Board, cells [4]model.Position) (model.Attribute, bool) {
	var pieces [4]model.Piece
	for i, pos := range cells {
		p, ok := board.Piece(pos)
		if !ok {
			return "", false
		}
		pieces[i] = p
	}

	for _, attr := range model.Attributes() {
		v := pieces[0].Value(attr)
		if pieces[1].Value(attr) == v && pieces[2].Value(attr) == v && pieces[3].Value(attr) == v {
			return attr, true
		}
	}
	return "", false
}

// Interface for dependency injection
type ServiceInterface interface {
	CheckWin(board *model.Board, cfg model.WinConfig) model.VictoryResult
}

var _ ServiceInterface = (*Service)(nil)
