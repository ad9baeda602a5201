package model

import "fmt"

// ShapeFamily is a category of four-cell line that can win
type ShapeFamily string

const (
	FamilyNone      ShapeFamily = ""
	FamilyRow       ShapeFamily = "row"
	FamilyColumn    ShapeFamily = "column"
	FamilyDiagonal  ShapeFamily = "diagonal"
	FamilySquare2x2 ShapeFamily = "square_2x2"
	FamilySquare3x3 ShapeFamily = "square_3x3"
	FamilySquare4x4 ShapeFamily = "square_4x4"
)

// Diagonal distinguishes the two board diagonals
type Diagonal string

const (
	DiagonalMain Diagonal = "main" // (0,0) to (3,3)
	DiagonalAnti Diagonal = "anti" // (0,3) to (3,0)
)

// WinConfig enables or disables each shape family. It is fixed for the
// lifetime of a game.
type WinConfig struct {
	Rows      bool
	Columns   bool
	Diagonals bool
	Squares2  bool
	Squares3  bool
	Corners   bool // the four corners of the board
}

// DefaultWinConfig enables everything except 3x3 squares
func DefaultWinConfig() WinConfig {
	return WinConfig{
		Rows:      true,
		Columns:   true,
		Diagonals: true,
		Squares2:  true,
		Squares3:  false,
		Corners:   true,
	}
}

// Enabled reports whether the family is switched on
func (c WinConfig) Enabled(family ShapeFamily) bool {
	switch family {
	case FamilyRow:
		return c.Rows
	case FamilyColumn:
		return c.Columns
	case FamilyDiagonal:
		return c.Diagonals
	case FamilySquare2x2:
		return c.Squares2
	case FamilySquare3x3:
		return c.Squares3
	case FamilySquare4x4:
		return c.Corners
	}
	return false
}

// AnyEnabled returns true if at least one family can produce a win
func (c WinConfig) AnyEnabled() bool {
	return c.Rows || c.Columns || c.Diagonals || c.Squares2 || c.Squares3 || c.Corners
}

// VictoryResult is the outcome of a win check. The zero value means no win.
// For a win, exactly one locator field is meaningful depending on Family:
// Index for rows and columns, Diagonal for diagonals, Corner (top-left) for
// the square families.
type VictoryResult struct {
	Attribute Attribute
	Family    ShapeFamily
	Index     int
	Diagonal  Diagonal
	Corner    Position
}

// NoWin is the empty result
var NoWin = VictoryResult{}

// IsWin returns true if the result describes a winning line
func (v VictoryResult) IsWin() bool {
	return v.Family != FamilyNone
}

// Cells returns the four positions forming the winning line, or nil
func (v VictoryResult) Cells() []Position {
	switch v.Family {
	case FamilyRow:
		return []Position{{v.Index, 0}, {v.Index, 1}, {v.Index, 2}, {v.Index, 3}}
	case FamilyColumn:
		return []Position{{0, v.Index}, {1, v.Index}, {2, v.Index}, {3, v.Index}}
	case FamilyDiagonal:
		if v.Diagonal == DiagonalAnti {
			return []Position{{0, 3}, {1, 2}, {2, 1}, {3, 0}}
		}
		return []Position{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	case FamilySquare2x2:
		return squareCorners(v.Corner, 1)
	case FamilySquare3x3:
		return squareCorners(v.Corner, 2)
	case FamilySquare4x4:
		return squareCorners(Position{0, 0}, 3)
	}
	return nil
}

// Describe returns a human-readable location of the win, 1-indexed
func (v VictoryResult) Describe() string {
	switch v.Family {
	case FamilyRow:
		return fmt.Sprintf("row %d", v.Index+1)
	case FamilyColumn:
		return fmt.Sprintf("column %d", v.Index+1)
	case FamilyDiagonal:
		return fmt.Sprintf("%s diagonal", v.Diagonal)
	case FamilySquare2x2:
		return fmt.Sprintf("corners of the 2x2 square at (%d,%d)", v.Corner.Row+1, v.Corner.Col+1)
	case FamilySquare3x3:
		return fmt.Sprintf("corners of the 3x3 square at (%d,%d)", v.Corner.Row+1, v.Corner.Col+1)
	case FamilySquare4x4:
		return "board corners"
	}
	return "no win"
}

// squareCorners returns the corners of the square with the given top-left
// position and span (side length minus one)
func squareCorners(topLeft Position, span int) []Position {
	return []Position{
		topLeft,
		{topLeft.Row, topLeft.Col + span},
		{topLeft.Row + span, topLeft.Col},
		{topLeft.Row + span, topLeft.Col + span},
	}
}
