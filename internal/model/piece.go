package model

import "strings"

// Width is the first binary attribute of a piece
type Width uint8

const (
	WidthWide Width = iota
	WidthNarrow
)

// Shape is the second binary attribute of a piece
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeRound
)

// Color is the third binary attribute of a piece
type Color uint8

const (
	ColorLight Color = iota
	ColorDark
)

// Fill is the fourth binary attribute of a piece
type Fill uint8

const (
	FillSolid Fill = iota
	FillHollow
)

// Attribute names one of the four axes a line can match on
type Attribute string

const (
	AttributeWidth Attribute = "width"
	AttributeShape Attribute = "shape"
	AttributeColor Attribute = "color"
	AttributeFill  Attribute = "fill"
)

// Attributes returns the attributes in win-check order
func Attributes() []Attribute {
	return []Attribute{AttributeWidth, AttributeShape, AttributeColor, AttributeFill}
}

// Piece is one of the 16 Quarto pieces. It is a comparable value type.
type Piece struct {
	Width Width
	Shape Shape
	Color Color
	Fill  Fill
}

// Value returns the piece's value (0 or 1) for the given attribute
func (p Piece) Value(attr Attribute) uint8 {
	switch attr {
	case AttributeWidth:
		return uint8(p.Width)
	case AttributeShape:
		return uint8(p.Shape)
	case AttributeColor:
		return uint8(p.Color)
	case AttributeFill:
		return uint8(p.Fill)
	}
	return 0
}

// Piece codes, one letter per attribute in Width/Shape/Color/Fill order.
// Each position has its own alphabet so codes are unambiguous.
var codeLetters = [4][2]byte{
	{'W', 'N'}, // wide, narrow
	{'S', 'R'}, // square, round
	{'L', 'D'}, // light, dark
	{'F', 'H'}, // filled (solid), hollow
}

// Code returns the four-letter short code for the piece, e.g. "WSLF"
func (p Piece) Code() string {
	return string([]byte{
		codeLetters[0][p.Width],
		codeLetters[1][p.Shape],
		codeLetters[2][p.Color],
		codeLetters[3][p.Fill],
	})
}

func (p Piece) String() string {
	return p.Code()
}

// ParsePiece parses a four-letter piece code (case-insensitive)
func ParsePiece(code string) (Piece, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 4 {
		return Piece{}, ErrInvalidPiece
	}

	var values [4]uint8
	for i := 0; i < 4; i++ {
		switch code[i] {
		case codeLetters[i][0]:
			values[i] = 0
		case codeLetters[i][1]:
			values[i] = 1
		default:
			return Piece{}, ErrInvalidPiece
		}
	}

	return Piece{
		Width: Width(values[0]),
		Shape: Shape(values[1]),
		Color: Color(values[2]),
		Fill:  Fill(values[3]),
	}, nil
}

// PieceCount is the size of the piece universe (2^4)
const PieceCount = 16

// AllPieces returns the full piece set in a fixed order: Width varies
// slowest and Fill fastest
func AllPieces() []Piece {
	pieces := make([]Piece, 0, PieceCount)
	for w := WidthWide; w <= WidthNarrow; w++ {
		for s := ShapeSquare; s <= ShapeRound; s++ {
			for c := ColorLight; c <= ColorDark; c++ {
				for f := FillSolid; f <= FillHollow; f++ {
					pieces = append(pieces, Piece{Width: w, Shape: s, Color: c, Fill: f})
				}
			}
		}
	}
	return pieces
}
