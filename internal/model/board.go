package model

// BoardSize is the grid dimension
const BoardSize = 4

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// InBounds returns true if the position is on the 4x4 grid
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Player identifies one of the two seats
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Valid returns true for Player1 and Player2
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other player
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Board holds the grid and the piece pools for one game.
// Every piece is in exactly one of: Available, a hand, or a grid cell.
type Board struct {
	Cells     [BoardSize][BoardSize]*Piece // nil means empty
	Available []Piece                      // not yet handed to anyone
	Hands     [2]*Piece                    // indexed by Player-1
}

// NewBoard creates an empty grid with the given pool as available pieces
func NewBoard(pool []Piece) *Board {
	b := &Board{}
	b.Reset(pool)
	return b
}

// Reset clears the grid and both hands and replaces the available pool
func (b *Board) Reset(pool []Piece) {
	b.Cells = [BoardSize][BoardSize]*Piece{}
	b.Hands = [2]*Piece{}
	b.Available = make([]Piece, len(pool))
	copy(b.Available, pool)
}

// AssignPieceToPlayer moves a piece from the available pool into a player's
// hand. Any piece already in that hand is overwritten; callers must make
// sure the hand is empty first.
func (b *Board) AssignPieceToPlayer(player Player, piece Piece) error {
	if !player.Valid() {
		return ErrInvalidPlayer
	}
	idx := b.availableIndex(piece)
	if idx < 0 {
		return ErrPieceUnavailable
	}

	b.Available = append(b.Available[:idx], b.Available[idx+1:]...)
	b.Hands[player-1] = &piece
	return nil
}

// PlacePlayerPiece moves the player's hand piece onto the grid
func (b *Board) PlacePlayerPiece(player Player, pos Position) error {
	if !player.Valid() {
		return ErrInvalidPlayer
	}
	piece := b.Hands[player-1]
	if piece == nil {
		return ErrNoPieceInHand
	}
	if !b.IsValidSpot(pos) {
		return ErrInvalidCell
	}

	b.Cells[pos.Row][pos.Col] = piece
	b.Hands[player-1] = nil
	return nil
}

// IsValidSpot returns true if the position is in bounds and empty
func (b *Board) IsValidSpot(pos Position) bool {
	return pos.InBounds() && b.Cells[pos.Row][pos.Col] == nil
}

// Piece returns the piece at the given position. Out-of-range positions
// report no piece, same as empty cells.
func (b *Board) Piece(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	p := b.Cells[pos.Row][pos.Col]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Hand returns the piece the player is holding, if any
func (b *Board) Hand(player Player) (Piece, bool) {
	if !player.Valid() || b.Hands[player-1] == nil {
		return Piece{}, false
	}
	return *b.Hands[player-1], true
}

// IsAvailable returns true if the piece is still in the available pool
func (b *Board) IsAvailable(piece Piece) bool {
	return b.availableIndex(piece) >= 0
}

// AvailablePieces returns a copy of the available pool
func (b *Board) AvailablePieces() []Piece {
	result := make([]Piece, len(b.Available))
	copy(result, b.Available)
	return result
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col] == nil {
				count++
			}
		}
	}
	return count
}

// IsFull returns true once every piece is on the grid: no empty cells, no
// held pieces and nothing left to hand out
func (b *Board) IsFull() bool {
	return b.EmptyCount() == 0 && len(b.Available) == 0 && b.Hands[0] == nil && b.Hands[1] == nil
}

// PlacedPieces returns the pieces on the grid in row-major order
func (b *Board) PlacedPieces() []Piece {
	var placed []Piece
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.Cells[row][col]; p != nil {
				placed = append(placed, *p)
			}
		}
	}
	return placed
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	c := &Board{
		Available: b.AvailablePieces(),
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.Cells[row][col]; p != nil {
				piece := *p
				c.Cells[row][col] = &piece
			}
		}
	}
	for i, h := range b.Hands {
		if h != nil {
			piece := *h
			c.Hands[i] = &piece
		}
	}
	return c
}

func (b *Board) availableIndex(piece Piece) int {
	for i, p := range b.Available {
		if p == piece {
			return i
		}
	}
	return -1
}
