package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quarto/internal/dependencies/mocks"
	"github.com/mcoot/quarto/internal/dependencies/random"
	"github.com/mcoot/quarto/internal/model"
	"github.com/mcoot/quarto/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
}

var (
	wideSquareLightSolid  = model.Piece{Width: model.WidthWide, Shape: model.ShapeSquare, Color: model.ColorLight, Fill: model.FillSolid}
	narrowRoundDarkHollow = model.Piece{Width: model.WidthNarrow, Shape: model.ShapeRound, Color: model.ColorDark, Fill: model.FillHollow}
)

// NewBoard tests

func (s *ServiceSuite) TestNewBoardHasAllPiecesAvailable() {
	board := s.service.NewBoard()

	s.Len(board.Available, model.PieceCount)
	s.ElementsMatch(model.AllPieces(), board.Available)
	s.Equal(model.BoardSize*model.BoardSize, board.EmptyCount())
	s.NoError(s.service.VerifyInventory(board))
}

func (s *ServiceSuite) TestNewBoardIsShuffled() {
	// Intn always returning 0 rotates the ordered set left by one
	s.random.QueueIntn(0)
	board := s.service.NewBoard()

	all := model.AllPieces()
	s.Equal(all[0], board.Available[15])
	s.Equal(all[1], board.Available[0])
	s.Equal(all[15], board.Available[14])
}

func (s *ServiceSuite) TestShuffledPiecesIsPermutation() {
	service := New(random.New(), testutil.NopLogger())
	pieces := service.ShuffledPieces()

	s.Len(pieces, model.PieceCount)
	s.ElementsMatch(model.AllPieces(), pieces)
}

// AssignPieceToPlayer tests

func (s *ServiceSuite) TestAssignPieceMovesPieceToHand() {
	board := s.service.NewBoard()

	err := board.AssignPieceToPlayer(model.Player2, wideSquareLightSolid)
	s.Require().NoError(err)

	held, ok := board.Hand(model.Player2)
	s.True(ok)
	s.Equal(wideSquareLightSolid, held)
	s.False(board.IsAvailable(wideSquareLightSolid))
	s.Len(board.Available, model.PieceCount-1)
	s.NoError(s.service.VerifyInventory(board))
}

func (s *ServiceSuite) TestAssignPieceTwiceFails() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)

	err := board.AssignPieceToPlayer(model.Player2, wideSquareLightSolid)
	s.ErrorIs(err, model.ErrPieceUnavailable)

	_, ok := board.Hand(model.Player2)
	s.False(ok)
}

func (s *ServiceSuite) TestAssignPieceInvalidPlayer() {
	board := s.service.NewBoard()

	s.ErrorIs(board.AssignPieceToPlayer(0, wideSquareLightSolid), model.ErrInvalidPlayer)
	s.ErrorIs(board.AssignPieceToPlayer(3, wideSquareLightSolid), model.ErrInvalidPlayer)
	s.True(board.IsAvailable(wideSquareLightSolid))
}

func (s *ServiceSuite) TestAssignPieceOverwritesHand() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)

	err := board.AssignPieceToPlayer(model.Player1, narrowRoundDarkHollow)
	s.Require().NoError(err)

	held, _ := board.Hand(model.Player1)
	s.Equal(narrowRoundDarkHollow, held)
}

// PlacePlayerPiece tests

func (s *ServiceSuite) TestPlacePieceSucceeds() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)

	err := board.PlacePlayerPiece(model.Player1, model.Position{Row: 2, Col: 3})
	s.Require().NoError(err)

	placed, ok := board.Piece(model.Position{Row: 2, Col: 3})
	s.True(ok)
	s.Equal(wideSquareLightSolid, placed)
	_, held := board.Hand(model.Player1)
	s.False(held)
	s.NoError(s.service.VerifyInventory(board))
}

func (s *ServiceSuite) TestPlacePieceWithEmptyHand() {
	board := s.service.NewBoard()

	err := board.PlacePlayerPiece(model.Player1, model.Position{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrNoPieceInHand)
}

func (s *ServiceSuite) TestPlacePieceOutOfBounds() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)

	for _, pos := range []model.Position{
		{Row: 4, Col: 0},
		{Row: 0, Col: -1},
		{Row: -1, Col: 2},
		{Row: 1, Col: 4},
	} {
		s.ErrorIs(board.PlacePlayerPiece(model.Player1, pos), model.ErrInvalidCell)
	}

	_, held := board.Hand(model.Player1)
	s.True(held)
}

func (s *ServiceSuite) TestPlacePieceOnOccupiedCell() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)
	_ = board.PlacePlayerPiece(model.Player1, model.Position{Row: 0, Col: 0})
	_ = board.AssignPieceToPlayer(model.Player2, narrowRoundDarkHollow)

	err := board.PlacePlayerPiece(model.Player2, model.Position{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrInvalidCell)

	placed, _ := board.Piece(model.Position{Row: 0, Col: 0})
	s.Equal(wideSquareLightSolid, placed)
}

// IsValidSpot / Piece tests

func (s *ServiceSuite) TestIsValidSpot() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)
	_ = board.PlacePlayerPiece(model.Player1, model.Position{Row: 1, Col: 1})

	s.True(board.IsValidSpot(model.Position{Row: 0, Col: 0}))
	s.True(board.IsValidSpot(model.Position{Row: 3, Col: 3}))
	s.False(board.IsValidSpot(model.Position{Row: 1, Col: 1}))
	s.False(board.IsValidSpot(model.Position{Row: 4, Col: 0}))
	s.False(board.IsValidSpot(model.Position{Row: 0, Col: -1}))
}

func (s *ServiceSuite) TestPieceOutOfRangeLooksEmpty() {
	board := s.service.NewBoard()

	_, ok := board.Piece(model.Position{Row: 0, Col: 0})
	s.False(ok)
	_, ok = board.Piece(model.Position{Row: 9, Col: 9})
	s.False(ok)
}

// ValidatePlacement tests

func (s *ServiceSuite) TestValidatePlacement() {
	board := s.service.NewBoard()

	s.ErrorIs(s.service.ValidatePlacement(board, 5, model.Position{}), model.ErrInvalidPlayer)
	s.ErrorIs(s.service.ValidatePlacement(board, model.Player1, model.Position{}), model.ErrNoPieceInHand)

	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)
	s.NoError(s.service.ValidatePlacement(board, model.Player1, model.Position{}))
	s.ErrorIs(s.service.ValidatePlacement(board, model.Player1, model.Position{Row: 4}), model.ErrInvalidCell)
}

// ResetBoard tests

func (s *ServiceSuite) TestResetBoardRestoresAllPieces() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)
	_ = board.PlacePlayerPiece(model.Player1, model.Position{Row: 0, Col: 0})
	_ = board.AssignPieceToPlayer(model.Player2, narrowRoundDarkHollow)

	s.service.ResetBoard(board)

	s.Len(board.Available, model.PieceCount)
	s.Equal(model.BoardSize*model.BoardSize, board.EmptyCount())
	_, held := board.Hand(model.Player2)
	s.False(held)
	s.NoError(s.service.VerifyInventory(board))
}

// Full game round trip

func (s *ServiceSuite) TestPlacingEveryPieceFillsBoard() {
	board := s.service.NewBoard()
	player := model.Player1

	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			s.False(board.IsFull())
			piece := board.Available[0]
			s.Require().NoError(board.AssignPieceToPlayer(player.Opponent(), piece))
			s.Require().NoError(s.service.VerifyInventory(board))
			s.Require().NoError(board.PlacePlayerPiece(player.Opponent(), model.Position{Row: row, Col: col}))
			s.Require().NoError(s.service.VerifyInventory(board))
			player = player.Opponent()
		}
	}

	s.True(board.IsFull())
	s.Empty(board.Available)
	s.Len(board.PlacedPieces(), model.PieceCount)
}

// VerifyInventory tests

func (s *ServiceSuite) TestVerifyInventoryDetectsDuplicate() {
	board := s.service.NewBoard()
	dup := board.Available[0]
	board.Hands[0] = &dup

	s.Error(s.service.VerifyInventory(board))
}

func (s *ServiceSuite) TestVerifyInventoryDetectsMissingPiece() {
	board := s.service.NewBoard()
	board.Available = board.Available[1:]

	s.Error(s.service.VerifyInventory(board))
}

// Clone tests

func (s *ServiceSuite) TestCloneIsIndependent() {
	board := s.service.NewBoard()
	_ = board.AssignPieceToPlayer(model.Player1, wideSquareLightSolid)

	clone := board.Clone()
	_ = board.PlacePlayerPiece(model.Player1, model.Position{Row: 0, Col: 0})

	_, ok := clone.Piece(model.Position{Row: 0, Col: 0})
	s.False(ok)
	held, ok := clone.Hand(model.Player1)
	s.True(ok)
	s.Equal(wideSquareLightSolid, held)
}
