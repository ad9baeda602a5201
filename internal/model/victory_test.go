package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVictoryCellsAndDescribe(t *testing.T) {
	tests := []struct {
		name     string
		victory  VictoryResult
		cells    []Position
		describe string
	}{
		{
			name:     "row",
			victory:  VictoryResult{Attribute: AttributeWidth, Family: FamilyRow, Index: 2},
			cells:    []Position{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
			describe: "row 3",
		},
		{
			name:     "column",
			victory:  VictoryResult{Attribute: AttributeShape, Family: FamilyColumn, Index: 0},
			cells:    []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
			describe: "column 1",
		},
		{
			name:     "main diagonal",
			victory:  VictoryResult{Attribute: AttributeColor, Family: FamilyDiagonal, Diagonal: DiagonalMain},
			cells:    []Position{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			describe: "main diagonal",
		},
		{
			name:     "anti diagonal",
			victory:  VictoryResult{Attribute: AttributeColor, Family: FamilyDiagonal, Diagonal: DiagonalAnti},
			cells:    []Position{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
			describe: "anti diagonal",
		},
		{
			name:     "2x2 square",
			victory:  VictoryResult{Attribute: AttributeFill, Family: FamilySquare2x2, Corner: Position{1, 2}},
			cells:    []Position{{1, 2}, {1, 3}, {2, 2}, {2, 3}},
			describe: "corners of the 2x2 square at (2,3)",
		},
		{
			name:     "3x3 square",
			victory:  VictoryResult{Attribute: AttributeFill, Family: FamilySquare3x3, Corner: Position{0, 1}},
			cells:    []Position{{0, 1}, {0, 3}, {2, 1}, {2, 3}},
			describe: "corners of the 3x3 square at (1,2)",
		},
		{
			name:     "board corners",
			victory:  VictoryResult{Attribute: AttributeWidth, Family: FamilySquare4x4},
			cells:    []Position{{0, 0}, {0, 3}, {3, 0}, {3, 3}},
			describe: "board corners",
		},
		{
			name:     "no win",
			victory:  NoWin,
			cells:    nil,
			describe: "no win",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cells, tt.victory.Cells())
			assert.Equal(t, tt.describe, tt.victory.Describe())
			assert.Equal(t, tt.cells != nil, tt.victory.IsWin())
		})
	}
}

func TestWinConfigEnabled(t *testing.T) {
	cfg := DefaultWinConfig()

	assert.True(t, cfg.Enabled(FamilyRow))
	assert.True(t, cfg.Enabled(FamilyColumn))
	assert.True(t, cfg.Enabled(FamilyDiagonal))
	assert.True(t, cfg.Enabled(FamilySquare2x2))
	assert.False(t, cfg.Enabled(FamilySquare3x3))
	assert.True(t, cfg.Enabled(FamilySquare4x4))
	assert.False(t, cfg.Enabled(FamilyNone))
	assert.True(t, cfg.AnyEnabled())

	assert.False(t, WinConfig{}.AnyEnabled())
	assert.True(t, WinConfig{Squares3: true}.AnyEnabled())
}
