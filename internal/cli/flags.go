package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/quarto/internal/model"
)

var winFlagNames = []string{"rows", "cols", "diagonals", "squares2", "squares3", "corners"}

// gameFlags are the game settings shared by play and game create
type gameFlags struct {
	rows, cols, diagonals      bool
	squares2, squares3, corner bool
	claimWindow                time.Duration
	clock                      bool
	minutes                    int
}

func (f *gameFlags) register(cmd *cobra.Command) {
	def := model.DefaultWinConfig()
	flags := cmd.Flags()

	flags.BoolVar(&f.rows, "rows", def.Rows, "Rows can win")
	flags.BoolVar(&f.cols, "cols", def.Columns, "Columns can win")
	flags.BoolVar(&f.diagonals, "diagonals", def.Diagonals, "Diagonals can win")
	flags.BoolVar(&f.squares2, "squares2", def.Squares2, "Corners of 2x2 squares can win")
	flags.BoolVar(&f.squares3, "squares3", def.Squares3, "Corners of 3x3 squares can win")
	flags.BoolVar(&f.corner, "corners", def.Corners, "The four board corners can win")
	flags.DurationVar(&f.claimWindow, "claim-window", model.DefaultClaimWindow, "Time to call quarto once the board is full")
	flags.BoolVar(&f.clock, "clock", false, "Enable the chess clock")
	flags.IntVar(&f.minutes, "minutes", 0, "Chess clock per player in minutes (implies --clock)")
}

func (f *gameFlags) win() model.WinConfig {
	return model.WinConfig{
		Rows:      f.rows,
		Columns:   f.cols,
		Diagonals: f.diagonals,
		Squares2:  f.squares2,
		Squares3:  f.squares3,
		Corners:   f.corner,
	}
}

// winChanged reports whether any shape family flag was set explicitly
func (f *gameFlags) winChanged(cmd *cobra.Command) bool {
	for _, name := range winFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *gameFlags) budgetMinutes() int {
	if f.minutes == 0 && f.clock {
		return model.DefaultTimeBudgetMinutes
	}
	return f.minutes
}

func (f *gameFlags) config() model.GameConfig {
	// Anything past the cap stays invalid without overflowing
	minutes := f.budgetMinutes()
	if limit := int(model.MaxConfigDuration / time.Minute); minutes > limit {
		minutes = limit + 1
	}
	return model.GameConfig{
		Win:         f.win(),
		ClaimWindow: f.claimWindow,
		TimeBudget:  time.Duration(minutes) * time.Minute,
	}
}
