package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/quarto/internal/api/response"
	"github.com/mcoot/quarto/internal/model"
)

func newPiecesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pieces",
		Short: "List the 16 pieces and their codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := model.AllPieces()
			pieces := make([]response.Piece, len(all))
			for i, p := range all {
				pieces[i] = response.PieceFromModel(p)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(pieces)
			return nil
		},
	}
}
