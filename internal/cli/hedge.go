package cli

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/creditcurve/internal/app"
)

func newHedgeCmd(root *rootOptions) *cobra.Command {
	var opts app.HedgeOptions
	cmd := &cobra.Command{
		Use:   "hedge",
		Short: "Compute bucket hedge notionals for the snapshot target trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.getApp().Hedge(opts)
		},
	}
	addMarketFlag(cmd, &opts.MarketPath)
	return cmd
}
