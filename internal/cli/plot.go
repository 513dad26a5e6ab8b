package cli

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/creditcurve/internal/app"
)

func newPlotCmd(root *rootOptions) *cobra.Command {
	var opts app.PlotOptions
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart the calibrated hazard rate and survival curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.getApp().Plot(opts)
		},
	}
	addMarketFlag(cmd, &opts.MarketPath)
	cmd.Flags().StringVar(&opts.PNGPath, "png", "", "Output PNG path")
	return cmd
}
