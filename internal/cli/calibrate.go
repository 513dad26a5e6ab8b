package cli

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/creditcurve/internal/app"
)

func newCalibrateCmd(root *rootOptions) *cobra.Command {
	var opts app.CalibrateOptions
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Bootstrap the credit curve from snapshot quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.getApp().Calibrate(opts)
		},
	}
	addMarketFlag(cmd, &opts.MarketPath)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print knots as JSON")
	return cmd
}
