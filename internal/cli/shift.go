package cli

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/creditcurve/internal/app"
)

func newShiftCmd(root *rootOptions) *cobra.Command {
	var (
		opts     app.ShiftOptions
		parallel float64
	)
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Shift the snapshot yield curve and print base and shifted zero rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("parallel") {
				opts.Parallel = &parallel
			}
			return root.getApp().Shift(opts)
		},
	}
	addMarketFlag(cmd, &opts.MarketPath)
	cmd.Flags().StringVar(&opts.Type, "type", "absolute", "Shift type: absolute or relative")
	cmd.Flags().Float64Var(&parallel, "parallel", 0, "Parallel shift amount")
	cmd.Flags().StringArrayVar(&opts.Buckets, "bucket", nil, "Bucket shift lo:hi:amount, repeatable")
	cmd.Flags().StringArrayVar(&opts.Points, "point", nil, "Point shift time:amount, repeatable")
	return cmd
}
