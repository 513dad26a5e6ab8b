package cli

import (
	"github.com/spf13/cobra"

	"github.com/meenmo/creditcurve/internal/app"
)

func newDiscountCmd(root *rootOptions) *cobra.Command {
	var opts app.DiscountOptions
	cmd := &cobra.Command{
		Use:   "discount",
		Short: "Print zero rates and discount factors of the snapshot yield curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.getApp().Discount(opts)
		},
	}
	addMarketFlag(cmd, &opts.MarketPath)
	cmd.Flags().Float64SliceVar(&opts.Times, "times", nil, "Times in years (default from output.discount_times)")
	return cmd
}
