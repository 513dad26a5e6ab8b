package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meenmo/creditcurve/config"
	"github.com/meenmo/creditcurve/internal/app"
	"github.com/meenmo/creditcurve/logging"
)

type rootOptions struct {
	cfgFile   string
	logLevel  string
	appHandle *app.App
}

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "cdscurve",
		Short:         "Calibrate ISDA credit curves and hedge CDS exposures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.appHandle != nil {
				return nil
			}

			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}

			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}

			logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
			opts.appHandle = app.NewApp(cfg, logger)
			opts.appHandle.Out = cmd.OutOrStdout()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(newCalibrateCmd(opts))
	rootCmd.AddCommand(newHedgeCmd(opts))
	rootCmd.AddCommand(newDiscountCmd(opts))
	rootCmd.AddCommand(newShiftCmd(opts))
	rootCmd.AddCommand(newPlotCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) getApp() *app.App {
	if o.appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return o.appHandle
}

func addMarketFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "market", "", "Path to market snapshot YAML")
	_ = cmd.MarkFlagRequired("market")
}
