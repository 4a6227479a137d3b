package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Michaelcode2/pricechecker/config"
	"github.com/Michaelcode2/pricechecker/internal/app"
)

var (
	cfile   string
	debug   bool
	appCtx  *app.Application
	rootCmd = &cobra.Command{
		Use:           "pricechecker",
		Short:         "Barcode price lookup terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if debug {
				cfg.System.Debug = true
			}
			appCtx = app.NewApplication(cfg)
			return appCtx.Init(cfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Release()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfile, "config", "c", "", "config file (default pricechecker.yml or /etc/pricechecker.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.AddCommand(scanCmd, lookupCmd, historyCmd, settingsCmd, batchCmd, runCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if appCtx != nil {
			appCtx.Release()
		}
		os.Exit(1)
	}
}
