package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Michaelcode2/pricechecker/internal/mockapi"
)

var withMock bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactive scanner, optionally alongside the mock lookup service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !withMock {
			return scanLoop(cmd.Context(), appCtx, os.Stdin, cmd.OutOrStdout())
		}

		mc := appCtx.Config().Mock
		srv := mockapi.New(mockapi.Config{
			Addr:   mc.Addr,
			ApiKey: mc.ApiKey,
			Seed:   mc.Seed,
			Delay:  time.Duration(mc.DelayMs) * time.Millisecond,
		})
		if api := appCtx.Settings().Current().ApiUrl; api != "http://"+mc.Addr {
			zap.L().Warn("apiUrl does not point at the mock service",
				zap.String("api_url", api), zap.String("mock_addr", mc.Addr))
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		scanDone := make(chan struct{})
		g.Go(srv.Start)
		g.Go(func() error {
			defer close(scanDone)
			return scanLoop(ctx, appCtx, os.Stdin, cmd.OutOrStdout())
		})
		g.Go(func() error {
			select {
			case <-ctx.Done():
			case <-scanDone:
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	runCmd.Flags().BoolVar(&withMock, "with-mock", false, "serve the mock lookup service in-process")
}
