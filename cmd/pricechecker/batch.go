package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Michaelcode2/pricechecker/internal/batch"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <codes...>",
	Short: "Look up several codes concurrently without recording history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := batch.Run(cmd.Context(), appCtx.Lookup(), appCtx.Settings().Current(), args, batchWorkers)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, r := range results {
			if !r.OK() {
				fmt.Fprintf(w, "%-16s error: %v\n", r.Input, r.Err)
				continue
			}
			fmt.Fprintf(w, "%-16s %s  %.2f / %s\n", r.Code, r.Product.Name, r.Product.Price, r.Product.Measurement)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", batch.DefaultWorkers, "concurrent lookups")
}
