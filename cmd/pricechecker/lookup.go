package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Michaelcode2/pricechecker/internal/checker"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <code>",
	Short: "Submit a single scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := appCtx.Checker().SubmitScan(cmd.Context(), args[0])
		printOutcome(cmd.OutOrStdout(), o)
		if o.Status == checker.Failed {
			return fmt.Errorf("%s error", o.Reason())
		}
		return nil
	},
}
