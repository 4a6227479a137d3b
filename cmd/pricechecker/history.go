package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/history"
)

var (
	historyCSV   bool
	historyXLSX  string
	historyStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent successful scans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := appCtx.History().Snapshot()
		w := cmd.OutOrStdout()
		switch {
		case historyCSV:
			return history.WriteCSV(w, entries)
		case historyXLSX != "":
			f, err := os.Create(historyXLSX)
			if err != nil {
				return err
			}
			if err := history.WriteXLSX(f, entries); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(w, "Wrote %d scans to %s\n", len(entries), historyXLSX)
			return nil
		case historyStats:
			s, err := history.Summarize(entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "scans: %d (discounted %d)\n", s.Count, s.Discounted)
			if s.Count > 0 {
				fmt.Fprintf(w, "price min %.2f max %.2f mean %.2f median %.2f\n", s.Min, s.Max, s.Mean, s.Median)
			}
			return nil
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "No scans yet")
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s  %-14s  %s  %.2f\n",
				e.Timestamp.Format(domain.HistoryTimeLayout), e.Barcode, e.Product.Name, e.Product.Price)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the scan history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCtx.History().Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyCSV, "csv", false, "write CSV")
	historyCmd.Flags().StringVar(&historyXLSX, "xlsx", "", "write an Excel workbook to this file")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "print price statistics")
	historyCmd.AddCommand(historyClearCmd)
}
