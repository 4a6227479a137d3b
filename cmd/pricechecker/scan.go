package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Michaelcode2/pricechecker/internal/app"
	"github.com/Michaelcode2/pricechecker/internal/checker"
	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/events"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Read scans from stdin, one per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		return scanLoop(cmd.Context(), appCtx, os.Stdin, cmd.OutOrStdout())
	},
}

// scanLoop submits every line of in and prints outcomes as they are published.
func scanLoop(ctx context.Context, a app.AppContext, in io.Reader, out io.Writer) error {
	show := func(o checker.Outcome) { printOutcome(out, o) }
	if err := a.Bus().Subscribe(events.TopicScanOutcome, show); err != nil {
		return err
	}
	defer func() { _ = a.Bus().Unsubscribe(events.TopicScanOutcome, show) }()

	if p, ok := a.Checker().Current(); ok {
		printProduct(out, p)
	}
	fmt.Fprintln(out, "Ready to scan")

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			a.Checker().SubmitScan(ctx, line)
		}
	}
}

func printOutcome(w io.Writer, o checker.Outcome) {
	switch o.Status {
	case checker.Succeeded:
		printProduct(w, o.Product)
		fmt.Fprintln(w, o.Message())
	case checker.Failed:
		fmt.Fprintf(w, "Error: %s\n", o.Message())
	}
}

func printProduct(w io.Writer, p domain.ProductInfo) {
	fmt.Fprintf(w, "%s\n  %.2f / %s\n", p.Name, p.Price, p.Measurement)
	if d, ok := p.Discount(); ok {
		fmt.Fprintf(w, "  discount: %.2f\n", d)
	}
}
