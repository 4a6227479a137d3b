package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/Michaelcode2/pricechecker/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change runtime settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings in effect",
	Run: func(cmd *cobra.Command, args []string) {
		s := appCtx.Settings().Current()
		w := cmd.OutOrStdout()
		key := "(none)"
		if s.ApiKey != "" {
			key = "(set)"
		}
		fmt.Fprintf(w, "apiUrl             %s\n", s.ApiUrl)
		fmt.Fprintf(w, "apiKey             %s\n", key)
		fmt.Fprintf(w, "scanTimeoutSeconds %v\n", s.ScanTimeoutSeconds)
		fmt.Fprintf(w, "minScanLength      %d\n", s.MinScanLength)
		fmt.Fprintf(w, "maxScanLength      %d\n", s.MaxScanLength)
		fmt.Fprintf(w, "language           %s\n", s.Language)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Validate and save settings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next := appCtx.Settings().Current()
		for _, arg := range args {
			if err := applySetting(&next, arg); err != nil {
				return err
			}
		}
		if err := appCtx.Settings().Save(next); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
		return nil
	},
}

func applySetting(s *domain.Settings, arg string) error {
	key, val, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", arg)
	}
	var err error
	switch key {
	case "apiUrl":
		s.ApiUrl = val
	case "apiKey":
		s.ApiKey = val
	case "scanTimeoutSeconds":
		s.ScanTimeoutSeconds, err = cast.ToFloat64E(val)
	case "minScanLength":
		s.MinScanLength, err = decimalInt(val)
	case "maxScanLength":
		s.MaxScanLength, err = decimalInt(val)
	case "language":
		s.Language = val
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// decimalInt parses val as base 10; cast alone reads a leading zero as octal.
func decimalInt(val string) (int, error) {
	digits := strings.TrimLeft(strings.TrimSpace(val), "0")
	if digits == "" && strings.Contains(val, "0") {
		digits = "0"
	}
	return cast.ToIntE(digits)
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}
