package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/app"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/config"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "worktrack",
	Short: "Maintenance commands for the worktrack backend",
	Long: `worktrack runs the attendance jobs of the API server on demand:
reconciling days, importing and exporting attendance workbooks and
pulling activity from the monitor. It reads the same environment as the server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(syncCmd)
}

// withApp loads the configuration, wires the application and runs fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.SetupLogger(cfg)

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// resolveDate parses a YYYY-MM-DD flag; empty means yesterday in loc.
func resolveDate(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return utils.DateOf(now, loc).AddDate(0, 0, -1), nil
	}
	date, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
