package main

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/app"
	"github.com/spf13/cobra"
)

var syncDate string

var syncCmd = &cobra.Command{
	Use:   "sync-activity",
	Short: "Pull monitor activity for a date (default: yesterday)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			date, err := resolveDate(syncDate, time.Now(), a.Config.Location())
			if err != nil {
				return err
			}

			summary, err := a.ActivitySync.SyncDate(ctx, date)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		})
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncDate, "date", "", "Date to sync (YYYY-MM-DD)")
}
