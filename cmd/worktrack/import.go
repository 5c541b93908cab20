package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/app"
	"github.com/spf13/cobra"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import-attendance",
	Short: "Import attendance records from an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			f, err := os.Open(importFile)
			if err != nil {
				return fmt.Errorf("failed to open workbook: %w", err)
			}
			defer f.Close()

			result, err := a.Attendance.ImportAttendance(ctx, f)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to the .xlsx workbook")
	_ = importCmd.MarkFlagRequired("file")
}
