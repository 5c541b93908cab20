package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/app"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/spf13/cobra"
)

var (
	exportFrom string
	exportTo   string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export-report",
	Short: "Write the attendance report of a date range to an XLSX file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := attendance.ExportAttendanceRequest{StartDate: exportFrom, EndDate: exportTo}
		if err := req.Validate(); err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("attendance_%s_%s.xlsx", exportFrom, exportTo)
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}

			if err := a.Attendance.WriteReport(ctx, req, f); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Report written to", out)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default attendance_<from>_<to>.xlsx)")
	_ = exportCmd.MarkFlagRequired("from")
	_ = exportCmd.MarkFlagRequired("to")
}
