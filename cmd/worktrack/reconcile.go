package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/app"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	reconcileDate       string
	reconcileEmployeeID string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile attendance for a date (default: yesterday)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runReconcile(ctx, cmd, a.Reconciler, a.Config.Location(), time.Now())
		})
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileDate, "date", "", "Date to reconcile (YYYY-MM-DD)")
	reconcileCmd.Flags().StringVar(&reconcileEmployeeID, "employee-id", "", "Reconcile only this employee")
}

func runReconcile(ctx context.Context, cmd *cobra.Command, reconciler attendance.Reconciler, loc *time.Location, now time.Time) error {
	date, err := resolveDate(reconcileDate, now, loc)
	if err != nil {
		return err
	}
	if date.After(utils.DateOf(now, loc)) {
		return attendance.ErrFutureDate
	}

	if reconcileEmployeeID != "" {
		result, err := reconciler.ReconcileDay(ctx, reconcileEmployeeID, date)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	}

	summary, err := reconciler.ReconcileDate(ctx, date)
	if err != nil {
		return err
	}
	if err := printJSON(cmd, summary); err != nil {
		return err
	}
	if len(summary.Failures) > 0 {
		return fmt.Errorf("%d of %d employees failed to reconcile", len(summary.Failures), summary.Total)
	}
	return nil
}
