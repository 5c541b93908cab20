package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReconciler struct {
	dayCalls  []string
	dateCalls []time.Time
	summary   attendance.ReconcileSummary
}

func (s *stubReconciler) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.ReconcileResult, error) {
	s.dayCalls = append(s.dayCalls, employeeID)
	return attendance.ReconcileResult{}, nil
}

func (s *stubReconciler) ReconcileDate(ctx context.Context, date time.Time) (attendance.ReconcileSummary, error) {
	s.dateCalls = append(s.dateCalls, date)
	return s.summary, nil
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return cmd, out
}

func setReconcileFlags(t *testing.T, date, employeeID string) {
	t.Helper()
	reconcileDate, reconcileEmployeeID = date, employeeID
	t.Cleanup(func() { reconcileDate, reconcileEmployeeID = "", "" })
}

var testNow = time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)

func TestResolveDate(t *testing.T) {
	date, err := resolveDate("", testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), date)

	date, err = resolveDate("2025-01-31", testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), date)

	_, err = resolveDate("31/01/2025", testNow, time.UTC)
	assert.Error(t, err)
}

func TestRunReconcile_WholeDate(t *testing.T) {
	setReconcileFlags(t, "2025-03-10", "")
	rec := &stubReconciler{summary: attendance.ReconcileSummary{Date: "2025-03-10", Total: 2, Reconciled: 2}}
	cmd, out := newTestCommand()

	err := runReconcile(context.Background(), cmd, rec, time.UTC, testNow)

	require.NoError(t, err)
	require.Len(t, rec.dateCalls, 1)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), rec.dateCalls[0])
	assert.Contains(t, out.String(), `"reconciled": 2`)
}

func TestRunReconcile_SingleEmployee(t *testing.T) {
	setReconcileFlags(t, "", "emp-1")
	rec := &stubReconciler{}
	cmd, _ := newTestCommand()

	require.NoError(t, runReconcile(context.Background(), cmd, rec, time.UTC, testNow))
	assert.Equal(t, []string{"emp-1"}, rec.dayCalls)
	assert.Empty(t, rec.dateCalls)
}

func TestRunReconcile_RejectsFutureDate(t *testing.T) {
	setReconcileFlags(t, "2025-03-13", "")
	rec := &stubReconciler{}
	cmd, _ := newTestCommand()

	err := runReconcile(context.Background(), cmd, rec, time.UTC, testNow)

	assert.True(t, errors.Is(err, attendance.ErrFutureDate))
	assert.Empty(t, rec.dateCalls)
}

func TestRunReconcile_ReportsFailures(t *testing.T) {
	setReconcileFlags(t, "2025-03-11", "")
	rec := &stubReconciler{summary: attendance.ReconcileSummary{
		Total:    3,
		Failures: []attendance.ReconcileFailure{{EmployeeID: "emp-2", Error: "boom"}},
	}}
	cmd, out := newTestCommand()

	err := runReconcile(context.Background(), cmd, rec, time.UTC, testNow)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3")
	assert.Contains(t, out.String(), "emp-2")
}
