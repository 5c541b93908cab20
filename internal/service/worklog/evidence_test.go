package worklog

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWorkEvidence(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := newFakeEntries()
	activities := newFakeActivities()
	svc := NewEvidenceService(entries, activities)

	ev, err := svc.GetWorkEvidence(t.Context(), "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.WorkEvidence{}, ev)

	_, err = entries.Upsert(t.Context(), worklog.Entry{EmployeeID: "emp-1", TagID: "t1", Date: day, Count: 2, Minutes: 90})
	require.NoError(t, err)
	// submitted entries still count
	_, err = entries.SetSubmitted(t.Context(), "emp-1", day, true)
	require.NoError(t, err)
	require.NoError(t, activities.Upsert(t.Context(), worklog.ActivityRecord{
		EmployeeID: "emp-1", Date: day, Source: worklog.SourceFlowace, ActiveMinutes: 240,
	}))

	ev, err = svc.GetWorkEvidence(t.Context(), "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.WorkEvidence{TagMinutes: 90, FlowaceMinutes: 240, HasAnyWork: true}, ev)

	ev, err = svc.GetWorkEvidence(t.Context(), "emp-1", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ev.HasAnyWork)
}

func TestGetWorkEvidence_PropagatesErrors(t *testing.T) {
	entries := newFakeEntries()
	entries.sumErr = errors.New("db down")
	svc := NewEvidenceService(entries, newFakeActivities())

	_, err := svc.GetWorkEvidence(t.Context(), "emp-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorContains(t, err, "tag minutes: db down")
}
