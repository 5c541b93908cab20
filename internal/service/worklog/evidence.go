package worklog

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"golang.org/x/sync/errgroup"
)

type EvidenceServiceImpl struct {
	entries    worklog.EntryRepository
	activities worklog.ActivityRepository
}

func NewEvidenceService(entries worklog.EntryRepository, activities worklog.ActivityRepository) *EvidenceServiceImpl {
	return &EvidenceServiceImpl{entries: entries, activities: activities}
}

// GetWorkEvidence implements worklog.EvidenceService. Draft and submitted
// entries both count.
func (s *EvidenceServiceImpl) GetWorkEvidence(ctx context.Context, employeeID string, date time.Time) (attendance.WorkEvidence, error) {
	var tagMinutes, flowaceMinutes int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.entries.SumMinutes(gctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("tag minutes: %w", err)
		}
		tagMinutes = m
		return nil
	})
	g.Go(func() error {
		m, err := s.activities.GetMinutes(gctx, employeeID, date, worklog.SourceFlowace)
		if err != nil {
			return fmt.Errorf("flowace minutes: %w", err)
		}
		flowaceMinutes = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.WorkEvidence{}, err
	}

	return attendance.NewWorkEvidence(tagMinutes, flowaceMinutes), nil
}
