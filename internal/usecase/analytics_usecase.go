package usecase

import (
	"context"
	"time"

	"go-hiring-sync/internal/domain"
)

// GetAnalyticsSnapshot is computed from the cache on every call.
func (s *HiringService) GetAnalyticsSnapshot(now time.Time) domain.AnalyticsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.AnalyticsSnapshot{
		GeneratedAt:        now.UTC(),
		TotalJobs:          len(s.jobs),
		TotalCandidates:    len(s.candidates),
		CandidatesByStage:  make(map[string]int, len(domain.PipelineStages)),
		JobsByStatus:       map[string]int{},
		InterviewsByStatus: map[string]int{},
		OffersByStatus:     map[string]int{},
	}
	for _, stage := range domain.PipelineStages {
		snap.CandidatesByStage[stage] = 0
	}

	for _, j := range s.jobs {
		snap.JobsByStatus[j.Status]++
		if j.Status == domain.JobStatusPublished {
			snap.ActiveJobs++
		}
	}

	since := now.Add(-domain.RecentCandidateWindow)
	for _, c := range s.candidates {
		snap.CandidatesByStage[c.Stage]++
		if c.AppliedAt.After(since) {
			snap.RecentCandidates++
		}
	}

	for _, iv := range s.interviews {
		snap.InterviewsByStatus[iv.Status]++
		switch {
		case iv.Status == domain.InterviewScheduled && iv.ScheduledAt.After(now):
			snap.UpcomingInterviews++
		case iv.Status == domain.InterviewCompleted:
			snap.CompletedInterviews++
		}
	}

	for _, o := range s.offers {
		snap.OffersByStatus[o.Status]++
		switch o.Status {
		case domain.OfferSent:
			snap.PendingOffers++
		case domain.OfferAccepted:
			snap.AcceptedOffers++
		}
	}
	return snap
}

func (s *HiringService) GetAuditLog(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	return s.audit.Query(ctx, filter)
}

func (s *HiringService) ExportAuditLog(ctx context.Context, filter domain.AuditFilter, format string) ([]byte, string, error) {
	return s.audit.Export(ctx, filter, format)
}
