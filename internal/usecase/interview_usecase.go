package usecase

import (
	"context"
	"sort"
	"time"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
)

func interviewID(i domain.Interview) string { return i.ID }

// Interview fields with no store column; they travel through the metadata
// writer.
const (
	fieldMode         = "mode"
	fieldInterviewers = "interviewers"
)

func (s *HiringService) ListInterviews() []domain.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.interviews)
}

func (s *HiringService) GetInterview(id string) (*domain.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iv, ok := find(s.interviews, func(i domain.Interview) bool { return i.ID == id })
	if !ok {
		return nil, notFound(domain.EntityInterviews, id)
	}
	return &iv, nil
}

func (s *HiringService) GetInterviewsByCandidate(candidateID string) []domain.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.interviews, func(i domain.Interview) bool { return i.CandidateID == candidateID })
}

func (s *HiringService) GetInterviewsByInterviewer(userID string) []domain.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.interviews, func(i domain.Interview) bool { return i.HasInterviewer(userID) })
}

// GetUpcomingInterviews returns scheduled interviews after now, nearest first.
func (s *HiringService) GetUpcomingInterviews(now time.Time) []domain.Interview {
	s.mu.RLock()
	out := filter(s.interviews, func(i domain.Interview) bool {
		return i.Status == domain.InterviewScheduled && i.ScheduledAt.After(now)
	})
	s.mu.RUnlock()

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ScheduledAt.Before(out[b].ScheduledAt)
	})
	return out
}

func (s *HiringService) CreateInterview(ctx context.Context, interview domain.Interview, actorID string) (*domain.Interview, error) {
	if interview.ScheduledAt.IsZero() {
		return nil, apperror.BadRequest("scheduledAt is required")
	}
	if interview.Duration == 0 {
		interview.Duration = domain.DefaultInterviewDuration
	}
	if interview.Status == "" {
		interview.Status = domain.InterviewScheduled
	}
	if interview.Interviewers == nil {
		interview.Interviewers = []string{}
	}
	if err := s.check(interview); err != nil {
		return nil, err
	}
	if c, err := s.GetCandidate(interview.CandidateID); err == nil {
		if interview.CandidateName == "" {
			interview.CandidateName = c.Name
		}
		if interview.JobID == "" {
			interview.JobID = c.JobID
		}
		if interview.JobTitle == "" {
			interview.JobTitle = c.JobTitle
		}
	}

	rec, err := domain.ToRecord(interview)
	if err != nil {
		return nil, err
	}
	aux := map[string]any{fieldMode: interview.Mode, fieldInterviewers: interview.Interviewers}
	if err := s.meta.Write(rec, interview.Notes, aux); err != nil {
		return nil, err
	}

	saved, err := s.gw.Create(ctx, domain.EntityInterviews, rec, actorID)
	if err != nil {
		return nil, err
	}
	var created domain.Interview
	if err := domain.FromRecord(saved, &created); err != nil {
		return nil, err
	}
	created = enrichInterview(created, interview)

	s.mu.Lock()
	s.interviews = replace(s.interviews, created, interviewID)
	s.mu.Unlock()
	return &created, nil
}

// UpdateInterview re-packs the metadata only when notes, mode or interviewers
// change. Missing parts are taken from the cached interview so a partial
// update never wipes the others.
func (s *HiringService) UpdateInterview(ctx context.Context, id string, patch domain.InterviewPatch, actorID string) (*domain.Interview, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}
	current, err := s.GetInterview(id)
	if err != nil {
		return nil, err
	}

	rec, err := domain.ToRecord(patch)
	if err != nil {
		return nil, err
	}
	if patch.Notes != nil || patch.Mode != nil || patch.Interviewers != nil {
		note, mode, interviewers := current.Notes, current.Mode, current.Interviewers
		if patch.Notes != nil {
			note = *patch.Notes
		}
		if patch.Mode != nil {
			mode = *patch.Mode
		}
		if patch.Interviewers != nil {
			interviewers = *patch.Interviewers
		}
		if interviewers == nil {
			interviewers = []string{}
		}
		aux := map[string]any{fieldMode: mode, fieldInterviewers: interviewers}
		if err := s.meta.Write(rec, note, aux); err != nil {
			return nil, err
		}
	}

	saved, err := s.gw.Update(ctx, domain.EntityInterviews, id, rec, actorID)
	if err != nil {
		return nil, err
	}
	var updated domain.Interview
	if err := domain.FromRecord(saved, &updated); err != nil {
		return nil, err
	}

	fallback := *current
	if patch.Mode != nil {
		fallback.Mode = *patch.Mode
	}
	if patch.Interviewers != nil {
		fallback.Interviewers = *patch.Interviewers
	}
	if patch.CandidateName != nil {
		fallback.CandidateName = *patch.CandidateName
	}
	if patch.JobTitle != nil {
		fallback.JobTitle = *patch.JobTitle
	}
	updated = enrichInterview(updated, fallback)

	s.mu.Lock()
	s.interviews = replace(s.interviews, updated, interviewID)
	s.mu.Unlock()
	return &updated, nil
}

func (s *HiringService) DeleteInterview(ctx context.Context, id, actorID string) error {
	if _, err := s.GetInterview(id); err != nil {
		return err
	}
	if err := s.gw.Delete(ctx, domain.EntityInterviews, id, actorID); err != nil {
		return err
	}
	s.mu.Lock()
	s.interviews = remove(s.interviews, id, interviewID)
	s.mu.Unlock()
	return nil
}

// enrichInterview prefers what the store returned and falls back to the
// values the caller (or the cache) already had.
func enrichInterview(got, fallback domain.Interview) domain.Interview {
	if got.Mode == "" {
		got.Mode = fallback.Mode
	}
	if got.Interviewers == nil {
		got.Interviewers = fallback.Interviewers
	}
	if got.CandidateName == "" {
		got.CandidateName = fallback.CandidateName
	}
	if got.JobTitle == "" {
		got.JobTitle = fallback.JobTitle
	}
	if got.Interviewers == nil {
		got.Interviewers = []string{}
	}
	return got
}
