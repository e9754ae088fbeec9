package usecase

import (
	"context"

	"go-hiring-sync/internal/domain"

	"go.uber.org/zap"
)

func jobID(j domain.Job) string { return j.ID }

func (s *HiringService) ListJobs() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.jobs)
}

func (s *HiringService) GetJob(id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := find(s.jobs, func(j domain.Job) bool { return j.ID == id })
	if !ok {
		return nil, notFound(domain.EntityJobs, id)
	}
	return &j, nil
}

// CreateJob starts the applicant counter at zero and credits the actor as
// author.
func (s *HiringService) CreateJob(ctx context.Context, job domain.Job, actorID string) (*domain.Job, error) {
	job.Applicants = 0
	if job.CreatedBy == "" {
		job.CreatedBy = actorID
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	if err := s.check(job); err != nil {
		return nil, err
	}

	created, err := create[domain.Job](ctx, s.gw, domain.EntityJobs, job, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.jobs = replace(s.jobs, created, jobID)
	s.mu.Unlock()
	return &created, nil
}

func (s *HiringService) UpdateJob(ctx context.Context, id string, patch domain.JobPatch, actorID string) (*domain.Job, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}
	if _, err := s.GetJob(id); err != nil {
		return nil, err
	}
	return s.writeJob(ctx, id, patch, actorID)
}

func (s *HiringService) writeJob(ctx context.Context, id string, patch any, actorID string) (*domain.Job, error) {
	updated, err := update[domain.Job](ctx, s.gw, domain.EntityJobs, id, patch, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.jobs = replace(s.jobs, updated, jobID)
	s.mu.Unlock()
	return &updated, nil
}

// DeleteJob has no cross-entity guard; candidates keep their job reference.
func (s *HiringService) DeleteJob(ctx context.Context, id, actorID string) error {
	if _, err := s.GetJob(id); err != nil {
		return err
	}
	if err := s.gw.Delete(ctx, domain.EntityJobs, id, actorID); err != nil {
		return err
	}
	s.mu.Lock()
	s.jobs = remove(s.jobs, id, jobID)
	s.mu.Unlock()
	return nil
}

// adjustApplicants applies an incremental counter change. The counter never
// goes below zero. Errors are returned after the candidate write already
// succeeded, so callers log them and leave repair to reconciliation.
func (s *HiringService) adjustApplicants(ctx context.Context, jobID string, delta int, actorID string) error {
	job, err := s.GetJob(jobID)
	if err != nil {
		return err
	}
	next := job.Applicants + delta
	if next < 0 {
		next = 0
	}
	if next == job.Applicants {
		return nil
	}
	_, err = s.writeJob(ctx, jobID, domain.Record{"applicants": next}, actorID)
	return err
}

// RecomputeApplicantCount sets the counter to the number of cached candidates
// referencing the job. It writes only when the stored value drifted, so
// repeated calls are idempotent.
func (s *HiringService) RecomputeApplicantCount(ctx context.Context, jobID, actorID string) (*domain.Job, error) {
	job, err := s.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	actual := len(s.GetCandidatesByJob(jobID))
	if job.Applicants == actual {
		return job, nil
	}

	s.log.Info("applicant count drift repaired",
		zap.String("job_id", jobID),
		zap.Int("stored", job.Applicants),
		zap.Int("actual", actual),
	)
	return s.writeJob(ctx, jobID, domain.Record{"applicants": actual}, actorID)
}

// ReconcileApplicantCounts runs RecomputeApplicantCount over every job and
// returns how many were corrected. It continues past per-job failures and
// returns the first one.
func (s *HiringService) ReconcileApplicantCounts(ctx context.Context, actorID string) (int, error) {
	var (
		fixed    int
		firstErr error
	)
	for _, job := range s.ListJobs() {
		before := job.Applicants
		after, err := s.RecomputeApplicantCount(ctx, job.ID, actorID)
		if err != nil {
			s.log.Warn("applicant count reconciliation failed", zap.String("job_id", job.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if after.Applicants != before {
			fixed++
		}
	}
	return fixed, firstErr
}
