package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/security"

	"go.uber.org/zap"
)

func candidateID(c domain.Candidate) string { return c.ID }

func (s *HiringService) ListCandidates() []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.candidates)
}

func (s *HiringService) GetCandidate(id string) (*domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := find(s.candidates, func(c domain.Candidate) bool { return c.ID == id })
	if !ok {
		return nil, notFound(domain.EntityCandidates, id)
	}
	return &c, nil
}

func (s *HiringService) GetCandidatesByJob(jobID string) []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.candidates, func(c domain.Candidate) bool { return c.JobID == jobID })
}

func (s *HiringService) GetCandidatesByStage(stage string) []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.candidates, func(c domain.Candidate) bool { return c.Stage == stage })
}

// CreateCandidate stores the candidate, then bumps the job's applicant
// counter with a second write. The two writes are not atomic; a counter
// failure is logged and left to reconciliation.
func (s *HiringService) CreateCandidate(ctx context.Context, candidate domain.Candidate, actorID string) (*domain.Candidate, error) {
	if candidate.Stage == "" {
		candidate.Stage = domain.StageApplied
	}
	if candidate.AppliedAt.IsZero() {
		candidate.AppliedAt = s.now().UTC()
	}
	if candidate.Skills == nil {
		candidate.Skills = []string{}
	}
	if err := s.check(candidate); err != nil {
		return nil, err
	}
	job, jobErr := s.GetJob(candidate.JobID)
	if jobErr == nil && candidate.JobTitle == "" {
		candidate.JobTitle = job.Title
	}

	created, err := create[domain.Candidate](ctx, s.gw, domain.EntityCandidates, candidate, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.candidates = replace(s.candidates, created, candidateID)
	s.mu.Unlock()

	if jobErr == nil {
		if err := s.adjustApplicants(ctx, job.ID, 1, actorID); err != nil {
			s.log.Warn("applicant counter increment failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	return &created, nil
}

func (s *HiringService) UpdateCandidate(ctx context.Context, id string, patch domain.CandidatePatch, actorID string) (*domain.Candidate, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}
	if _, err := s.GetCandidate(id); err != nil {
		return nil, err
	}
	return s.writeCandidate(ctx, id, patch, actorID)
}

func (s *HiringService) writeCandidate(ctx context.Context, id string, patch any, actorID string) (*domain.Candidate, error) {
	updated, err := update[domain.Candidate](ctx, s.gw, domain.EntityCandidates, id, patch, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.candidates = replace(s.candidates, updated, candidateID)
	s.mu.Unlock()
	return &updated, nil
}

// DeleteCandidate is refused while the candidate has active interviews. The
// job counter is decremented afterwards, clamped at zero.
func (s *HiringService) DeleteCandidate(ctx context.Context, id, actorID string) error {
	candidate, err := s.GetCandidate(id)
	if err != nil {
		return err
	}

	var blockers []apperror.Blocker
	for _, iv := range s.GetInterviewsByCandidate(id) {
		if iv.IsActive() {
			blockers = append(blockers, apperror.Blocker{Entity: domain.EntityInterviews.String(), ID: iv.ID})
		}
	}
	if len(blockers) > 0 {
		return apperror.NewReferentialViolation(domain.EntityCandidates.String(), id,
			fmt.Sprintf("Cannot delete candidate. They have %d active interview(s). Please cancel or complete them first.", len(blockers)),
			blockers...)
	}

	if err := s.gw.Delete(ctx, domain.EntityCandidates, id, actorID); err != nil {
		return err
	}
	s.mu.Lock()
	s.candidates = remove(s.candidates, id, candidateID)
	s.mu.Unlock()

	if candidate.JobID != "" {
		if err := s.adjustApplicants(ctx, candidate.JobID, -1, actorID); err != nil {
			s.log.Warn("applicant counter decrement failed", zap.String("job_id", candidate.JobID), zap.Error(err))
		}
	}
	return nil
}

// MoveCandidateToStage allows any transition; only the target stage is
// checked.
func (s *HiringService) MoveCandidateToStage(ctx context.Context, id, stage, actorID string) (*domain.Candidate, error) {
	if !domain.IsValidStage(stage) {
		return nil, apperror.BadRequest("unknown pipeline stage: " + stage)
	}
	if _, err := s.GetCandidate(id); err != nil {
		return nil, err
	}
	return s.writeCandidate(ctx, id, domain.Record{"stage": stage}, actorID)
}

// UploadResume validates the file, stores it under the candidate's prefix and
// records the attachment on the candidate.
func (s *HiringService) UploadResume(ctx context.Context, id string, file domain.ResumeFile, actorID string) (*domain.Candidate, error) {
	if s.blobs == nil {
		return nil, apperror.New(503, "resume storage is not configured", nil)
	}
	if _, err := s.GetCandidate(id); err != nil {
		return nil, err
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = security.ResumeContentType(file.Name)
	}
	if err := security.ValidateResume(file.Name, contentType, file.Data); err != nil {
		return nil, err
	}
	if s.scanner != nil {
		v := s.scanner.Scan(ctx, file.Name, file.Data)
		if v.Err != nil {
			s.log.Warn("resume scan failed", zap.String("candidate", id), zap.String("scanner", v.Scanner), zap.Error(v.Err))
			return nil, apperror.New(503, "resume could not be scanned", v.Err)
		}
		if v.Infected {
			s.log.Warn("resume rejected", zap.String("candidate", id), zap.String("threat", v.Threat))
			return nil, apperror.New(422, "resume rejected: malware detected", nil)
		}
	}

	now := s.now().UTC()
	path := ResumePath(id, file.Name, now)
	key, err := s.blobs.Upload(ctx, s.resumeBucket, path, file.Data, contentType)
	if err != nil {
		return nil, &apperror.RemoteStoreError{Op: "upload", Entity: s.resumeBucket, ID: path, Err: err}
	}

	return s.writeCandidate(ctx, id, domain.Record{
		"resumeUrl":        s.blobs.PublicURL(s.resumeBucket, key),
		"resumeName":       file.Name,
		"resumeSize":       len(file.Data),
		"resumeUploadedAt": now.Format(time.RFC3339Nano),
	}, actorID)
}

// ResumePath is candidates/<id>/<unix millis>_<name>, whitespace in the name
// replaced by underscores.
func ResumePath(candidateID, name string, at time.Time) string {
	clean := strings.Join(strings.Fields(name), "_")
	return fmt.Sprintf("candidates/%s/%d_%s", candidateID, at.UnixMilli(), clean)
}
