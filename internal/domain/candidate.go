package domain

import (
	"context"
	"time"
)

// Pipeline stages
const (
	StageApplied     = "applied"
	StageShortlisted = "shortlisted"
	StageInterview   = "interview"
	StageOffer       = "offer"
	StageHired       = "hired"
	StageRejected    = "rejected"
)

// PipelineStages lists every stage in display order.
var PipelineStages = []string{
	StageApplied,
	StageShortlisted,
	StageInterview,
	StageOffer,
	StageHired,
	StageRejected,
}

// IsValidStage reports whether s is a known pipeline stage.
func IsValidStage(s string) bool {
	for _, st := range PipelineStages {
		if st == s {
			return true
		}
	}
	return false
}

type Candidate struct {
	ID               string     `json:"id,omitempty"`
	Name             string     `json:"name" validate:"required"`
	Email            string     `json:"email" validate:"omitempty,email"`
	Phone            string     `json:"phone,omitempty" validate:"valid_phone"`
	JobID            string     `json:"jobId" validate:"required"`
	JobTitle         string     `json:"jobTitle"`
	Stage            string     `json:"stage" validate:"omitempty,oneof=applied shortlisted interview offer hired rejected"`
	Skills           []string   `json:"skills"`
	Experience       string     `json:"experience,omitempty"`
	ResumeURL        *string    `json:"resumeUrl,omitempty"`
	ResumeName       *string    `json:"resumeName,omitempty"`
	ResumeSize       *int64     `json:"resumeSize,omitempty"`
	ResumeUploadedAt *time.Time `json:"resumeUploadedAt,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	AppliedAt        time.Time  `json:"appliedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CandidatePatch carries a partial candidate update; nil fields are left
// untouched. Stage changes belong to MoveCandidateToStage.
type CandidatePatch struct {
	Name       *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email      *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string   `json:"phone,omitempty" validate:"omitempty,valid_phone"`
	JobTitle   *string   `json:"jobTitle,omitempty"`
	Skills     *[]string `json:"skills,omitempty"`
	Experience *string   `json:"experience,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

// ResumeFile is an attachment handed over by the upload collaborator.
type ResumeFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type CandidateUsecase interface {
	ListCandidates() []Candidate
	GetCandidate(id string) (*Candidate, error)
	GetCandidatesByJob(jobID string) []Candidate
	GetCandidatesByStage(stage string) []Candidate
	CreateCandidate(ctx context.Context, candidate Candidate, actorID string) (*Candidate, error)
	UpdateCandidate(ctx context.Context, id string, patch CandidatePatch, actorID string) (*Candidate, error)
	DeleteCandidate(ctx context.Context, id, actorID string) error
	MoveCandidateToStage(ctx context.Context, id, stage, actorID string) (*Candidate, error)
	UploadResume(ctx context.Context, candidateID string, file ResumeFile, actorID string) (*Candidate, error)
}
