package domain

import (
	"context"
	"time"
)

// JobStatus constants
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusArchived  = "archived"
)

type Job struct {
	ID             string    `json:"id,omitempty"`
	Title          string    `json:"title" validate:"required"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Description    string    `json:"description,omitempty"`
	Skills         []string  `json:"skills"`
	Status         string    `json:"status" validate:"required,oneof=draft published archived"`
	Applicants     int       `json:"applicants"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsOpen reports whether the job still accepts work (anything not archived).
func (j Job) IsOpen() bool {
	return j.Status != JobStatusArchived
}

// JobPatch carries a partial job update; nil fields are left untouched.
type JobPatch struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Department     *string   `json:"department,omitempty"`
	Location       *string   `json:"location,omitempty"`
	EmploymentType *string   `json:"employmentType,omitempty"`
	Experience     *string   `json:"experience,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Skills         *[]string `json:"skills,omitempty"`
	Status         *string   `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	Applicants     *int      `json:"applicants,omitempty" validate:"omitempty,min=0"`
}

type JobUsecase interface {
	ListJobs() []Job
	GetJob(id string) (*Job, error)
	CreateJob(ctx context.Context, job Job, actorID string) (*Job, error)
	UpdateJob(ctx context.Context, id string, patch JobPatch, actorID string) (*Job, error)
	DeleteJob(ctx context.Context, id, actorID string) error
	RecomputeApplicantCount(ctx context.Context, jobID, actorID string) (*Job, error)
	ReconcileApplicantCounts(ctx context.Context, actorID string) (int, error)
}
