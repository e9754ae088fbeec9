package domain

import (
	"context"
	"time"
)

// Interview statuses
const (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
)

// Interview modes
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

const DefaultInterviewDuration = 60

type Interview struct {
	ID            string    `json:"id,omitempty"`
	CandidateID   string    `json:"candidateId" validate:"required"`
	CandidateName string    `json:"candidateName"`
	JobID         string    `json:"jobId,omitempty"`
	JobTitle      string    `json:"jobTitle"`
	PanelType     string    `json:"panelType"`
	ScheduledAt   time.Time `json:"scheduledAt" validate:"required"`
	Duration      int       `json:"duration" validate:"omitempty,min=1"`
	Mode          string    `json:"mode,omitempty" validate:"omitempty,oneof=online offline"`
	MeetingLink   string    `json:"meetingLink,omitempty"`
	Location      string    `json:"location,omitempty"`
	Interviewers  []string  `json:"interviewers"`
	Status        string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsActive reports whether the interview has not reached a terminal status.
func (i Interview) IsActive() bool {
	return i.Status != InterviewCompleted && i.Status != InterviewCancelled
}

// HasInterviewer reports whether userID is on the panel.
func (i Interview) HasInterviewer(userID string) bool {
	for _, id := range i.Interviewers {
		if id == userID {
			return true
		}
	}
	return false
}

// InterviewPatch carries a partial interview update; nil fields are left
// untouched.
type InterviewPatch struct {
	CandidateName *string    `json:"candidateName,omitempty"`
	JobTitle      *string    `json:"jobTitle,omitempty"`
	PanelType     *string    `json:"panelType,omitempty"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
	Duration      *int       `json:"duration,omitempty" validate:"omitempty,min=1"`
	Mode          *string    `json:"mode,omitempty" validate:"omitempty,oneof=online offline"`
	MeetingLink   *string    `json:"meetingLink,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Interviewers  *[]string  `json:"interviewers,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes         *string    `json:"notes,omitempty"`
}

type InterviewUsecase interface {
	ListInterviews() []Interview
	GetInterview(id string) (*Interview, error)
	GetInterviewsByCandidate(candidateID string) []Interview
	GetInterviewsByInterviewer(userID string) []Interview
	GetUpcomingInterviews(now time.Time) []Interview
	CreateInterview(ctx context.Context, interview Interview, actorID string) (*Interview, error)
	UpdateInterview(ctx context.Context, id string, patch InterviewPatch, actorID string) (*Interview, error)
	DeleteInterview(ctx context.Context, id, actorID string) error
}
