package domain

import (
	"context"
	"time"
)

// Recommendations
const (
	RecommendHire   = "hire"
	RecommendHold   = "hold"
	RecommendReject = "reject"
)

// RatingCriteria are the criterion ids the feedback form rates on a 1-5 scale.
var RatingCriteria = []string{
	"technical",
	"communication",
	"problemSolving",
	"cultureFit",
	"leadership",
}

type Feedback struct {
	ID              string         `json:"id,omitempty"`
	InterviewID     string         `json:"interviewId" validate:"required"`
	CandidateID     string         `json:"candidateId" validate:"required"`
	CandidateName   string         `json:"candidateName"`
	JobID           string         `json:"jobId,omitempty"`
	JobTitle        string         `json:"jobTitle"`
	InterviewerID   string         `json:"interviewerId"`
	InterviewerName string         `json:"interviewerName,omitempty"`
	Ratings         map[string]int `json:"ratings" validate:"dive,keys,required,endkeys,min=1,max=5"`
	Comments        string         `json:"comments,omitempty"`
	Strengths       string         `json:"strengths,omitempty"`
	Weaknesses      string         `json:"weaknesses,omitempty"`
	Recommendation  string         `json:"recommendation" validate:"required,oneof=hire hold reject"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// FeedbackPatch carries a partial feedback update; nil fields are left
// untouched.
type FeedbackPatch struct {
	Ratings        *map[string]int `json:"ratings,omitempty" validate:"omitempty,dive,keys,required,endkeys,min=1,max=5"`
	Comments       *string         `json:"comments,omitempty"`
	Strengths      *string         `json:"strengths,omitempty"`
	Weaknesses     *string         `json:"weaknesses,omitempty"`
	Recommendation *string         `json:"recommendation,omitempty" validate:"omitempty,oneof=hire hold reject"`
}

// RecommendationVotes counts feedback records per recommendation.
type RecommendationVotes struct {
	Hire   int `json:"hire"`
	Hold   int `json:"hold"`
	Reject int `json:"reject"`
}

// AggregateFeedback summarizes every feedback record of one candidate.
type AggregateFeedback struct {
	CandidateID           string              `json:"candidateId"`
	AverageRatings        map[string]float64  `json:"averageRatings"`
	TotalFeedback         int                 `json:"totalFeedback"`
	Recommendations       RecommendationVotes `json:"recommendations"`
	OverallRecommendation string              `json:"overallRecommendation"`
}

type FeedbackUsecase interface {
	ListFeedback() []Feedback
	GetFeedbackByCandidate(candidateID string) []Feedback
	GetFeedbackByInterview(interviewID string) []Feedback
	CreateFeedback(ctx context.Context, feedback Feedback, actorID string) (*Feedback, error)
	UpdateFeedback(ctx context.Context, id string, patch FeedbackPatch, actorID string) (*Feedback, error)
	GetAggregateFeedback(candidateID string) (*AggregateFeedback, error)
}
