package domain

import "time"

// RecentCandidateWindow is the look-back used for the recent candidates count.
const RecentCandidateWindow = 30 * 24 * time.Hour

// AnalyticsSnapshot is computed from the loaded collections on every call.
type AnalyticsSnapshot struct {
	GeneratedAt         time.Time      `json:"generatedAt"`
	TotalJobs           int            `json:"totalJobs"`
	ActiveJobs          int            `json:"activeJobs"`
	TotalCandidates     int            `json:"totalCandidates"`
	CandidatesByStage   map[string]int `json:"candidatesByStage"`
	JobsByStatus        map[string]int `json:"jobsByStatus"`
	InterviewsByStatus  map[string]int `json:"interviewsByStatus"`
	OffersByStatus      map[string]int `json:"offersByStatus"`
	UpcomingInterviews  int            `json:"upcomingInterviews"`
	CompletedInterviews int            `json:"completedInterviews"`
	PendingOffers       int            `json:"pendingOffers"`
	AcceptedOffers      int            `json:"acceptedOffers"`
	RecentCandidates    int            `json:"recentCandidates"`
}

type AnalyticsUsecase interface {
	GetAnalyticsSnapshot(now time.Time) AnalyticsSnapshot
}
