package usecase

import (
	"context"
	"math"

	"go-hiring-sync/internal/domain"
)

func feedbackID(f domain.Feedback) string { return f.ID }

func (s *HiringService) ListFeedback() []domain.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.feedback)
}

func (s *HiringService) GetFeedbackByCandidate(candidateID string) []domain.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.feedback, func(f domain.Feedback) bool { return f.CandidateID == candidateID })
}

func (s *HiringService) GetFeedbackByInterview(interviewID string) []domain.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.feedback, func(f domain.Feedback) bool { return f.InterviewID == interviewID })
}

func (s *HiringService) CreateFeedback(ctx context.Context, feedback domain.Feedback, actorID string) (*domain.Feedback, error) {
	if feedback.InterviewerID == "" {
		feedback.InterviewerID = actorID
	}
	if feedback.Ratings == nil {
		feedback.Ratings = map[string]int{}
	}
	if feedback.InterviewerName == "" {
		if u, err := s.GetUser(feedback.InterviewerID); err == nil {
			feedback.InterviewerName = u.Name
		}
	}
	if err := s.check(feedback); err != nil {
		return nil, err
	}

	created, err := create[domain.Feedback](ctx, s.gw, domain.EntityFeedback, feedback, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.feedback = replace(s.feedback, created, feedbackID)
	s.mu.Unlock()
	return &created, nil
}

func (s *HiringService) UpdateFeedback(ctx context.Context, id string, patch domain.FeedbackPatch, actorID string) (*domain.Feedback, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}
	s.mu.RLock()
	_, ok := find(s.feedback, func(f domain.Feedback) bool { return f.ID == id })
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(domain.EntityFeedback, id)
	}

	updated, err := update[domain.Feedback](ctx, s.gw, domain.EntityFeedback, id, patch, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.feedback = replace(s.feedback, updated, feedbackID)
	s.mu.Unlock()
	return &updated, nil
}

// GetAggregateFeedback returns domain.ErrNoFeedback when the candidate has
// no feedback yet.
func (s *HiringService) GetAggregateFeedback(candidateID string) (*domain.AggregateFeedback, error) {
	return AggregateFeedback(candidateID, s.GetFeedbackByCandidate(candidateID))
}

// AggregateFeedback averages each criterion over all feedback records, so a
// rater who skipped a criterion counts as zero for it. Averages are rounded to
// one decimal and recommendation votes are counted. The overall
// recommendation resolves ties toward hire, then hold.
func AggregateFeedback(candidateID string, records []domain.Feedback) (*domain.AggregateFeedback, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoFeedback
	}

	sums := map[string]int{}
	var votes domain.RecommendationVotes
	for _, f := range records {
		for criterion, score := range f.Ratings {
			sums[criterion] += score
		}
		switch f.Recommendation {
		case domain.RecommendHire:
			votes.Hire++
		case domain.RecommendHold:
			votes.Hold++
		case domain.RecommendReject:
			votes.Reject++
		}
	}

	averages := make(map[string]float64, len(sums))
	for criterion, sum := range sums {
		averages[criterion] = math.Round(float64(sum)/float64(len(records))*10) / 10
	}

	return &domain.AggregateFeedback{
		CandidateID:           candidateID,
		AverageRatings:        averages,
		TotalFeedback:         len(records),
		Recommendations:       votes,
		OverallRecommendation: overall(votes),
	}, nil
}

func overall(v domain.RecommendationVotes) string {
	switch {
	case v.Hire >= v.Hold && v.Hire >= v.Reject:
		return domain.RecommendHire
	case v.Hold >= v.Reject:
		return domain.RecommendHold
	default:
		return domain.RecommendReject
	}
}
