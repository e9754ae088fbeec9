package usecase

import (
	"context"

	"go-hiring-sync/internal/domain"
)

func offerID(o domain.Offer) string { return o.ID }

func (s *HiringService) ListOffers() []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.offers)
}

func (s *HiringService) GetOffer(id string) (*domain.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := find(s.offers, func(o domain.Offer) bool { return o.ID == id })
	if !ok {
		return nil, notFound(domain.EntityOffers, id)
	}
	return &o, nil
}

func (s *HiringService) GetOfferByCandidate(candidateID string) (*domain.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := find(s.offers, func(o domain.Offer) bool { return o.CandidateID == candidateID })
	if !ok {
		return nil, notFound(domain.EntityOffers, "for candidate "+candidateID)
	}
	return &o, nil
}

// OfferEligibleCandidates lists candidates in the offer stage that have no
// offer yet.
func (s *HiringService) OfferEligibleCandidates() []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hasOffer := make(map[string]bool, len(s.offers))
	for _, o := range s.offers {
		hasOffer[o.CandidateID] = true
	}
	return filter(s.candidates, func(c domain.Candidate) bool {
		return c.Stage == domain.StageOffer && !hasOffer[c.ID]
	})
}

func (s *HiringService) CreateOffer(ctx context.Context, offer domain.Offer, actorID string) (*domain.Offer, error) {
	if offer.Status == "" {
		offer.Status = domain.OfferDraft
	}
	if offer.Benefits == nil {
		offer.Benefits = []string{}
	}
	if c, err := s.GetCandidate(offer.CandidateID); err == nil {
		if offer.CandidateName == "" {
			offer.CandidateName = c.Name
		}
		if offer.JobID == "" {
			offer.JobID = c.JobID
		}
		if offer.JobTitle == "" {
			offer.JobTitle = c.JobTitle
		}
	}
	if err := s.check(offer); err != nil {
		return nil, err
	}

	created, err := create[domain.Offer](ctx, s.gw, domain.EntityOffers, offer, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.offers = replace(s.offers, created, offerID)
	s.mu.Unlock()
	return &created, nil
}

func (s *HiringService) UpdateOffer(ctx context.Context, id string, patch domain.OfferPatch, actorID string) (*domain.Offer, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}
	if _, err := s.GetOffer(id); err != nil {
		return nil, err
	}
	updated, err := update[domain.Offer](ctx, s.gw, domain.EntityOffers, id, patch, actorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.offers = replace(s.offers, updated, offerID)
	s.mu.Unlock()
	return &updated, nil
}

func (s *HiringService) DeleteOffer(ctx context.Context, id, actorID string) error {
	if _, err := s.GetOffer(id); err != nil {
		return err
	}
	if err := s.gw.Delete(ctx, domain.EntityOffers, id, actorID); err != nil {
		return err
	}
	s.mu.Lock()
	s.offers = remove(s.offers, id, offerID)
	s.mu.Unlock()
	return nil
}
