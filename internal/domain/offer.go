package domain

import (
	"context"
	"time"
)

// Offer statuses
const (
	OfferDraft    = "draft"
	OfferSent     = "sent"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
	OfferExpired  = "expired"
)

type Offer struct {
	ID               string     `json:"id,omitempty"`
	CandidateID      string     `json:"candidateId" validate:"required"`
	CandidateName    string     `json:"candidateName"`
	JobID            string     `json:"jobId"`
	JobTitle         string     `json:"jobTitle"`
	BaseSalary       int64      `json:"baseSalary" validate:"min=0"`
	Bonus            *int64     `json:"bonus,omitempty" validate:"omitempty,min=0"`
	JoiningDate      *time.Time `json:"joiningDate,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	Location         string     `json:"location,omitempty"`
	ReportingManager string     `json:"reportingManager,omitempty"`
	Benefits         []string   `json:"benefits"`
	SignatoryName    string     `json:"signatoryName,omitempty"`
	SignatoryTitle   string     `json:"signatoryTitle,omitempty"`
	Status           string     `json:"status" validate:"omitempty,oneof=draft sent accepted rejected expired"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// OfferPatch carries a partial offer update; nil fields are left untouched.
type OfferPatch struct {
	BaseSalary       *int64     `json:"baseSalary,omitempty" validate:"omitempty,min=0"`
	Bonus            *int64     `json:"bonus,omitempty" validate:"omitempty,min=0"`
	JoiningDate      *time.Time `json:"joiningDate,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	Location         *string    `json:"location,omitempty"`
	ReportingManager *string    `json:"reportingManager,omitempty"`
	Benefits         *[]string  `json:"benefits,omitempty"`
	SignatoryName    *string    `json:"signatoryName,omitempty"`
	SignatoryTitle   *string    `json:"signatoryTitle,omitempty"`
	Status           *string    `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected expired"`
}

type OfferUsecase interface {
	ListOffers() []Offer
	GetOffer(id string) (*Offer, error)
	GetOfferByCandidate(candidateID string) (*Offer, error)
	OfferEligibleCandidates() []Candidate
	CreateOffer(ctx context.Context, offer Offer, actorID string) (*Offer, error)
	UpdateOffer(ctx context.Context, id string, patch OfferPatch, actorID string) (*Offer, error)
	DeleteOffer(ctx context.Context, id, actorID string) error
}
