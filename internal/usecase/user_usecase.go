package usecase

import (
	"context"
	"fmt"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
)

func userID(u domain.User) string { return u.ID }

func (s *HiringService) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.users)
}

func (s *HiringService) GetUser(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := find(s.users, func(u domain.User) bool { return u.ID == id })
	if !ok {
		return nil, notFound(domain.EntityUsers, id)
	}
	return &u, nil
}

func (s *HiringService) CreateUser(ctx context.Context, user domain.User, actorID string) (*domain.User, error) {
	if err := s.check(user); err != nil {
		return nil, err
	}
	created, err := create[domain.User](ctx, s.gw, domain.EntityUsers, user, actorID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.users = replace(s.users, created, userID)
	s.mu.Unlock()
	return &created, nil
}

func (s *HiringService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch, actorID string) (*domain.User, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(id); err != nil {
		return nil, err
	}
	updated, err := update[domain.User](ctx, s.gw, domain.EntityUsers, id, patch, actorID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.users = replace(s.users, updated, userID)
	s.mu.Unlock()
	return &updated, nil
}

// DeleteUser refuses to remove the acting user, an author of open jobs or a
// panelist on interviews that are still active.
func (s *HiringService) DeleteUser(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return apperror.NewReferentialViolation(domain.EntityUsers.String(), id, "You can't delete your own account")
	}
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	if err := s.userBlockers(id); err != nil {
		return err
	}

	if err := s.gw.Delete(ctx, domain.EntityUsers, id, actorID); err != nil {
		return err
	}
	s.mu.Lock()
	s.users = remove(s.users, id, userID)
	s.mu.Unlock()
	return nil
}

func (s *HiringService) userBlockers(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var jobs []apperror.Blocker
	for _, j := range s.jobs {
		if j.CreatedBy == id && j.IsOpen() {
			jobs = append(jobs, apperror.Blocker{Entity: domain.EntityJobs.String(), ID: j.ID})
		}
	}
	if len(jobs) > 0 {
		return apperror.NewReferentialViolation(domain.EntityUsers.String(), id,
			fmt.Sprintf("Cannot delete user. They have created %d active jobs.", len(jobs)), jobs...)
	}

	var interviews []apperror.Blocker
	for _, iv := range s.interviews {
		if iv.HasInterviewer(id) && iv.IsActive() {
			interviews = append(interviews, apperror.Blocker{Entity: domain.EntityInterviews.String(), ID: iv.ID})
		}
	}
	if len(interviews) > 0 {
		return apperror.NewReferentialViolation(domain.EntityUsers.String(), id,
			fmt.Sprintf("Cannot delete user. They are assigned to %d upcoming interviews.", len(interviews)), interviews...)
	}
	return nil
}

// RecordLogin writes a LOGIN entry attributed to the new acting identity.
func (s *HiringService) RecordLogin(ctx context.Context, userID, previousUserID string) error {
	u, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	prevName := "Unknown"
	if prev, err := s.GetUser(previousUserID); err == nil {
		prevName = prev.Name
	}
	entry := domain.AuditEntry{
		Action:   domain.ActionLogin,
		Entity:   domain.EntityUsers,
		EntityID: u.ID,
		UserID:   u.ID,
		Details:  fmt.Sprintf("User switch: %s -> %s", prevName, u.Name),
	}
	if previousUserID != "" {
		entry.Changes = map[string]any{"previousUserId": previousUserID}
	}
	s.audit.Record(ctx, entry)
	return nil
}
