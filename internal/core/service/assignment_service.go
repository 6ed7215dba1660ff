package service

import (
	"context"

	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

// AssignmentService manages which churches a user administers. Assign is
// atomic with the enrollment-status flip; Unassign deliberately leaves the
// status untouched even when it removes the user's last assignment
// (product decision pending on whether it should revert to pending).
type AssignmentService struct {
	users       ports.UserRepository
	assignments ports.AssignmentRepository
}

func NewAssignmentService(users ports.UserRepository, assignments ports.AssignmentRepository) *AssignmentService {
	return &AssignmentService{users: users, assignments: assignments}
}

func (s *AssignmentService) List(ctx context.Context, userID string) ([]domain.ChurchAssignment, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.assignments.ListByUser(ctx, userID)
}

func (s *AssignmentService) Assign(ctx context.Context, userID, churchID string) error {
	if userID == "" || churchID == "" {
		return domain.ErrMissingFields
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.assignments.Assign(ctx, userID, churchID)
}

func (s *AssignmentService) Unassign(ctx context.Context, userID, churchID string) error {
	if userID == "" || churchID == "" {
		return domain.ErrMissingFields
	}
	return s.assignments.Unassign(ctx, userID, churchID)
}
