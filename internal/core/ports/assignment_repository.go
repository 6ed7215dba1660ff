package ports

import (
	"context"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

// AssignmentRepository persists church-admin assignments.
type AssignmentRepository interface {
	// ListByUser returns the user's assignments joined with church names.
	ListByUser(ctx context.Context, userID string) ([]domain.ChurchAssignment, error)

	// Assign inserts the assignment and flips the user's enrollment status
	// to assigned in one atomic unit: a concurrent reader never observes
	// one write without the other.
	Assign(ctx context.Context, userID, churchID string) error

	// Unassign deletes the assignment only; enrollment status is left
	// untouched. Returns domain.ErrAssignmentNotFound when no such
	// assignment exists.
	Unassign(ctx context.Context, userID, churchID string) error
}
