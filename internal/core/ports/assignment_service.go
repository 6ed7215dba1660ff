package ports

import (
	"context"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

// AssignmentService manages church-admin assignments on behalf of
// superusers.
type AssignmentService interface {
	List(ctx context.Context, userID string) ([]domain.ChurchAssignment, error)
	Assign(ctx context.Context, userID, churchID string) error
	Unassign(ctx context.Context, userID, churchID string) error
}
