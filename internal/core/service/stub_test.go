package service

import (
	"context"
	"fmt"
	"time"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository shared by the service tests.
type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.ResetExpiresAt != nil {
		t := *u.ResetExpiresAt
		clone.ResetExpiresAt = &t
	}
	if u.ResetRequestedAt != nil {
		t := *u.ResetRequestedAt
		clone.ResetRequestedAt = &t
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.users[created.ID] = created
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.EnrollmentStatus != nil {
		u.EnrollmentStatus = *update.EnrollmentStatus
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) SetEnrollmentStatus(_ context.Context, id string, status domain.EnrollmentStatus) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EnrollmentStatus = status
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, email, token string, expiresAt, requestedAt time.Time) error {
	for _, u := range r.users {
		if u.Email == email {
			u.ResetToken = token
			exp, req := expiresAt, requestedAt
			u.ResetExpiresAt = &exp
			u.ResetRequestedAt = &req
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, id, token, passwordHash string) error {
	u, ok := r.users[id]
	if !ok || u.ResetToken != token {
		return domain.ErrResetTokenInvalid
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetExpiresAt = nil
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubAssignmentRepo is an in-memory AssignmentRepository. When failNext is
// set, Assign fails atomically: neither the assignment nor the status
// change becomes visible.
type stubAssignmentRepo struct {
	users       *stubUserRepo
	assignments []domain.ChurchAssignment
	churchNames map[string]string
	failNext    bool
}

func newStubAssignmentRepo(users *stubUserRepo) *stubAssignmentRepo {
	return &stubAssignmentRepo{users: users, churchNames: make(map[string]string)}
}

func (r *stubAssignmentRepo) ListByUser(_ context.Context, userID string) ([]domain.ChurchAssignment, error) {
	out := []domain.ChurchAssignment{}
	for _, a := range r.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAssignmentRepo) Assign(ctx context.Context, userID, churchID string) error {
	if r.failNext {
		r.failNext = false
		return fmt.Errorf("transaction aborted")
	}
	r.assignments = append(r.assignments, domain.ChurchAssignment{
		UserID:     userID,
		ChurchID:   churchID,
		ChurchName: r.churchNames[churchID],
		CreatedAt:  time.Now().UTC(),
	})
	return r.users.SetEnrollmentStatus(ctx, userID, domain.EnrollmentAssigned)
}

func (r *stubAssignmentRepo) Unassign(_ context.Context, userID, churchID string) error {
	for i, a := range r.assignments {
		if a.UserID == userID && a.ChurchID == churchID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}
