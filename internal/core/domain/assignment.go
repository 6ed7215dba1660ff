package domain

import "time"

// ChurchAssignment links a user to a church they administer. ChurchName is
// denormalized from the churches collection for display purposes.
type ChurchAssignment struct {
	UserID     string    `json:"user_id"`
	ChurchID   string    `json:"church_id"`
	ChurchName string    `json:"church_name"`
	CreatedAt  time.Time `json:"created_at"`
}
