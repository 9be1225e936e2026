package domain

// User is the persisted session identity. Absent user means anonymous.
type User struct {
	UserID string `json:"user_id"`
}
