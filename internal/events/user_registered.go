package events

import "time"

const (
	UserRegisteredTopic = "employee-register.user.registered.v1"
	UserRegisteredType  = "user_registered"
)

// UserRegisteredEvent carries the initial password so the welcome mail can
// include it. It is only ever written for accounts that have an email.
type UserRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	OccurredAt time.Time `json:"occurred_at"`
}
