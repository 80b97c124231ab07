package notifications

import "time"

const TopicBroadcast = "notifications.broadcast"

// BroadcastEvent is published once per admin broadcast and fanned out to
// every user by the consumer.
type BroadcastEvent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	SentBy string    `json:"sentBy"`
	SentAt time.Time `json:"sentAt"`
}

// Notification is one user's copy of a broadcast.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	BroadcastID string    `json:"broadcastId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}
