package domain

import "time"

// Feed post kinds.
const (
	FeedEvent       = "event"
	FeedOpportunity = "opportunity"
)

// FeedPost is a school-scoped event or opportunity announcement.
type FeedPost struct {
	ID        string     `json:"id"`
	SchoolID  string     `json:"schoolId"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
}
