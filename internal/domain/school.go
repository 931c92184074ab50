package domain

import "time"

// School is the multi-tenancy boundary. Catalog entities either belong to a
// school or are global (nil school ref).
type School struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
