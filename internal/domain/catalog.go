package domain

import "time"

// Category groups brands within a school scope. A nil SchoolID means the
// category is global.
type Category struct {
	ID        string    `json:"id"`
	SchoolID  *string   `json:"schoolId,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Brand belongs to a category and groups products.
type Brand struct {
	ID         string    `json:"id"`
	SchoolID   *string   `json:"schoolId,omitempty"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}
