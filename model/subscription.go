package model

import "time"

type Subscription struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Plan       string     `json:"plan"` // "basic", "standard", "premium"
	Status     string     `json:"status"` // "active", "cancelled", "expired"
	StartsAt   time.Time  `json:"starts_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
