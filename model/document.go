package model

import "time"

type Document struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Type       string    `json:"type"` // "prescription", "lab_report", "referral", "consent_form"
	Title      string    `json:"title"`
	Status     string    `json:"status"` // "draft", "filed", "archived"
	FileName   string    `json:"file_name,omitempty"`
	FileSize   int64     `json:"file_size,omitempty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
