package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // "customer", "reseller", "agent", "admin", "superadmin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DashboardStats struct {
	TotalCustomers      int       `json:"total_customers"`
	TotalDocuments      int       `json:"total_documents"`
	ActiveSubscriptions int       `json:"active_subscriptions"`
	GeneratedAt         time.Time `json:"generated_at"`
}
