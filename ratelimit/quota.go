// api/ratelimit/quota.go
package ratelimit

import "time"

// Role names recognized by the registry, least to most privileged.
const (
	RoleCustomer   = "customer"
	RoleReseller   = "reseller"
	RoleAgent      = "agent"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Quota is one tier of the governance policy: a fixed-window request
// ceiling and a concurrent-mutation ceiling.
type Quota struct {
	MaxRequests   int           `json:"maxRequests"`
	Window        time.Duration `json:"window"`
	MaxConcurrent int           `json:"maxConcurrent"`
}

// quotas is immutable at runtime. The window is uniform across tiers; only
// the ceilings vary, with the concurrency ceiling held at roughly 10% of the
// request ceiling.
var quotas = map[string]Quota{
	RoleCustomer:   {MaxRequests: 100, Window: time.Hour, MaxConcurrent: 10},
	RoleReseller:   {MaxRequests: 300, Window: time.Hour, MaxConcurrent: 30},
	RoleAgent:      {MaxRequests: 500, Window: time.Hour, MaxConcurrent: 50},
	RoleAdmin:      {MaxRequests: 1000, Window: time.Hour, MaxConcurrent: 100},
	RoleSuperAdmin: {MaxRequests: 2000, Window: time.Hour, MaxConcurrent: 200},
}

// QuotaFor resolves a role to its quota. Unknown or missing roles resolve to
// the customer tier: when identity information is ambiguous the policy fails
// closed, never open.
func QuotaFor(role string) Quota {
	if q, ok := quotas[role]; ok {
		return q
	}
	return quotas[RoleCustomer]
}

// Quotas returns a copy of the tier table for the admin stats readout.
func Quotas() map[string]Quota {
	out := make(map[string]Quota, len(quotas))
	for role, q := range quotas {
		out[role] = q
	}
	return out
}
