// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

type Entry struct {
	Timestamp  time.Time       `json:"timestamp"`
	ActorID    string          `json:"actor_id"`
	Action     string          `json:"action"` // "created", "updated", "deleted"
	EntityKind string          `json:"entity_kind"`
	EntityID   string          `json:"entity_id"`
	Details    json.RawMessage `json:"details,omitempty"`
}
