// Package queue defines message payloads exchanged over the message broker
// and the consumer that stores them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionRoleChange = "role_change"
)

// AuditEvent is published after a successful dashboard mutation.  It is
// self-contained so consumers never have to call back into the API.
type AuditEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   uint64    `json:"entity_id"`
	ActorID    uint64    `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Status     int       `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAuditEvent stamps a fresh id and time on an event.
func NewAuditEvent(action, entity string, entityID uint64) AuditEvent {
	return AuditEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}
