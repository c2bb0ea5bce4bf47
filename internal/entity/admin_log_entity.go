package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminLog is an append-only audit record. Nothing ever updates or
// deletes one; the console only lists and inspects them.
type AdminLog struct {
	Id            uuid.UUID
	ActorId       uuid.UUID
	ActionType    string
	Description   string
	AffectedTable *string
	OldValues     map[string]interface{}
	NewValues     map[string]interface{}
	CreatedAt     time.Time
}
