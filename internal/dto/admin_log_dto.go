package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLogListRequest struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	ActionType string `query:"action_type"`
}

type AdminLogResponse struct {
	Id            uuid.UUID              `json:"id"`
	ActorId       uuid.UUID              `json:"actor_id"`
	ActionType    string                 `json:"action_type"`
	Description   string                 `json:"description"`
	AffectedTable *string                `json:"affected_table,omitempty"`
	OldValues     map[string]interface{} `json:"old_values,omitempty"`
	NewValues     map[string]interface{} `json:"new_values,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}
