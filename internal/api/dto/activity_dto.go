package dto

import (
	"time"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// ActivityEntryResponse is one activity-log row in admin listings.
type ActivityEntryResponse struct {
	ID           string              `json:"id"`
	ActivityType domain.ActivityType `json:"activity_type"`
	UserType     domain.ActorType    `json:"user_type"`
	Description  string              `json:"description"`
	EntityType   *string             `json:"entity_type,omitempty"`
	EntityID     *string             `json:"entity_id,omitempty"`
	Metadata     map[string]any      `json:"metadata,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}
