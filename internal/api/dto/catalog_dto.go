package dto

import "github.com/spec-kit/rma-portal/internal/domain"

// ErrorTypeResponse is one catalog entry in the listing endpoint.
type ErrorTypeResponse struct {
	ID                   string                  `json:"id"`
	Title                string                  `json:"title"`
	Description          string                  `json:"description"`
	Category             string                  `json:"category"`
	Icon                 string                  `json:"icon"`
	VideoURL             *string                 `json:"video_url,omitempty"`
	Instructions         *string                 `json:"instructions,omitempty"`
	SubOptions           []domain.ErrorSubOption `json:"sub_options,omitempty"`
	TroubleshootingSteps []string                `json:"troubleshooting_steps,omitempty"`
}
