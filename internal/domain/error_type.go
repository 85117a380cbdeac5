package domain

import "time"

// ErrorSubOption is a refinement of an error type, e.g. a concrete symptom
// variant the customer can pick underneath the main selection.
type ErrorSubOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ErrorType is a catalog entry describing a known display-hardware problem
// together with its troubleshooting material.
type ErrorType struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Icon         string
	VideoURL     *string
	Instructions *string
	SubOptions   []ErrorSubOption
	// TroubleshootingSteps are presented during the wizard's second step.
	TroubleshootingSteps []string
	IsActive             bool
	SortOrder            int
	CreatedAt            time.Time
}
