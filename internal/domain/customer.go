package domain

import "time"

// Customer is a directory record used to validate customer numbers and to
// resolve the default return address during the shipping step.
type Customer struct {
	ID             string
	CustomerNumber string
	Name           string
	DefaultAddress string
	IsActive       bool
	CreatedAt      time.Time
}
