package domain

import "time"

// Service is one bookable service on the shop's menu (haircut, shave, ...)
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
