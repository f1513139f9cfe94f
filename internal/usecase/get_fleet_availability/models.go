package get_fleet_availability

import (
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// Request optionally narrows the report to specific cars. An empty list means
// the whole fleet.
type Request struct {
	CarIDs []int64
}

// CarReport is the availability verdict for one car.
type CarReport struct {
	CarID int64  `json:"carId"`
	State string `json:"state"`

	BlockedFrom *string `json:"blockedFrom,omitempty"` // "2025-06-20"
	BlockedTo   *string `json:"blockedTo,omitempty"`

	// SoftLockExpiresAt is set for SOFT_LOCKED cars: the instant the pending
	// payment window closes and the car frees up.
	SoftLockExpiresAt *string `json:"softLockExpiresAt,omitempty"`

	// NextAvailableAt is set for BOOKED cars: the blocking booking's return date.
	NextAvailableAt *string `json:"nextAvailableAt,omitempty"`

	Message string `json:"message"`
}

// Response is the per-car availability report.
type Response struct {
	Cars []CarReport `json:"cars"`
}

func fromDomain(a *domain.CarAvailability) CarReport {
	report := CarReport{
		CarID:   a.CarID,
		State:   string(a.State),
		Message: a.Message,
	}
	if a.BlockedFrom != nil {
		s := a.BlockedFrom.Format(domain.DateFormat)
		report.BlockedFrom = &s
	}
	if a.BlockedTo != nil {
		s := a.BlockedTo.Format(domain.DateFormat)
		report.BlockedTo = &s
	}
	if a.SoftLockExpiresAt != nil {
		s := a.SoftLockExpiresAt.Format(time.RFC3339)
		report.SoftLockExpiresAt = &s
	}
	if a.NextAvailableAt != nil {
		s := a.NextAvailableAt.Format(domain.DateFormat)
		report.NextAvailableAt = &s
	}
	return report
}
