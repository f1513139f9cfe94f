package domain

import "time"

// CarStatus represents the operational status of a vehicle.
type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarRented      CarStatus = "RENTED"
	CarMaintenance CarStatus = "MAINTENANCE"
)

// Car is the vehicle collaborator entity as seen by the booking engine.
// The engine reads the daily rate and flips the operational status as a side
// effect of booking transitions; everything else about the fleet lives outside
// this service.
type Car struct {
	ID         int64
	DailyPrice float64
	Status     CarStatus
}

// AvailabilityState classifies a car for listing pages.
type AvailabilityState string

const (
	AvailabilityAvailable   AvailabilityState = "AVAILABLE"
	AvailabilitySoftLocked  AvailabilityState = "SOFT_LOCKED"
	AvailabilityBooked      AvailabilityState = "BOOKED"
	AvailabilityMaintenance AvailabilityState = "MAINTENANCE"
)

// CarAvailability is the per-car availability report derived from blocking
// bookings. Maintenance takes precedence over bookings; among blockers the
// earliest-ending one is reported so callers can say "available again at".
type CarAvailability struct {
	CarID             int64
	State             AvailabilityState
	BlockedFrom       *time.Time
	BlockedTo         *time.Time
	SoftLockExpiresAt *time.Time
	NextAvailableAt   *time.Time
	Message           string
}
