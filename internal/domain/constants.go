package domain

// Default configuration values
const (
	DefaultPaymentWindowMinutes = 15
	MinPaymentWindowMinutes     = 1
	DefaultExpirySweepMs        = 60000
)

// Payment constants
const (
	DefaultPaymentMethod    = "M_PESA"
	PaymentReferencePrefix  = "PAY"
	PaymentFailedRefPrefix  = "FAIL"
	PaymentRefSuffixLength  = 8
	MaxSpecialRequestsChars = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// HardBlockingStatuses unconditionally block a car's availability.
var HardBlockingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusActive,
	StatusLegacyAdminNotified,
}

// SoftLockStatuses block availability only while the payment window is open.
var SoftLockStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusLegacyPending,
}

// SoftLockPaymentStatuses are the payment states under which a soft lock holds.
var SoftLockPaymentStatuses = []PaymentStatus{
	PaymentUnpaid,
	PaymentFailed,
}

// TerminalStatuses are absorbing: bookings never leave them.
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
	StatusLegacyRejected,
}
