package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LegacyPendingFoldsIntoPendingPayment(t *testing.T) {
	assert.Equal(t, StatusPendingPayment, StatusLegacyPending.Normalize())
	assert.Equal(t, StatusConfirmed, StatusConfirmed.Normalize())
	assert.Equal(t, StatusLegacyAdminNotified, StatusLegacyAdminNotified.Normalize())
}

func TestCanTransition_AllowedPairs(t *testing.T) {
	allowed := [][2]BookingStatus{
		{StatusPendingPayment, StatusConfirmed},
		{StatusPendingPayment, StatusCancelled},
		{StatusPendingPayment, StatusExpired},
		{StatusLegacyPending, StatusConfirmed}, // legacy folds into PENDING_PAYMENT
		{StatusLegacyAdminNotified, StatusConfirmed},
		{StatusLegacyAdminNotified, StatusCancelled},
		{StatusConfirmed, StatusActive},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusActive, StatusCompleted},
		{StatusActive, StatusCancelled},
	}

	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s should be allowed", pair[0], pair[1])
	}
}

// Everything not in the table must be rejected, terminal statuses in particular.
func TestCanTransition_ClosedOverTheTable(t *testing.T) {
	all := []BookingStatus{
		StatusPendingPayment, StatusConfirmed, StatusActive, StatusCompleted,
		StatusCancelled, StatusExpired,
		StatusLegacyPending, StatusLegacyAdminNotified, StatusLegacyRejected,
	}

	allowedSet := map[[2]BookingStatus]bool{}
	for from, targets := range adminTransitions {
		for _, to := range targets {
			allowedSet[[2]BookingStatus{from, to}] = true
		}
	}

	for _, from := range all {
		for _, to := range all {
			expected := allowedSet[[2]BookingStatus{from.Normalize(), to}]
			assert.Equal(t, expected, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatusesAreAbsorbing(t *testing.T) {
	targets := []BookingStatus{
		StatusPendingPayment, StatusConfirmed, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
	}
	for _, from := range TerminalStatuses {
		assert.True(t, from.IsTerminal())
		for _, to := range targets {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestCanTransition_RejectedIsNeverProduced(t *testing.T) {
	for from := range adminTransitions {
		assert.False(t, CanTransition(from, StatusLegacyRejected), "%s -> REJECTED must be rejected", from)
	}
}

func TestPaymentStatus_IsPaidTreatsLegacyAsPaid(t *testing.T) {
	assert.True(t, PaymentPaid.IsPaid())
	assert.True(t, PaymentLegacySimulatedPaid.IsPaid())
	assert.False(t, PaymentUnpaid.IsPaid())
	assert.False(t, PaymentFailed.IsPaid())
	assert.False(t, PaymentRefunded.IsPaid())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("ACTIVE")
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, status)

	status, err = ParseBookingStatus("ADMIN_NOTIFIED")
	assert.NoError(t, err)
	assert.Equal(t, StatusLegacyAdminNotified, status)

	_, err = ParseBookingStatus("IN_PROGRESS")
	assert.Error(t, err)
}
