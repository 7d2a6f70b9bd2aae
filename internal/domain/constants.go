package domain

import "github.com/m04kA/SMC-ArtisanBookingService/pkg/types"

// Default configuration values
const (
	DefaultBookingDurationMinutes = 60
	DefaultAutoAcceptBookings     = false
	DefaultMaxBookingsPerDay      = 10
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
	DefaultBookingAddress         = "A definir"
	DefaultAbsenceSource          = "manual"
)

// Окно, создаваемое при первом включении дня недели
const (
	DefaultWindowStart types.TimeString = "08:00"
	DefaultWindowEnd   types.TimeString = "17:00"
)

// Business validation constants
const (
	MinBookingDurationMinutes   = 15
	MaxBookingDurationMinutes   = 480 // 8 hours
	MinMaxBookingsPerDay        = 0
	MaxMaxBookingsPerDay        = 100
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MaxAddressLength            = 500
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxAbsenceReasonLength      = 500
	MaxAbsenceLabelLength       = 100
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveStatuses статусы, не занимающие время
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRejected,
}

// ActiveStatuses статусы записей, занимающих время
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusCompleted,
}

// UpcomingStatuses статусы, возвращаемые в списке предстоящих записей мастера
var UpcomingStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}
