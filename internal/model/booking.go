package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type BookingService struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Booking struct {
	ID             int64            `json:"id"`
	Status         BookingStatus    `json:"status"`
	ScheduledStart time.Time        `json:"scheduled_start"`
	ScheduledEnd   time.Time        `json:"scheduled_end"`
	CanCancel      bool             `json:"can_cancel"`
	CanReschedule  bool             `json:"can_reschedule"`
	Services       []BookingService `json:"services,omitempty"`
}

// Total sums the prices of the booked services
func (b Booking) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Services {
		total = total.Add(s.Price)
	}
	return total
}

type RescheduleRequest struct {
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
}

type StatusUpdate struct {
	Status BookingStatus `json:"status"`
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}
