// Package bookings is the client for service bookings.
package bookings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/model"
)

const (
	msgFetchBookings     = "Failed to fetch bookings"
	msgFetchBooking      = "Failed to fetch booking"
	msgConfirmBooking    = "Failed to confirm booking"
	msgCancelBooking     = "Failed to cancel booking"
	msgRescheduleBooking = "Failed to reschedule booking"
	msgUpdateStatus      = "Failed to update booking status"
)

var (
	ErrInvalidSchedule  = errors.New("scheduled end must be after scheduled start")
	ErrNotCancelable    = errors.New("booking can no longer be cancelled")
	ErrNotReschedulable = errors.New("booking can no longer be rescheduled")
)

type Client struct {
	http *httpclient.Client
}

func New(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// ListBookings returns the caller's bookings, optionally in one status
func (c *Client) ListBookings(ctx context.Context, token string, status model.BookingStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	err := c.http.NewRequest(http.MethodGet).
		Path("/bookings").
		OptionalQuery("status", string(status)).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchBookings, &bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, token string, id int64) (*model.Booking, error) {
	var booking model.Booking
	err := c.http.NewRequest(http.MethodGet).
		Pathf("/bookings/%d", id).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchBooking, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) ConfirmBooking(ctx context.Context, token string, id int64) (*model.Booking, error) {
	return c.post(ctx, token, id, "confirm", nil, msgConfirmBooking)
}

// CancelBooking cancels a booking. An empty reason is not sent.
func (c *Client) CancelBooking(ctx context.Context, token string, id int64, reason string) (*model.Booking, error) {
	var body interface{}
	if reason != "" {
		body = model.CancelRequest{Reason: reason}
	}
	return c.post(ctx, token, id, "cancel", body, msgCancelBooking)
}

// RescheduleBooking replaces the booking window. A window that does not move
// forward in time is refused without contacting the backend.
func (c *Client) RescheduleBooking(ctx context.Context, token string, id int64, start, end time.Time) (*model.Booking, error) {
	if !end.After(start) {
		return nil, ErrInvalidSchedule
	}

	var booking model.Booking
	err := c.http.NewRequest(http.MethodPut).
		Pathf("/bookings/%d/reschedule", id).
		Bearer(token).
		JSON(model.RescheduleRequest{ScheduledStart: start.UTC(), ScheduledEnd: end.UTC()}).
		Context(ctx).
		ExecuteEnvelope(c.http, msgRescheduleBooking, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int64, status model.BookingStatus) (*model.Booking, error) {
	var booking model.Booking
	err := c.http.NewRequest(http.MethodPatch).
		Pathf("/bookings/%d/status", id).
		Bearer(token).
		JSON(model.StatusUpdate{Status: status}).
		Context(ctx).
		ExecuteEnvelope(c.http, msgUpdateStatus, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) post(ctx context.Context, token string, id int64, action string, body interface{}, fallback string) (*model.Booking, error) {
	b := c.http.NewRequest(http.MethodPost).
		Pathf("/bookings/%d/%s", id, action).
		Bearer(token).
		Context(ctx)
	if body != nil {
		b.JSON(body)
	}

	var booking model.Booking
	if err := b.ExecuteEnvelope(c.http, fallback, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CheckCancel reports whether a fetched booking may still be cancelled
func CheckCancel(b model.Booking) error {
	if !b.CanCancel {
		return ErrNotCancelable
	}
	return nil
}

// CheckReschedule reports whether a fetched booking may still be rescheduled
func CheckReschedule(b model.Booking) error {
	if !b.CanReschedule {
		return ErrNotReschedulable
	}
	return nil
}
