// Package breeders is the client for the breeder directory.
package breeders

import (
	"context"
	"net/http"
	"strconv"

	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/model"
)

const (
	msgFetchBreeders = "Failed to fetch breeders"
	msgFetchBreeder  = "Failed to fetch breeder"
	msgSubmitReview  = "Failed to submit review"
)

type Client struct {
	http *httpclient.Client
}

func New(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// ListBreeders returns breeders near a location, optionally filtered by species
func (c *Client) ListBreeders(ctx context.Context, token string, q model.BreederQuery) ([]model.Breeder, error) {
	b := c.http.NewRequest(http.MethodGet).
		Path("/breeders").
		OptionalQuery("species", q.Species).
		Bearer(token).
		Context(ctx)
	if q.Lat != nil {
		b.Query("lat", strconv.FormatFloat(*q.Lat, 'f', -1, 64))
	}
	if q.Lon != nil {
		b.Query("lon", strconv.FormatFloat(*q.Lon, 'f', -1, 64))
	}

	var breeders []model.Breeder
	if err := b.ExecuteEnvelope(c.http, msgFetchBreeders, &breeders); err != nil {
		return nil, err
	}
	return breeders, nil
}

func (c *Client) GetBreeder(ctx context.Context, token string, id int64) (*model.Breeder, error) {
	var breeder model.Breeder
	err := c.http.NewRequest(http.MethodGet).
		Pathf("/breeders/%d", id).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchBreeder, &breeder)
	if err != nil {
		return nil, err
	}
	return &breeder, nil
}

// CreateBreederReview appends a review to a breeder. The listing id of the
// review body is ignored by this endpoint and should be left nil.
func (c *Client) CreateBreederReview(ctx context.Context, token string, breederID int64, review model.NewReview) (*model.Review, error) {
	var created model.Review
	err := c.http.NewRequest(http.MethodPost).
		Pathf("/breeders/%d/reviews", breederID).
		Bearer(token).
		JSON(review).
		Context(ctx).
		ExecuteEnvelope(c.http, msgSubmitReview, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
