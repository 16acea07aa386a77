// Package marketplace holds the resource client functions for listings, bids,
// seller profiles and seller reviews.
package marketplace

import (
	"strconv"

	"github.com/parlakisik/pawmarket/internal/httpclient"
)

const (
	msgFetchListings       = "Failed to fetch listings"
	msgFetchListing        = "Failed to fetch listing"
	msgCreateListing       = "Failed to create listing"
	msgPlaceBid            = "Failed to place bid"
	msgFetchBids           = "Failed to fetch bids"
	msgAcceptBid           = "Failed to accept bid"
	msgRejectBid           = "Failed to reject bid"
	msgFetchMyListings     = "Failed to fetch your listings"
	msgFetchSellerProfile  = "Failed to fetch seller profile"
	msgUpdateSellerProfile = "Failed to update seller profile"
	msgSubmitReview        = "Failed to submit review"
	msgFetchSeller         = "Failed to fetch seller"
)

// Client issues marketplace calls. Every call takes the caller's token
// explicitly; the client holds no session state.
type Client struct {
	http *httpclient.Client
}

func New(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
