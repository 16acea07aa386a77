package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

type Bid struct {
	ID        int64           `json:"id"`
	ListingID int64           `json:"listing_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message,omitempty"`
	Bidder    string          `json:"bidder,omitempty"`
	Status    BidStatus       `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// PlaceBidRequest is the place-bid body; an empty message is left out
type PlaceBidRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message,omitempty"`
}

// Decided reports whether the bid left the pending state
func (b Bid) Decided() bool {
	return b.Status == BidStatusAccepted || b.Status == BidStatusRejected
}
