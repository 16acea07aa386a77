package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
	ListingStatusClosed ListingStatus = "closed"
)

type SellerSummary struct {
	ID       int64   `json:"id,omitempty"`
	Username string  `json:"username"`
	Rating   float64 `json:"rating,omitempty"`
}

type Listing struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory,omitempty"`
	Status       ListingStatus   `json:"status"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
	Seller       *SellerSummary  `json:"seller,omitempty"`
	SellerUserID int64           `json:"seller_user_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	BiddingHistory   []Bid `json:"bidding_history,omitempty"`
	MyBiddingHistory []Bid `json:"my_bidding_history,omitempty"`
}

// ListingQuery filters the public listing feed
type ListingQuery struct {
	Lat      *float64
	Lon      *float64
	Category string
}

// NewListing is the create-listing form. Thumbnail is optional.
type NewListing struct {
	Title       string
	Description string
	BasePrice   decimal.Decimal
	Category    string
	Subcategory string
	Thumbnail   *File
}

// CreatedListing is the full create-listing envelope. Listing is nil when
// the backend acknowledged the create without echoing the listing.
type CreatedListing struct {
	Message string   `json:"message,omitempty"`
	Listing *Listing `json:"data,omitempty"`
}

// HighestBid returns the highest bid in the listing's history
func (l Listing) HighestBid() (Bid, bool) {
	var best Bid
	found := false
	for _, b := range l.BiddingHistory {
		if !found || b.Amount.GreaterThan(best.Amount) {
			best = b
			found = true
		}
	}
	return best, found
}
