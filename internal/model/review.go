package model

import "time"

type Review struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Reviewer  string    `json:"reviewer,omitempty"`
	ListingID *int64    `json:"listing_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview is the create-review body. ListingID is only sent for seller
// reviews tied to a purchase.
type NewReview struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	ListingID *int64 `json:"listing_id,omitempty"`
}
