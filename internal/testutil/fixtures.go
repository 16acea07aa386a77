package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parlakisik/pawmarket/internal/model"
)

var fixtureTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// NewListingFixture creates a default listing for testing
func NewListingFixture() model.Listing {
	return model.Listing{
		ID:           1,
		Title:        "Red cherry shrimp colony",
		Description:  "Twenty adults, captive bred",
		BasePrice:    decimal.RequireFromString("45.50"),
		Category:     "fish",
		Subcategory:  "invertebrates",
		Status:       model.ListingStatusActive,
		Thumbnail:    "https://cdn.example.com/listings/1.jpg",
		Seller:       &model.SellerSummary{ID: 7, Username: "reefkeeper", Rating: 4.8},
		SellerUserID: 70,
		CreatedAt:    fixtureTime,
	}
}

// NewBidFixture creates a pending bid for testing
func NewBidFixture() model.Bid {
	return model.Bid{
		ID:        9,
		ListingID: 1,
		Amount:    decimal.RequireFromString("100"),
		Bidder:    "aquafan",
		Status:    model.BidStatusPending,
		CreatedAt: fixtureTime,
	}
}

// NewBreederFixture creates a breeder with one review
func NewBreederFixture() model.Breeder {
	return model.Breeder{
		ID:       3,
		Name:     "Willow Creek Corgis",
		Rating:   4.6,
		Reviews:  1,
		Location: model.Location{Lat: 47.61, Lon: -122.33},
		Species:  []string{"dog"},
		Contact:  map[string]string{"email": "hello@willowcreek.example"},
		ReviewsList: []model.Review{
			{ID: 11, Rating: 5, Comment: "Healthy pup", Reviewer: "sam", CreatedAt: fixtureTime},
		},
	}
}

// NewBookingFixture creates a pending booking that can still change
func NewBookingFixture() model.Booking {
	return model.Booking{
		ID:             21,
		Status:         model.BookingStatusPending,
		ScheduledStart: fixtureTime,
		ScheduledEnd:   fixtureTime.Add(2 * time.Hour),
		CanCancel:      true,
		CanReschedule:  true,
		Services: []model.BookingService{
			{ID: 1, Name: "Grooming", Price: decimal.RequireFromString("35.00")},
			{ID: 2, Name: "Nail trim", Price: decimal.RequireFromString("12.50")},
		},
	}
}

// NewSellerProfileFixture creates a seller profile for testing
func NewSellerProfileFixture() model.SellerProfile {
	return model.SellerProfile{
		SellerID:        7,
		Username:        "reefkeeper",
		Rating:          4.8,
		ExpertiseTags:   []string{"shrimp", "planted tanks"},
		ProfileVideoURL: "https://cdn.example.com/sellers/7.mp4",
	}
}

// TempFile writes content to a file in the test's temp dir and returns its path
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
