package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestListing_HighestBid(t *testing.T) {
	l := Listing{}
	if _, ok := l.HighestBid(); ok {
		t.Error("HighestBid() on a listing without bids reported a bid")
	}

	l.BiddingHistory = []Bid{
		{ID: 1, Amount: decimal.RequireFromString("50")},
		{ID: 2, Amount: decimal.RequireFromString("120.5")},
		{ID: 3, Amount: decimal.RequireFromString("99.99")},
	}
	best, ok := l.HighestBid()
	if !ok || best.ID != 2 {
		t.Errorf("HighestBid() = %v, %v, want bid 2", best.ID, ok)
	}
}

func TestBooking_Total(t *testing.T) {
	b := Booking{Services: []BookingService{
		{Price: decimal.RequireFromString("0.10")},
		{Price: decimal.RequireFromString("0.20")},
	}}
	if got := b.Total(); !got.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("Total() = %v, want 0.3", got)
	}
	if got := (Booking{}).Total(); !got.IsZero() {
		t.Errorf("Total() of empty booking = %v, want 0", got)
	}
}

func TestListing_DecodesNumericAndStringPrices(t *testing.T) {
	for _, raw := range []string{`{"id":1,"base_price":45.5}`, `{"id":1,"base_price":"45.50"}`} {
		var l Listing
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", raw, err)
		}
		if !l.BasePrice.Equal(decimal.RequireFromString("45.5")) {
			t.Errorf("Unmarshal(%s) BasePrice = %v, want 45.5", raw, l.BasePrice)
		}
	}
}

func TestPlaceBidRequest_OmitsEmptyMessage(t *testing.T) {
	b, err := json.Marshal(PlaceBidRequest{Amount: decimal.RequireFromString("100")})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got, want := string(b), `{"amount":"100"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
