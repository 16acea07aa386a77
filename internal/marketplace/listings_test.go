package marketplace

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/parlakisik/pawmarket/internal/model"
	"github.com/parlakisik/pawmarket/internal/testutil"
)

func newTestClient(t *testing.T) (*Client, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	return New(backend.Client()), backend
}

func float(v float64) *float64 {
	return &v
}

func TestListListings(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodGet, "/marketplace/listings", testutil.Reply{
		Body: testutil.Data([]model.Listing{testutil.NewListingFixture()}),
	})

	listings, err := c.ListListings(context.Background(), "tok", model.ListingQuery{
		Lat:      float(10),
		Lon:      float(20),
		Category: "fish",
	})
	testutil.AssertNoError(t, err)

	if len(listings) != 1 {
		t.Fatalf("ListListings() returned %d listings, want 1", len(listings))
	}
	testutil.AssertEqual(t, int64(1), listings[0].ID)
	if !listings[0].BasePrice.Equal(decimal.RequireFromString("45.50")) {
		t.Errorf("BasePrice = %v, want 45.50", listings[0].BasePrice)
	}

	req := backend.Last(t)
	testutil.AssertEqual(t, "Bearer tok", req.Header.Get("Authorization"))
	testutil.AssertEqual(t, "application/json", req.Header.Get("Content-Type"))
	testutil.AssertEqual(t, "10", req.Query.Get("lat"))
	testutil.AssertEqual(t, "20", req.Query.Get("lon"))
	testutil.AssertEqual(t, "fish", req.Query.Get("category"))
}

func TestListListings_EncodesCategory(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodGet, "/marketplace/listings", testutil.Reply{
		Body: testutil.Data([]model.Listing{}),
	})

	_, err := c.ListListings(context.Background(), "tok", model.ListingQuery{Category: "fish & chips"})
	testutil.AssertNoError(t, err)

	req := backend.Last(t)
	testutil.AssertEqual(t, "fish & chips", req.Query.Get("category"))
	if _, ok := req.Query["lat"]; ok {
		t.Error("lat sent without a location")
	}
}

func TestListListings_OmitsEmptyCategory(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodGet, "/marketplace/listings", testutil.Reply{
		Body: testutil.Data([]model.Listing{}),
	})

	listings, err := c.ListListings(context.Background(), "tok", model.ListingQuery{Lat: float(1.5), Lon: float(-2.25)})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, 0, len(listings))

	req := backend.Last(t)
	if _, ok := req.Query["category"]; ok {
		t.Error("empty category was sent")
	}
	testutil.AssertEqual(t, "1.5", req.Query.Get("lat"))
	testutil.AssertEqual(t, "-2.25", req.Query.Get("lon"))
}

func TestListListings_Failure(t *testing.T) {
	tests := []struct {
		name    string
		reply   testutil.Reply
		wantMsg string
	}{
		{
			name:    "backend message",
			reply:   testutil.Reply{Status: http.StatusUnauthorized, Body: testutil.Message("Token expired")},
			wantMsg: "Token expired",
		},
		{
			name:    "no message",
			reply:   testutil.Reply{Status: http.StatusBadGateway, Raw: testutil.Raw("<html>bad gateway</html>")},
			wantMsg: "Failed to fetch listings",
		},
		{
			name:    "success without data",
			reply:   testutil.Reply{Body: testutil.Message("ok")},
			wantMsg: "Failed to fetch listings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, backend := newTestClient(t)
			backend.Handle(t, http.MethodGet, "/marketplace/listings", tt.reply)

			_, err := c.ListListings(context.Background(), "tok", model.ListingQuery{})
			testutil.AssertErrorMessage(t, err, tt.wantMsg)
		})
	}
}

func TestGetListing(t *testing.T) {
	c, backend := newTestClient(t)

	listing := testutil.NewListingFixture()
	listing.BiddingHistory = []model.Bid{testutil.NewBidFixture()}
	listing.MyBiddingHistory = []model.Bid{testutil.NewBidFixture()}
	backend.Handle(t, http.MethodGet, "/marketplace/listings/{id}", testutil.Reply{Body: testutil.Data(listing)})

	got, err := c.GetListing(context.Background(), "tok", 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "Red cherry shrimp colony", got.Title)
	testutil.AssertEqual(t, 1, len(got.BiddingHistory))
	testutil.AssertEqual(t, 1, len(got.MyBiddingHistory))
	testutil.AssertEqual(t, "/marketplace/listings/1", backend.Last(t).Path)
}

func TestGetListing_NotFound(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodGet, "/marketplace/listings/{id}", testutil.Reply{
		Status: http.StatusNotFound,
		Body:   testutil.Message("Listing not found"),
	})

	_, err := c.GetListing(context.Background(), "tok", 404)
	testutil.AssertErrorMessage(t, err, "Listing not found")
}

func TestCreateListing(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodPost, "/marketplace/listings", testutil.Reply{
		Status: http.StatusCreated,
		Body: map[string]any{
			"message": "Listing created",
			"data":    testutil.NewListingFixture(),
		},
	})

	thumb := testutil.TempFile(t, "thumb.jpg", "jpeg-bytes")
	created, err := c.CreateListing(context.Background(), "tok", model.NewListing{
		Title:       "Red cherry shrimp colony",
		Description: "Twenty adults, captive bred",
		BasePrice:   decimal.RequireFromString("45.5"),
		Category:    "fish",
		Thumbnail:   &model.File{URI: thumb, Name: "thumb.jpg", Type: "image/jpeg"},
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "Listing created", created.Message)
	testutil.AssertEqual(t, int64(1), created.Listing.ID)

	req := backend.Last(t)
	testutil.AssertEqual(t, "Bearer tok", req.Header.Get("Authorization"))
	if ct := req.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
		t.Errorf("Content-Type = %q, want multipart with boundary", ct)
	}

	price, _ := req.FormValue("base_price")
	testutil.AssertEqual(t, "45.5", price)
	category, _ := req.FormValue("category")
	testutil.AssertEqual(t, "fish", category)
	if _, ok := req.FormValue("subcategory"); ok {
		t.Error("empty subcategory was sent")
	}

	content, filename, contentType := req.FormFile(t, "thumbnail")
	testutil.AssertEqual(t, "jpeg-bytes", content)
	testutil.AssertEqual(t, "thumb.jpg", filename)
	testutil.AssertEqual(t, "image/jpeg", contentType)
}

func TestCreateListing_WithoutThumbnail(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodPost, "/marketplace/listings", testutil.Reply{
		Status: http.StatusCreated,
		Body:   testutil.Data(testutil.NewListingFixture()),
	})

	created, err := c.CreateListing(context.Background(), "tok", model.NewListing{
		Title:       "Corydoras",
		BasePrice:   decimal.RequireFromString("12"),
		Category:    "fish",
		Subcategory: "catfish",
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "", created.Message)

	req := backend.Last(t)
	if req.Form == nil {
		t.Fatal("request was not multipart")
	}
	if len(req.Form.File) != 0 {
		t.Errorf("file parts = %d, want 0", len(req.Form.File))
	}
	sub, _ := req.FormValue("subcategory")
	testutil.AssertEqual(t, "catfish", sub)
}

func TestCreateListing_AcknowledgedWithoutData(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodPost, "/marketplace/listings", testutil.Reply{
		Status: http.StatusCreated,
		Body:   map[string]any{"message": "Listing created", "id": 42},
	})

	created, err := c.CreateListing(context.Background(), "tok", model.NewListing{
		Title:     "Corydoras",
		BasePrice: decimal.RequireFromString("12"),
		Category:  "fish",
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "Listing created", created.Message)
	if created.Listing != nil {
		t.Errorf("Listing = %+v, want nil when the reply has no data", created.Listing)
	}
	testutil.AssertEqual(t, 1, len(backend.Requests()))
}

func TestCreateListing_MissingThumbnailFile(t *testing.T) {
	c, backend := newTestClient(t)

	_, err := c.CreateListing(context.Background(), "tok", model.NewListing{
		Title:     "Corydoras",
		BasePrice: decimal.RequireFromString("12"),
		Category:  "fish",
		Thumbnail: &model.File{URI: "/no/such/thumb.jpg"},
	})
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, 0, len(backend.Requests()))
}

func TestListMyListings(t *testing.T) {
	c, backend := newTestClient(t)
	backend.Handle(t, http.MethodGet, "/marketplace/my-listings", testutil.Reply{
		Body: testutil.Data([]model.Listing{testutil.NewListingFixture(), testutil.NewListingFixture()}),
	})

	listings, err := c.ListMyListings(context.Background(), "tok")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, 2, len(listings))
}
