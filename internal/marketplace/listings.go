package marketplace

import (
	"context"
	"net/http"

	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/model"
)

// ListListings returns the listing feed around a location, optionally
// narrowed to one category.
func (c *Client) ListListings(ctx context.Context, token string, q model.ListingQuery) ([]model.Listing, error) {
	b := c.http.NewRequest(http.MethodGet).
		Path("/marketplace/listings").
		OptionalQuery("category", q.Category).
		Bearer(token).
		Context(ctx)
	if q.Lat != nil {
		b.Query("lat", formatCoord(*q.Lat))
	}
	if q.Lon != nil {
		b.Query("lon", formatCoord(*q.Lon))
	}

	var listings []model.Listing
	if err := b.ExecuteEnvelope(c.http, msgFetchListings, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetListing returns one listing including its bid histories
func (c *Client) GetListing(ctx context.Context, token string, id int64) (*model.Listing, error) {
	var listing model.Listing
	err := c.http.NewRequest(http.MethodGet).
		Pathf("/marketplace/listings/%d", id).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchListing, &listing)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// CreateListing uploads a new listing as a multipart form and returns the
// whole response envelope. Any 2xx means the listing exists, so a reply
// without data still succeeds with a nil Listing.
func (c *Client) CreateListing(ctx context.Context, token string, in model.NewListing) (*model.CreatedListing, error) {
	form := httpclient.NewForm().
		Field("title", in.Title).
		Field("description", in.Description).
		FieldString("base_price", in.BasePrice).
		Field("category", in.Category).
		OptionalField("subcategory", in.Subcategory).
		File("thumbnail", in.Thumbnail)

	var listing model.Listing
	message, hasData, err := c.http.NewRequest(http.MethodPost).
		Path("/marketplace/listings").
		Bearer(token).
		Multipart(form).
		Context(ctx).
		ExecuteWithMessage(c.http, msgCreateListing, &listing)
	if err != nil {
		return nil, err
	}

	created := &model.CreatedListing{Message: message}
	if hasData {
		created.Listing = &listing
	}
	return created, nil
}

// ListMyListings returns the listings owned by the token's user
func (c *Client) ListMyListings(ctx context.Context, token string) ([]model.Listing, error) {
	var listings []model.Listing
	err := c.http.NewRequest(http.MethodGet).
		Path("/marketplace/my-listings").
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchMyListings, &listings)
	if err != nil {
		return nil, err
	}
	return listings, nil
}
