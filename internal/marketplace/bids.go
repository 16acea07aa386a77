package marketplace

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/parlakisik/pawmarket/internal/model"
)

// PlaceBid bids amount on a listing. An empty message is not sent.
func (c *Client) PlaceBid(ctx context.Context, token string, listingID int64, amount decimal.Decimal, message string) (*model.Bid, error) {
	var bid model.Bid
	err := c.http.NewRequest(http.MethodPost).
		Pathf("/marketplace/listings/%d/bids", listingID).
		Bearer(token).
		JSON(model.PlaceBidRequest{Amount: amount, Message: message}).
		Context(ctx).
		ExecuteEnvelope(c.http, msgPlaceBid, &bid)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (c *Client) ListBids(ctx context.Context, token string, listingID int64) ([]model.Bid, error) {
	var bids []model.Bid
	err := c.http.NewRequest(http.MethodGet).
		Pathf("/marketplace/listings/%d/bids", listingID).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchBids, &bids)
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// AcceptBid moves a pending bid to accepted
func (c *Client) AcceptBid(ctx context.Context, token string, bidID int64) (*model.Bid, error) {
	return c.decideBid(ctx, token, bidID, "accept", msgAcceptBid)
}

// RejectBid moves a pending bid to rejected
func (c *Client) RejectBid(ctx context.Context, token string, bidID int64) (*model.Bid, error) {
	return c.decideBid(ctx, token, bidID, "reject", msgRejectBid)
}

func (c *Client) decideBid(ctx context.Context, token string, bidID int64, action, fallback string) (*model.Bid, error) {
	var bid model.Bid
	err := c.http.NewRequest(http.MethodPost).
		Pathf("/marketplace/bids/%d/%s", bidID, action).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, fallback, &bid)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}
