package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/model"
)

type sellerRef struct {
	SellerID *int64 `json:"seller_id"`
}

func (c *Client) GetSellerProfile(ctx context.Context, token string, sellerID int64) (*model.SellerProfile, error) {
	var profile model.SellerProfile
	err := c.http.NewRequest(http.MethodGet).
		Pathf("/marketplace/sellers/%d", sellerID).
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchSellerProfile, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMySellerID returns only data.seller_id of the caller's seller profile
func (c *Client) GetMySellerID(ctx context.Context, token string) (int64, error) {
	return c.sellerID(ctx, c.http.NewRequest(http.MethodGet).Path("/marketplace/sellers/me"), token, msgFetchSellerProfile)
}

// GetSellerIDForUser resolves a listing's seller_user_id to the seller id
// used by the profile and review endpoints.
func (c *Client) GetSellerIDForUser(ctx context.Context, token string, userID int64) (int64, error) {
	return c.sellerID(ctx, c.http.NewRequest(http.MethodGet).Pathf("/marketplace/users/%d/seller", userID), token, msgFetchSeller)
}

// sellerID narrows the envelope to data.seller_id. A success without that
// field is reported like a success without data.
func (c *Client) sellerID(ctx context.Context, b *httpclient.RequestBuilder, token, fallback string) (int64, error) {
	ack, err := b.Bearer(token).Context(ctx).ExecuteAck(c.http, fallback)
	if err != nil {
		return 0, err
	}

	var ref sellerRef
	if len(ack.Data) > 0 {
		if err := json.Unmarshal(ack.Data, &ref); err != nil {
			return 0, fmt.Errorf("decode data: %w", err)
		}
	}
	if ref.SellerID == nil {
		return 0, &httpclient.APIError{StatusCode: ack.StatusCode, Message: fallback, Err: httpclient.ErrEmptyData}
	}
	return *ref.SellerID, nil
}

// UpdateMySellerProfile patches the caller's expertise tags and, when given,
// uploads a new profile video.
func (c *Client) UpdateMySellerProfile(ctx context.Context, token string, in model.SellerProfileUpdate) (*model.SellerProfile, error) {
	tags := in.ExpertiseTags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode expertise tags: %w", err)
	}

	form := httpclient.NewForm().
		Field("expertise_tags", string(encoded)).
		File("profile_video", in.ProfileVideo)

	var profile model.SellerProfile
	err = c.http.NewRequest(http.MethodPatch).
		Path("/marketplace/sellers/me").
		Bearer(token).
		Multipart(form).
		Context(ctx).
		ExecuteEnvelope(c.http, msgUpdateSellerProfile, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
