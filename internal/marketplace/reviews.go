package marketplace

import (
	"context"
	"net/http"

	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/model"
)

// CreateSellerReview rates a seller, optionally tying the review to the
// listing it was bought from.
func (c *Client) CreateSellerReview(ctx context.Context, token string, sellerID int64, review model.NewReview) (httpclient.Ack, error) {
	return c.http.NewRequest(http.MethodPost).
		Pathf("/marketplace/sellers/%d/reviews", sellerID).
		Bearer(token).
		JSON(review).
		Context(ctx).
		ExecuteAck(c.http, msgSubmitReview)
}
