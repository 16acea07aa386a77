package model

type SellerProfile struct {
	SellerID        int64    `json:"seller_id"`
	Username        string   `json:"username"`
	Rating          float64  `json:"rating"`
	ExpertiseTags   []string `json:"expertise_tags"`
	ProfileVideoURL string   `json:"profile_video_url,omitempty"`
	RecentReviews   []Review `json:"recent_reviews,omitempty"`
}

// SellerProfileUpdate is the multipart patch of the caller's seller profile
type SellerProfileUpdate struct {
	ExpertiseTags []string
	ProfileVideo  *File
}
