package model

type Profile struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"full_name,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Bio               string `json:"bio,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	IsSeller          bool   `json:"is_seller"`
}

// ProfileUpdate is the full-replacement body of the caller's profile
type ProfileUpdate struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Bio      string `json:"bio,omitempty"`
}
