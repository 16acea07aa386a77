// Package profile is the client for the caller's own user profile.
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/model"
)

const (
	msgFetchProfile  = "Failed to fetch profile"
	msgUpdateProfile = "Failed to update profile"
	msgUploadPicture = "Failed to upload profile picture"
)

var ErrNoPicture = errors.New("profile picture file is required")

type Client struct {
	http *httpclient.Client
}

func New(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	var p model.Profile
	err := c.http.NewRequest(http.MethodGet).
		Path("/users/me").
		Bearer(token).
		Context(ctx).
		ExecuteEnvelope(c.http, msgFetchProfile, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile replaces the editable profile fields
func (c *Client) UpdateProfile(ctx context.Context, token string, in model.ProfileUpdate) (*model.Profile, error) {
	var p model.Profile
	err := c.http.NewRequest(http.MethodPut).
		Path("/users/me").
		Bearer(token).
		JSON(in).
		Context(ctx).
		ExecuteEnvelope(c.http, msgUpdateProfile, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadProfilePicture sends picture as the profile_picture file part
func (c *Client) UploadProfilePicture(ctx context.Context, token string, picture model.File) (*model.Profile, error) {
	if picture.URI == "" {
		return nil, ErrNoPicture
	}
	form := httpclient.NewForm().File("profile_picture", &picture)

	var p model.Profile
	err := c.http.NewRequest(http.MethodPatch).
		Path("/users/me/picture").
		Bearer(token).
		Multipart(form).
		Context(ctx).
		ExecuteEnvelope(c.http, msgUploadPicture, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
