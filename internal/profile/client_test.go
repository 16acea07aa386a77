package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/parlakisik/pawmarket/internal/model"
	"github.com/parlakisik/pawmarket/internal/testutil"
)

func profileFixture() model.Profile {
	return model.Profile{
		ID:       70,
		Username: "reefkeeper",
		Email:    "reef@example.com",
		IsSeller: true,
	}
}

func TestGetProfile(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle(t, http.MethodGet, "/users/me", testutil.Reply{Body: testutil.Data(profileFixture())})
	c := New(backend.Client())

	p, err := c.GetProfile(context.Background(), "tok")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "reefkeeper", p.Username)
	testutil.AssertEqual(t, true, p.IsSeller)
}

func TestGetProfile_Unauthorized(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Handle(t, http.MethodGet, "/users/me", testutil.Reply{
		Status: http.StatusUnauthorized,
		Raw:    testutil.Raw("Unauthorized"),
	})
	c := New(backend.Client())

	_, err := c.GetProfile(context.Background(), "")
	testutil.AssertErrorMessage(t, err, "Failed to fetch profile")
	testutil.AssertEqual(t, "Bearer", strings.TrimSpace(backend.Last(t).Header.Get("Authorization")))
}

func TestUpdateProfile(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	updated := profileFixture()
	updated.Bio = "Shrimp and snails"
	backend.Handle(t, http.MethodPut, "/users/me", testutil.Reply{Body: testutil.Data(updated)})
	c := New(backend.Client())

	p, err := c.UpdateProfile(context.Background(), "tok", model.ProfileUpdate{
		Username: "reefkeeper",
		Bio:      "Shrimp and snails",
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "Shrimp and snails", p.Bio)

	body := backend.Last(t).DecodeJSON(t)
	testutil.AssertEqual(t, "reefkeeper", body["username"])
	if _, ok := body["phone"]; ok {
		t.Error("empty phone was sent")
	}
}

func TestUploadProfilePicture(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	withPicture := profileFixture()
	withPicture.ProfilePictureURL = "https://cdn.example.com/users/70.png"
	backend.Handle(t, http.MethodPatch, "/users/me/picture", testutil.Reply{Body: testutil.Data(withPicture)})
	c := New(backend.Client())

	path := testutil.TempFile(t, "me.png", "png-bytes")
	p, err := c.UploadProfilePicture(context.Background(), "tok", model.File{URI: "file://" + path, Type: "image/png"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, withPicture.ProfilePictureURL, p.ProfilePictureURL)

	req := backend.Last(t)
	if ct := req.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
		t.Errorf("Content-Type = %q, want multipart/form-data", ct)
	}
	content, filename, contentType := req.FormFile(t, "profile_picture")
	testutil.AssertEqual(t, "png-bytes", content)
	testutil.AssertEqual(t, "me.png", filename)
	testutil.AssertEqual(t, "image/png", contentType)
}

func TestUploadProfilePicture_NoFile(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := New(backend.Client())

	_, err := c.UploadProfilePicture(context.Background(), "tok", model.File{})
	if !errors.Is(err, ErrNoPicture) {
		t.Errorf("UploadProfilePicture() error = %v, want ErrNoPicture", err)
	}
	testutil.AssertEqual(t, 0, len(backend.Requests()))
}
