package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parlakisik/pawmarket/internal/bookings"
	"github.com/parlakisik/pawmarket/internal/model"
)

// listingView is a listing as printed by the CLI, with its top bid resolved
type listingView struct {
	*model.Listing
	HighestBid *model.Bid `json:"highest_bid,omitempty"`
}

// bookingView is a booking as printed by the CLI, with its price total
type bookingView struct {
	*model.Booking
	Total decimal.Decimal `json:"total"`
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) (any, error)
}

var commands = map[string]command{
	"listings":           {"list listings near a location", listListings},
	"listing":            {"show one listing: <listing-id>", getListing},
	"create-listing":     {"create a listing from flags", createListing},
	"bid":                {"bid on a listing: <listing-id> --amount A", placeBid},
	"bids":               {"list bids on a listing: <listing-id> [--pending]", listBids},
	"accept-bid":         {"accept a bid: <bid-id>", acceptBid},
	"reject-bid":         {"reject a bid: <bid-id>", rejectBid},
	"my-listings":        {"list your own listings", myListings},
	"seller":             {"show a seller profile: <seller-id> or --user <user-id>", sellerProfile},
	"my-seller-id":       {"print your seller id", mySellerID},
	"update-seller":      {"update your seller profile", updateSeller},
	"review-seller":      {"review a seller: <seller-id> --rating N", reviewSeller},
	"breeders":           {"list breeders near a location", listBreeders},
	"breeder":            {"show one breeder: <breeder-id>", getBreeder},
	"review-breeder":     {"review a breeder: <breeder-id> --rating N", reviewBreeder},
	"bookings":           {"list your bookings", listBookings},
	"booking":            {"show one booking: <booking-id>", getBooking},
	"confirm-booking":    {"confirm a booking: <booking-id>", confirmBooking},
	"cancel-booking":     {"cancel a booking: <booking-id> [--reason R]", cancelBooking},
	"reschedule-booking": {"move a booking: <booking-id> --start T --end T", rescheduleBooking},
	"booking-status":     {"set a booking status: <booking-id> --status S", bookingStatus},
	"me":                 {"show your profile", getMe},
	"update-me":          {"replace your profile fields", updateMe},
	"upload-picture":     {"upload a profile picture: <path>", uploadPicture},
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseWithArg parses flags around a single positional argument, which may
// come before or after the flags.
func parseWithArg(fs *flag.FlagSet, args []string) (string, error) {
	var positional string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positional, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if positional == "" {
		positional = fs.Arg(0)
	}
	return positional, nil
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func parseID(fs *flag.FlagSet, args []string, what string) (int64, error) {
	raw, err := parseWithArg(fs, args)
	if err != nil {
		return 0, err
	}
	return requireID(fs.Name(), raw, what)
}

func requireID(cmd, raw, what string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s needs a %s", errUsage, cmd, what)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s: invalid %s %q", errUsage, cmd, what, raw)
	}
	return id, nil
}

func optionalFloat(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --%s %q", errUsage, name, raw)
	}
	return &v, nil
}

func fileArg(path, contentType string) *model.File {
	if path == "" {
		return nil
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}
	return &model.File{URI: path, Name: filepath.Base(path), Type: contentType}
}

func listListings(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("listings")
	lat := fs.String("lat", "", "latitude")
	lon := fs.String("lon", "", "longitude")
	category := fs.String("category", "", "category filter")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	q := model.ListingQuery{Category: *category}
	var err error
	if q.Lat, err = optionalFloat("lat", *lat); err != nil {
		return nil, err
	}
	if q.Lon, err = optionalFloat("lon", *lon); err != nil {
		return nil, err
	}
	return a.marketplace.ListListings(ctx, a.token, q)
}

func getListing(ctx context.Context, a *app, args []string) (any, error) {
	id, err := parseID(newFlags("listing"), args, "listing id")
	if err != nil {
		return nil, err
	}
	listing, err := a.marketplace.GetListing(ctx, a.token, id)
	if err != nil {
		return nil, err
	}

	view := listingView{Listing: listing}
	if top, ok := listing.HighestBid(); ok {
		view.HighestBid = &top
	}
	return view, nil
}

func createListing(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("create-listing")
	title := fs.String("title", "", "listing title")
	description := fs.String("description", "", "listing description")
	price := fs.String("price", "", "base price")
	category := fs.String("category", "", "category")
	subcategory := fs.String("subcategory", "", "subcategory")
	thumbnail := fs.String("thumbnail", "", "thumbnail image path")
	thumbnailType := fs.String("thumbnail-type", "", "thumbnail MIME type")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	if *title == "" || *category == "" || *price == "" {
		return nil, fmt.Errorf("%w: create-listing needs --title, --category and --price", errUsage)
	}
	basePrice, err := decimal.NewFromString(*price)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --price %q", errUsage, *price)
	}

	return a.marketplace.CreateListing(ctx, a.token, model.NewListing{
		Title:       *title,
		Description: *description,
		BasePrice:   basePrice,
		Category:    *category,
		Subcategory: *subcategory,
		Thumbnail:   fileArg(*thumbnail, *thumbnailType),
	})
}

func placeBid(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("bid")
	amount := fs.String("amount", "", "bid amount")
	message := fs.String("message", "", "note to the seller")
	listingID, err := parseID(fs, args, "listing id")
	if err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --amount %q", errUsage, *amount)
	}
	return a.marketplace.PlaceBid(ctx, a.token, listingID, value, *message)
}

func listBids(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("bids")
	pending := fs.Bool("pending", false, "only bids still awaiting a decision")
	listingID, err := parseID(fs, args, "listing id")
	if err != nil {
		return nil, err
	}

	bids, err := a.marketplace.ListBids(ctx, a.token, listingID)
	if err != nil || !*pending {
		return bids, err
	}
	open := make([]model.Bid, 0, len(bids))
	for _, b := range bids {
		if !b.Decided() {
			open = append(open, b)
		}
	}
	return open, nil
}

func acceptBid(ctx context.Context, a *app, args []string) (any, error) {
	bidID, err := parseID(newFlags("accept-bid"), args, "bid id")
	if err != nil {
		return nil, err
	}
	return a.marketplace.AcceptBid(ctx, a.token, bidID)
}

func rejectBid(ctx context.Context, a *app, args []string) (any, error) {
	bidID, err := parseID(newFlags("reject-bid"), args, "bid id")
	if err != nil {
		return nil, err
	}
	return a.marketplace.RejectBid(ctx, a.token, bidID)
}

func myListings(ctx context.Context, a *app, args []string) (any, error) {
	if err := parseFlags(newFlags("my-listings"), args); err != nil {
		return nil, err
	}
	return a.marketplace.ListMyListings(ctx, a.token)
}

func sellerProfile(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("seller")
	user := fs.Int64("user", 0, "resolve the seller from a user id")
	raw, err := parseWithArg(fs, args)
	if err != nil {
		return nil, err
	}

	var sellerID int64
	if *user > 0 {
		if sellerID, err = a.marketplace.GetSellerIDForUser(ctx, a.token, *user); err != nil {
			return nil, err
		}
	} else if sellerID, err = requireID("seller", raw, "seller id"); err != nil {
		return nil, err
	}
	return a.marketplace.GetSellerProfile(ctx, a.token, sellerID)
}

func mySellerID(ctx context.Context, a *app, args []string) (any, error) {
	if err := parseFlags(newFlags("my-seller-id"), args); err != nil {
		return nil, err
	}
	id, err := a.marketplace.GetMySellerID(ctx, a.token)
	if err != nil {
		return nil, err
	}
	return map[string]int64{"seller_id": id}, nil
}

func updateSeller(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("update-seller")
	tags := fs.String("tags", "", "comma separated expertise tags")
	video := fs.String("video", "", "profile video path")
	videoType := fs.String("video-type", "", "profile video MIME type")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	var expertise []string
	for _, tag := range strings.Split(*tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			expertise = append(expertise, tag)
		}
	}
	return a.marketplace.UpdateMySellerProfile(ctx, a.token, model.SellerProfileUpdate{
		ExpertiseTags: expertise,
		ProfileVideo:  fileArg(*video, *videoType),
	})
}

func reviewFlags(name string) (*flag.FlagSet, *int, *string) {
	fs := newFlags(name)
	rating := fs.Int("rating", 0, "rating from 1 to 5")
	comment := fs.String("comment", "", "review text")
	return fs, rating, comment
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: --rating must be between 1 and 5", errUsage)
	}
	return nil
}

func reviewSeller(ctx context.Context, a *app, args []string) (any, error) {
	fs, rating, comment := reviewFlags("review-seller")
	listing := fs.Int64("listing", 0, "listing the review refers to")
	sellerID, err := parseID(fs, args, "seller id")
	if err != nil {
		return nil, err
	}
	if err := checkRating(*rating); err != nil {
		return nil, err
	}

	review := model.NewReview{Rating: *rating, Comment: *comment}
	if *listing > 0 {
		review.ListingID = listing
	}
	return a.marketplace.CreateSellerReview(ctx, a.token, sellerID, review)
}

func listBreeders(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("breeders")
	lat := fs.String("lat", "", "latitude")
	lon := fs.String("lon", "", "longitude")
	species := fs.String("species", "", "species filter")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	q := model.BreederQuery{Species: *species}
	var err error
	if q.Lat, err = optionalFloat("lat", *lat); err != nil {
		return nil, err
	}
	if q.Lon, err = optionalFloat("lon", *lon); err != nil {
		return nil, err
	}
	return a.breeders.ListBreeders(ctx, a.token, q)
}

func getBreeder(ctx context.Context, a *app, args []string) (any, error) {
	id, err := parseID(newFlags("breeder"), args, "breeder id")
	if err != nil {
		return nil, err
	}
	return a.breeders.GetBreeder(ctx, a.token, id)
}

func reviewBreeder(ctx context.Context, a *app, args []string) (any, error) {
	fs, rating, comment := reviewFlags("review-breeder")
	breederID, err := parseID(fs, args, "breeder id")
	if err != nil {
		return nil, err
	}
	if err := checkRating(*rating); err != nil {
		return nil, err
	}
	return a.breeders.CreateBreederReview(ctx, a.token, breederID, model.NewReview{Rating: *rating, Comment: *comment})
}

func listBookings(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("bookings")
	status := fs.String("status", "", "status filter")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	return a.bookings.ListBookings(ctx, a.token, model.BookingStatus(*status))
}

func getBooking(ctx context.Context, a *app, args []string) (any, error) {
	id, err := parseID(newFlags("booking"), args, "booking id")
	if err != nil {
		return nil, err
	}
	booking, err := a.bookings.GetBooking(ctx, a.token, id)
	if err != nil {
		return nil, err
	}
	return bookingView{Booking: booking, Total: booking.Total()}, nil
}

func confirmBooking(ctx context.Context, a *app, args []string) (any, error) {
	id, err := parseID(newFlags("confirm-booking"), args, "booking id")
	if err != nil {
		return nil, err
	}
	return a.bookings.ConfirmBooking(ctx, a.token, id)
}

func cancelBooking(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("cancel-booking")
	reason := fs.String("reason", "", "cancellation reason")
	id, err := parseID(fs, args, "booking id")
	if err != nil {
		return nil, err
	}

	current, err := a.bookings.GetBooking(ctx, a.token, id)
	if err != nil {
		return nil, err
	}
	if err := bookings.CheckCancel(*current); err != nil {
		return nil, err
	}
	return a.bookings.CancelBooking(ctx, a.token, id, *reason)
}

func rescheduleBooking(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("reschedule-booking")
	start := fs.String("start", "", "new start, RFC 3339")
	end := fs.String("end", "", "new end, RFC 3339")
	id, err := parseID(fs, args, "booking id")
	if err != nil {
		return nil, err
	}

	startAt, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --start %q", errUsage, *start)
	}
	endAt, err := time.Parse(time.RFC3339, *end)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --end %q", errUsage, *end)
	}
	if !endAt.After(startAt) {
		return nil, bookings.ErrInvalidSchedule
	}

	current, err := a.bookings.GetBooking(ctx, a.token, id)
	if err != nil {
		return nil, err
	}
	if err := bookings.CheckReschedule(*current); err != nil {
		return nil, err
	}
	return a.bookings.RescheduleBooking(ctx, a.token, id, startAt, endAt)
}

func bookingStatus(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("booking-status")
	status := fs.String("status", "", "new status")
	id, err := parseID(fs, args, "booking id")
	if err != nil {
		return nil, err
	}
	if *status == "" {
		return nil, fmt.Errorf("%w: booking-status needs --status", errUsage)
	}
	return a.bookings.UpdateBookingStatus(ctx, a.token, id, model.BookingStatus(*status))
}

func getMe(ctx context.Context, a *app, args []string) (any, error) {
	if err := parseFlags(newFlags("me"), args); err != nil {
		return nil, err
	}
	return a.profile.GetProfile(ctx, a.token)
}

func updateMe(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("update-me")
	username := fs.String("username", "", "username")
	fullName := fs.String("full-name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	bio := fs.String("bio", "", "bio")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	if *username == "" {
		return nil, fmt.Errorf("%w: update-me needs --username", errUsage)
	}
	return a.profile.UpdateProfile(ctx, a.token, model.ProfileUpdate{
		Username: *username,
		FullName: *fullName,
		Phone:    *phone,
		Bio:      *bio,
	})
}

func uploadPicture(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlags("upload-picture")
	contentType := fs.String("type", "", "image MIME type")
	path, err := parseWithArg(fs, args)
	if err != nil {
		return nil, err
	}
	picture := fileArg(path, *contentType)
	if picture == nil {
		return nil, fmt.Errorf("%w: upload-picture needs a file path", errUsage)
	}
	return a.profile.UploadProfilePicture(ctx, a.token, *picture)
}
