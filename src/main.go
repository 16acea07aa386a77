package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/parlakisik/pawmarket/internal/bookings"
	"github.com/parlakisik/pawmarket/internal/breeders"
	"github.com/parlakisik/pawmarket/internal/config"
	"github.com/parlakisik/pawmarket/internal/httpclient"
	"github.com/parlakisik/pawmarket/internal/marketplace"
	"github.com/parlakisik/pawmarket/internal/profile"
)

const genericFailure = "Something went wrong. Please try again."

var (
	ErrMissingToken = errors.New("no session token: pass --token or set PAW_TOKEN")
	errUsage        = errors.New("usage")
)

// app carries the resource clients and the caller's token into commands
type app struct {
	token       string
	marketplace *marketplace.Client
	breeders    *breeders.Client
	bookings    *bookings.Client
	profile     *profile.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("pawctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "YAML config file (defaults to PAW_CONFIG)")
	token := global.String("token", "", "session token (defaults to PAW_TOKEN)")
	verbose := global.Bool("verbose", false, "log requests at debug level")
	global.Usage = func() { printUsage(stderr) }

	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		printUsage(stderr)
		return 2
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	setupLogging(stderr, cfg, *verbose)

	if *token != "" {
		cfg.Token = *token
	}
	if strings.TrimSpace(cfg.Token) == "" {
		fmt.Fprintln(stderr, ErrMissingToken)
		return 1
	}

	hc := httpclient.NewClient(cfg.APIBaseURL, cfg.Timeout, httpclient.WithUserAgent(cfg.UserAgent))
	a := &app{
		token:       cfg.Token,
		marketplace: marketplace.New(hc),
		breeders:    breeders.New(hc),
		bookings:    bookings.New(hc),
		profile:     profile.New(hc),
	}

	slog.Debug("running command", "command", name, "api", hc.BaseURL(), "env", cfg.Environment)

	result, err := cmd.run(ctx, a, global.Args()[1:])
	if err != nil {
		slog.Error("command failed", "command", name, "error", err)
		fmt.Fprintln(stderr, userMessage(err))
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func setupLogging(w io.Writer, cfg *config.Config, verbose bool) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose || cfg.Debug() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// userMessage is what the end user sees for err. Backend and validation
// messages are shown as-is; anything else gets the generic notice.
func userMessage(err error) string {
	var apiErr *httpclient.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, errUsage),
		errors.Is(err, bookings.ErrInvalidSchedule),
		errors.Is(err, bookings.ErrNotCancelable),
		errors.Is(err, bookings.ErrNotReschedulable),
		errors.Is(err, profile.ErrNoPicture):
		return err.Error()
	default:
		return genericFailure
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: pawctl [--config file] [--token T] [--verbose] <command> [flags] [id]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %s\n", name, commands[name].summary)
	}
}
