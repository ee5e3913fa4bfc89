package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/campusfeed/internal/event"
)

// Fetcher retrieves events from catalog sources.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with the given HTTP client timeout.
// Remote fetches share one rate limiter so a refresh cycle does not
// hammer campus servers.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// Fetch retrieves events from a source. Returns events and any error.
// Does NOT store events - caller decides what to do with them.
//
// The function respects context cancellation and will return early
// if the context is cancelled.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]event.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	body, err := f.read(ctx, src)
	if err != nil {
		return nil, err
	}

	switch src.Type {
	case SourceJSON:
		return ParseJSON(body, src)
	case SourceRSS:
		return ParseRSS(body, src)
	case SourceICS:
		return ParseICS(body, src)
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

// read loads the raw payload, from the network or the local filesystem.
func (f *Fetcher) read(ctx context.Context, src Source) ([]byte, error) {
	if strings.HasPrefix(src.URL, "http://") || strings.HasPrefix(src.URL, "https://") {
		return f.readHTTP(ctx, src.URL)
	}

	body, err := os.ReadFile(src.URL)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return body, nil
}

func (f *Fetcher) readHTTP(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set a user agent to be a good citizen
	req.Header.Set("User-Agent", "campusfeed/1.0 (https://github.com/abelbrown/campusfeed)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
// Uses rune-aware slicing to avoid breaking UTF-8 characters.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
