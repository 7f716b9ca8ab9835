package bref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval keeps us under Baseball-Reference's crawl limit
	MinRequestInterval = 3 * time.Second
)

// ErrNotFound is returned when the page does not exist (e.g. a future season).
var ErrNotFound = errors.New("page not found")

// PageFetcher retrieves the HTML for a URL.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// rateLimiter spaces out requests by a minimum interval.
type rateLimiter struct {
	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lastRequest.IsZero() {
		elapsed := time.Since(r.lastRequest)
		if elapsed < r.interval {
			waitTime := r.interval - elapsed
			log.Printf("[bref] rate limiting: waiting %v before next request", waitTime)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	r.lastRequest = time.Now()
	return nil
}

// HTTPFetcher fetches pages with a plain HTTP client.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rateLimiter
}

// NewHTTPFetcher creates a fetcher that waits at least interval between requests.
func NewHTTPFetcher(interval time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: &rateLimiter{interval: interval},
	}
}

// FetchPage performs a rate-limited GET and returns the body.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if err := f.limiter.wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	log.Printf("[bref] GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(body), nil
}

// BrowserFetcher renders pages in headless Chrome for when plain HTTP
// requests get blocked.
type BrowserFetcher struct {
	limiter *rateLimiter

	// Chromedp context for headless browser
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewBrowserFetcher starts a headless Chrome allocator.
func NewBrowserFetcher(interval time.Duration) *BrowserFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserFetcher{
		limiter:  &rateLimiter{interval: interval},
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Close releases resources
func (f *BrowserFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

// FetchPage navigates to url and returns the rendered HTML.
func (f *BrowserFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if err := f.limiter.wait(ctx); err != nil {
		return "", err
	}

	browserCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	// Tie the browser tab to the caller's deadline as well
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	log.Printf("[bref] browser GET %s", url)

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}

	return htmlContent, nil
}
