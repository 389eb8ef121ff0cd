package adapter

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultTimeout = 30 * time.Second

// userAgents is a pool of browser identities rotated per request to reduce
// the chance of being blocked.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:120.0) Gecko/20100101 Firefox/120.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// getDocument fetches rawURL with randomized browser headers and parses the
// body as HTML. All failures come back classified.
func getDocument(ctx context.Context, client *http.Client, rawURL string) (*goquery.Document, error) {
	reqURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, &PermanentError{Err: fmt.Errorf("malformed URL %q: %w", rawURL, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &PermanentError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	res, err := client.Do(req)
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone:
		return nil, &PermanentError{Err: fmt.Errorf("page not available: [%d] %s", res.StatusCode, res.Status)}
	default:
		// 429, 5xx and friends: treat as throttling/outage and retry.
		return nil, &TransientError{Err: fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)}
	}

	// Some retailers redirect blocked clients to a captcha page.
	if strings.Contains(strings.ToLower(res.Request.URL.String()), "captcha") {
		return nil, &TransientError{Err: fmt.Errorf("redirected to captcha page")}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("data cannot be parsed as HTML: %w", err)}
	}

	if title := strings.ToLower(doc.Find("title").First().Text()); strings.Contains(title, "captcha") ||
		strings.Contains(title, "robot check") {
		return nil, &TransientError{Err: fmt.Errorf("captcha interstitial served")}
	}

	return doc, nil
}

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// parsePrice extracts a numeric price from raw text like "₹12,345.67".
func parsePrice(text string) (float64, error) {
	cleaned := nonPriceChars.ReplaceAllString(strings.TrimSpace(text), "")
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in price text %q", text)
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", text, err)
	}

	return price, nil
}
