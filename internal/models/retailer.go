package models

import (
	"fmt"
	"strings"
)

// Retailer identifies which adapter handles a product's page.
type Retailer string

const (
	RetailerAmazon   Retailer = "amazon"
	RetailerFlipkart Retailer = "flipkart"
)

// ParseRetailer converts a stored string back into a Retailer.
func ParseRetailer(s string) (Retailer, error) {
	switch Retailer(strings.ToLower(strings.TrimSpace(s))) {
	case RetailerAmazon:
		return RetailerAmazon, nil
	case RetailerFlipkart:
		return RetailerFlipkart, nil
	default:
		return "", fmt.Errorf("unknown retailer %q", s)
	}
}

// DetectRetailer guesses the retailer from a product URL.
// Returns an error when no known retailer matches.
func DetectRetailer(rawURL string) (Retailer, error) {
	url := strings.ToLower(strings.TrimSpace(rawURL))
	if url == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.Contains(url, "amazon.") || strings.Contains(url, "amzn.") {
		return RetailerAmazon, nil
	}
	if strings.Contains(url, "flipkart.") || strings.Contains(url, "/fk/") {
		return RetailerFlipkart, nil
	}

	return "", fmt.Errorf("could not detect retailer for URL %q", rawURL)
}
