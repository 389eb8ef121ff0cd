package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashimkp/pricewatch/internal/models"
)

// Amazon extracts price and coupon state from an Amazon product page.
type Amazon struct {
	log    *slog.Logger
	client *http.Client
}

// NewAmazon creates an Amazon adapter with a request timeout applied.
func NewAmazon(log *slog.Logger) *Amazon {
	return &Amazon{
		log:    log,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch implements the Adapter interface for Amazon product pages.
func (a *Amazon) Fetch(ctx context.Context, url string) (*models.FetchResult, error) {
	doc, err := getDocument(ctx, a.client, url)
	if err != nil {
		return nil, err
	}

	priceText := strings.TrimSpace(doc.Find("span.a-price span.a-offscreen").First().Text())
	if priceText == "" {
		priceText = strings.TrimSpace(doc.Find("span.a-offscreen").First().Text())
	}
	if priceText == "" {
		// The price block is rendered inconsistently; a miss on one load
		// usually resolves on the next attempt.
		return nil, &TransientError{Err: fmt.Errorf("price element not found on page")}
	}

	price, err := parsePrice(priceText)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	result := &models.FetchResult{
		Price:   price,
		Title:   strings.TrimSpace(doc.Find("#productTitle").First().Text()),
		InStock: amazonInStock(doc),
	}
	result.CouponPresent, result.CouponText = amazonCoupon(doc)

	a.log.DebugContext(ctx, "parsed amazon product page",
		"url", url,
		"price", result.Price,
		"coupon", result.CouponPresent,
		"in_stock", result.InStock,
	)

	return result, nil
}

// amazonCoupon looks for the coupon badge variants Amazon renders.
func amazonCoupon(doc *goquery.Document) (bool, string) {
	for _, sel := range []string{"#snsCoupon", ".couponBadge", "span.sns-coupon-text", ".promoPriceBlockMessage"} {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return true, text
		}
	}

	var text string
	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Text())
		if strings.Contains(strings.ToLower(t), "coupon") && len(t) < 120 {
			text = t
			return false
		}
		return true
	})

	return text != "", text
}

func amazonInStock(doc *goquery.Document) bool {
	availability := strings.ToLower(strings.TrimSpace(doc.Find("#availability").First().Text()))
	if availability == "" {
		return true
	}
	return !strings.Contains(availability, "unavailable") && !strings.Contains(availability, "out of stock")
}
