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

// Flipkart extracts price and coupon state from a Flipkart product page.
type Flipkart struct {
	log    *slog.Logger
	client *http.Client
}

// NewFlipkart creates a Flipkart adapter with a request timeout applied.
func NewFlipkart(log *slog.Logger) *Flipkart {
	return &Flipkart{
		log:    log,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch implements the Adapter interface for Flipkart product pages.
func (f *Flipkart) Fetch(ctx context.Context, url string) (*models.FetchResult, error) {
	doc, err := getDocument(ctx, f.client, url)
	if err != nil {
		return nil, err
	}

	// Flipkart rotates its class names between UI revisions; try the known
	// variants in order.
	var priceText string
	for _, sel := range []string{"div.Nx9bqj", "div._30jeq3._16Jk6d", "div._30jeq3", "div._1vC4OE._3qQ9m1"} {
		if priceText = strings.TrimSpace(doc.Find(sel).First().Text()); priceText != "" {
			break
		}
	}
	if priceText == "" {
		return nil, &TransientError{Err: fmt.Errorf("price element not found on page")}
	}

	price, err := parsePrice(priceText)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	result := &models.FetchResult{
		Price:   price,
		Title:   flipkartTitle(doc),
		InStock: flipkartInStock(doc),
	}
	result.CouponPresent, result.CouponText = flipkartOffer(doc)

	f.log.DebugContext(ctx, "parsed flipkart product page",
		"url", url,
		"price", result.Price,
		"coupon", result.CouponPresent,
		"in_stock", result.InStock,
	)

	return result, nil
}

func flipkartTitle(doc *goquery.Document) string {
	for _, sel := range []string{"span.VU-ZEz", "span.B_NuCI", "h1.yhB1nd"} {
		if title := strings.TrimSpace(doc.Find(sel).First().Text()); title != "" {
			return title
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if lower := strings.ToLower(title); lower == "flipkart" || lower == "online shopping" {
		return ""
	}
	return title
}

// flipkartOffer treats bank/special offer badges as the coupon signal.
func flipkartOffer(doc *goquery.Document) (bool, string) {
	var text string
	doc.Find("li._16eBzU, div._3Ay6Sb, span._3Ay6Sb").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Text())
		lower := strings.ToLower(t)
		if strings.Contains(lower, "off") || strings.Contains(lower, "coupon") || strings.Contains(lower, "offer") {
			text = t
			return false
		}
		return true
	})

	return text != "", text
}

func flipkartInStock(doc *goquery.Document) bool {
	notify := strings.ToLower(strings.TrimSpace(doc.Find("div._16FRp0").First().Text()))
	return !strings.Contains(notify, "sold out") && !strings.Contains(notify, "notify me")
}
