package models_test

import (
	"testing"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetailer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    models.Retailer
		wantErr bool
	}{
		{name: "amazon", input: "amazon", want: models.RetailerAmazon},
		{name: "flipkart", input: "flipkart", want: models.RetailerFlipkart},
		{name: "mixed case with spaces", input: "  Amazon ", want: models.RetailerAmazon},
		{name: "unknown store", input: "ebay", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := models.ParseRetailer(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectRetailer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    models.Retailer
		wantErr bool
	}{
		{name: "amazon.in product page", url: "https://www.amazon.in/dp/B0TEST", want: models.RetailerAmazon},
		{name: "amzn short link", url: "https://amzn.in/d/abc123", want: models.RetailerAmazon},
		{name: "flipkart product page", url: "https://www.flipkart.com/p/itm-test", want: models.RetailerFlipkart},
		{name: "unknown store", url: "https://www.ebay.com/itm/1234", wantErr: true},
		{name: "empty url", url: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := models.DetectRetailer(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrackedProduct_Helpers(t *testing.T) {
	t.Parallel()

	product := models.TrackedProduct{URL: "https://www.amazon.in/dp/B0TEST"}
	assert.False(t, product.HasTarget())
	assert.Equal(t, product.URL, product.DisplayName())

	product.Title = "Test Headphones"
	product.TargetPrice = 28000
	assert.True(t, product.HasTarget())
	assert.Equal(t, "Test Headphones", product.DisplayName())
}
