package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/infra/metrics"
)

var _ adapter.ProductDataAdapter = (*ProductClient)(nil)

// productQuery fetches the three fields the enrichment join needs in one
// round trip. Shopify returns null for a deleted product or image.
const productQuery = `query product($id: ID!, $variantId: ID!) {
  product(id: $id) {
    title
    featuredImage { url }
  }
  productVariant(id: $variantId) {
    price
  }
}`

// ProductClient implements adapter.ProductDataAdapter against the Shopify
// Admin GraphQL API.
type ProductClient struct {
	accessToken string
	apiVersion  string
	client      *http.Client
}

func NewProductClient(accessToken, apiVersion string) *ProductClient {
	if apiVersion == "" {
		apiVersion = "2023-07"
	}
	return &ProductClient{
		accessToken: accessToken,
		apiVersion:  apiVersion,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ProductClient) endpoint(shop string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.apiVersion)
}

// FetchProduct returns (nil, nil) when the product no longer exists upstream.
func (c *ProductClient) FetchProduct(ctx context.Context, shop, productID, variantID string) (*adapter.ProductData, error) {
	start := time.Now()

	payload := map[string]any{
		"query": productQuery,
		"variables": map[string]string{
			"id":        productID,
			"variantId": variantID,
		},
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(shop), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveProductFetch(int(time.Since(start).Milliseconds()), false)
		return nil, fmt.Errorf("product query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.ObserveProductFetch(int(time.Since(start).Milliseconds()), false)
		return nil, fmt.Errorf("product query: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			Product *struct {
				Title         string `json:"title"`
				FeaturedImage *struct {
					URL string `json:"url"`
				} `json:"featuredImage"`
			} `json:"product"`
			ProductVariant *struct {
				Price string `json:"price"`
			} `json:"productVariant"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.ObserveProductFetch(int(time.Since(start).Milliseconds()), false)
		return nil, fmt.Errorf("decode product query: %w", err)
	}
	if len(out.Errors) > 0 {
		metrics.ObserveProductFetch(int(time.Since(start).Milliseconds()), false)
		return nil, fmt.Errorf("product query: %s", out.Errors[0].Message)
	}
	metrics.ObserveProductFetch(int(time.Since(start).Milliseconds()), true)

	if out.Data.Product == nil {
		// Deleted upstream. Not an error: enrichment leaves the fields absent.
		metrics.IncProductFetchMiss()
		return nil, nil
	}

	data := &adapter.ProductData{Title: &out.Data.Product.Title}
	if img := out.Data.Product.FeaturedImage; img != nil {
		data.ImageURL = &img.URL
	}
	if v := out.Data.ProductVariant; v != nil {
		data.Price = &v.Price
	}
	return data, nil
}
