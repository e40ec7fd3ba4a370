// Package openfoodfacts looks up per-100g nutrition on the Open Food Facts
// public search API.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://world.openfoodfacts.org"
	DefaultUserAgent = "selforge/1.0 (personal habit tracker)"

	requestTimeout = 8 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
	pageSize       = 5
)

var (
	// ErrNotFound indicates no product with usable energy data matched.
	ErrNotFound = errors.New("openfoodfacts: not found")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("openfoodfacts: rate limited")
)

// Nutrition is the looked-up nutrition for a concrete quantity.
type Nutrition struct {
	Product  string
	Brand    string
	Calories int
	Protein  float64
	Sugar    float64
}

// Client queries the Open Food Facts search endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient returns a client. Empty arguments fall back to the defaults.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{},
	}
}

// Lookup searches for foodName and scales the first product with energy
// data to quantityGrams.
func (c *Client) Lookup(ctx context.Context, foodName string, quantityGrams float64) (Nutrition, error) {
	foodName = strings.TrimSpace(foodName)
	if foodName == "" || quantityGrams <= 0 {
		return Nutrition{}, ErrNotFound
	}

	products, err := c.Search(ctx, foodName)
	if err != nil {
		return Nutrition{}, err
	}

	scale := quantityGrams / 100
	for _, p := range products {
		kcal, ok := p.Kcal100g()
		if !ok || kcal <= 0 {
			continue
		}
		return Nutrition{
			Product:  p.ProductName,
			Brand:    p.Brand(),
			Calories: int(math.Round(kcal * scale)),
			Protein:  round1(p.Protein100g() * scale),
			Sugar:    round1(p.Sugar100g() * scale),
		}, nil
	}
	return Nutrition{}, ErrNotFound
}

// Search returns up to five products matching terms.
func (c *Client) Search(ctx context.Context, terms string) ([]Product, error) {
	q := url.Values{}
	q.Set("search_terms", terms)
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", fmt.Sprint(pageSize))

	body, err := c.get(ctx, "/cgi/search.pl?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openfoodfacts: parsing search: %w", err)
	}
	if len(resp.Products) == 0 {
		return nil, ErrNotFound
	}
	return resp.Products, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	//nolint:gosec // URL is built from configured base URL
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts: reading response: %w", err)
	}
	return body, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
