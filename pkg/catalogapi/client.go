package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shoplite/shoplite-backend/pkg/config"
	"github.com/shoplite/shoplite-backend/pkg/errors"
)

// maxResponseSize caps the upstream response body read.
const maxResponseSize = 8 * 1024 * 1024

// Product is a catalog entry as served by the upstream demo API.
type Product struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage float64         `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              int             `json:"stock"`
	Brand              string          `json:"brand"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images"`
}

// ProductPage is the upstream listing envelope.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Client talks to the external read-only catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a catalog client from configuration.
func New(cfg config.CatalogConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid catalog base url: %w", err)
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}, nil
}

// ListProducts fetches one page of the full catalog.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*ProductPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))
	return c.fetchPage(ctx, "/products?"+query.Encode())
}

// SearchProducts runs a full-text search against the upstream catalog.
// The upstream search endpoint does not paginate.
func (c *Client) SearchProducts(ctx context.Context, q string) (*ProductPage, error) {
	query := url.Values{}
	query.Set("q", q)
	return c.fetchPage(ctx, "/products/search?"+query.Encode())
}

// GetProduct fetches a single product by its upstream identifier.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "building catalog request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "catalog service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("product %d not found", id))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeDependency, fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	var product Product
	if err := decodeBody(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) fetchPage(ctx context.Context, pathAndQuery string) (*ProductPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "building catalog request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "catalog service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeDependency, fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	var page ProductPage
	if err := decodeBody(resp, &page); err != nil {
		return nil, err
	}
	if page.Products == nil {
		page.Products = []Product{}
	}
	return &page, nil
}

func decodeBody(resp *http.Response, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, resp.Body, maxResponseSize))
	if err := decoder.Decode(out); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "decoding catalog response")
	}
	return nil
}
