// Package woocommerce is the product side of the store: it creates product
// records through the WooCommerce REST API and exposes the category list
// producers need to label their tasks.
package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/config"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// categoriesPerPage is the page size used when listing categories.
const categoriesPerPage = 100

// Client talks to the WooCommerce REST API (wc/v3). It satisfies the
// upload queue's RecordCreator capability.
type Client struct {
	apiBase        string
	consumerKey    string
	consumerSecret string
	client         *http.Client
	logger         *slog.Logger
}

// NewClient creates a product API client from the store configuration.
func NewClient(cfg config.StoreConfig, logger *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiBase:        strings.TrimRight(cfg.URL, "/") + "/wp-json/wc/v3",
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		client:         &http.Client{Timeout: timeout},
		logger:         logger.With("component", "woocommerce"),
	}
}

// Create creates a product record. The payload's image order is preserved
// as-is; the store treats the first image as the featured one.
func (c *Client) Create(ctx context.Context, payload domain.ProductPayload) (domain.CreatedProduct, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.CreatedProduct{}, fmt.Errorf("failed to encode product payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/products", bytes.NewReader(body))
	if err != nil {
		return domain.CreatedProduct{}, fmt.Errorf("failed to build product request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.CreatedProduct{}, fmt.Errorf("product creation request failed: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("product creation rejected",
			"name", payload.Name,
			"status", resp.StatusCode,
			"body", string(detail))
		return domain.CreatedProduct{}, fmt.Errorf("product creation failed: HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var product domain.CreatedProduct
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return domain.CreatedProduct{}, fmt.Errorf("failed to decode product response: %w", err)
	}

	c.logger.Debug("product created",
		"name", payload.Name,
		"product_id", product.ID)

	return product, nil
}

// ListCategories retrieves all product categories, paging through the
// category endpoint until a short page signals the end.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	for page := 1; ; page++ {
		batch, err := c.listCategoryPage(ctx, page)
		if err != nil {
			return nil, err
		}

		categories = append(categories, batch...)
		if len(batch) < categoriesPerPage {
			return categories, nil
		}
	}
}

func (c *Client) listCategoryPage(ctx context.Context, page int) ([]domain.Category, error) {
	query := url.Values{
		"per_page":   {strconv.Itoa(categoriesPerPage)},
		"page":       {strconv.Itoa(page)},
		"hide_empty": {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiBase+"/products/categories?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build category request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("category request failed: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("category listing failed: HTTP %d", resp.StatusCode)
	}

	var batch []domain.Category
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode category response: %w", err)
	}
	return batch, nil
}

// Ping verifies connectivity and credentials with a minimal product query.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/products?per_page=1", nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("store is unreachable: %w", err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store rejected credentials: HTTP %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn("failed to close response body", "error", err)
	}
}
