// Package wordpress implements the media-library side of the store: it
// uploads local image files through the WordPress REST API so products can
// reference them by media ID.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/config"
	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// MediaClient uploads images to the WordPress media library. It satisfies
// the upload queue's AssetUploader capability; the request timeout on the
// embedded HTTP client is the only deadline the pipeline relies on.
type MediaClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// mediaResponse is the subset of the media endpoint's response we need.
type mediaResponse struct {
	ID        int64  `json:"id"`
	SourceURL string `json:"source_url"`
}

// NewMediaClient creates a media client from the store configuration. The
// password is a WordPress application password, not the account password.
func NewMediaClient(cfg config.StoreConfig, logger *slog.Logger) *MediaClient {
	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MediaClient{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		username: cfg.Username,
		password: cfg.AppPassword,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "wordpress_media"),
	}
}

// Upload pushes one image file to the media library at full quality and
// returns its media ID and public URL.
func (c *MediaClient) Upload(ctx context.Context, path string) (domain.UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UploadedImage{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	filename := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/wp-json/wp/v2/media", bytes.NewReader(data))
	if err != nil {
		return domain.UploadedImage{}, fmt.Errorf("failed to build media request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.UploadedImage{}, fmt.Errorf("media upload request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("media upload rejected",
			"path", path,
			"status", resp.StatusCode,
			"body", string(body))
		return domain.UploadedImage{}, fmt.Errorf("media upload failed: HTTP %d", resp.StatusCode)
	}

	var media mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return domain.UploadedImage{}, fmt.Errorf("failed to decode media response: %w", err)
	}

	c.logger.Debug("image uploaded",
		"path", path,
		"media_id", media.ID,
		"url", media.SourceURL)

	return domain.UploadedImage{ID: media.ID, URL: media.SourceURL}, nil
}
