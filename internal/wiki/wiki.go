package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"wiki-chat/internal/config"
	"wiki-chat/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrSourceFetch covers every way the article can fail to arrive intact.
var ErrSourceFetch = errors.New("fetching article failed")

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(cfg *config.WikiConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchSummary retrieves the summary of title and returns its plain-text
// extract. A missing or empty extract is an error.
func (c *Client) FetchSummary(ctx context.Context, title string) (string, error) {
	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debug().Str("url", endpoint).Msg("Fetching article summary")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrSourceFetch, resp.StatusCode, string(body))
	}

	var summary models.ArticleSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return "", fmt.Errorf("%w: decoding summary: %w", ErrSourceFetch, err)
	}
	if summary.Extract == nil || strings.TrimSpace(*summary.Extract) == "" {
		return "", fmt.Errorf("%w: summary of %q has no extract", ErrSourceFetch, title)
	}

	log.Info().Str("title", summary.Title).Int("chars", len(*summary.Extract)).Msg("Fetched article")
	return *summary.Extract, nil
}
