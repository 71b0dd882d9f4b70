package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Ware71/CIAGA-sub002/pkg/common/httpclient"
	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
)

// Client searches the external golf-course catalog. The matcher and the
// tests fake this interface.
type Client interface {
	Search(ctx context.Context, query string) ([]Course, error)
}

type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.New(timeout),
	}
}

type searchResponse struct {
	Courses []json.RawMessage `json:"courses"`
}

func (c *HTTPClient) Search(ctx context.Context, query string) ([]Course, error) {
	endpoint := fmt.Sprintf("%s/v1/search?search_query=%s", c.baseURL, url.QueryEscape(query))

	var body []byte
	err := httpclient.Retry(ctx, 2, 250*time.Millisecond, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Key "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if httpclient.IsRetriable(err) {
				return err
			}
			return fmt.Errorf("catalog request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	courses := make([]Course, 0, len(decoded.Courses))
	for _, raw := range decoded.Courses {
		courses = append(courses, AdaptCourse(raw))
	}

	logger.Log.WithFields(map[string]interface{}{
		"query":   query,
		"results": len(courses),
	}).Debug("catalog search")

	return courses, nil
}
