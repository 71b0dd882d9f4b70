package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ware71/CIAGA-sub002/pkg/common/httpclient"
	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
)

// Client reverse-geocodes coordinates to a city/country pair. Lookups are
// best effort: every failure degrades to empty strings and never blocks a
// resolution.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
	ttl     time.Duration
}

func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpclient.New(timeout),
		cache:   cache,
		ttl:     ttl,
	}
}

type reverseResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Country      string `json:"country"`
	} `json:"address"`
}

type cachedPlace struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, string) {
	// Keyed on rounded coordinates so nearby lookups share an entry.
	key := fmt.Sprintf("geocode:%.3f:%.3f", lat, lng)

	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, key).Result(); err == nil {
			var place cachedPlace
			if json.Unmarshal([]byte(raw), &place) == nil {
				return place.City, place.Country
			}
		}
	}

	city, country := c.lookup(ctx, lat, lng)

	if c.cache != nil && (city != "" || country != "") {
		if raw, err := json.Marshal(cachedPlace{City: city, Country: country}); err == nil {
			_ = c.cache.Set(ctx, key, raw, c.ttl).Err()
		}
	}
	return city, country
}

func (c *Client) lookup(ctx context.Context, lat, lng float64) (string, string) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=jsonv2", c.baseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", ""
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log.WithError(err).Debug("reverse geocode failed")
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", ""
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", ""
	}

	city := decoded.Address.City
	if city == "" {
		city = decoded.Address.Town
	}
	if city == "" {
		city = decoded.Address.Village
	}
	if city == "" {
		city = decoded.Address.Municipality
	}
	return city, decoded.Address.Country
}
