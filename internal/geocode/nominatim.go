package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// NominatimClient performs free-text address lookups against a Nominatim
// endpoint. One request per lookup, best match only, no retries.
type NominatimClient struct {
	baseURL     string
	userAgent   string
	country     string
	countryCode string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewNominatimClient builds a client. The userAgent is required by the
// public Nominatim usage policy.
func NewNominatimClient(baseURL, userAgent, country, countryCode string, timeout time.Duration, logger *zap.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:     baseURL,
		userAgent:   userAgent,
		country:     country,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Lookup geocodes "address, city, country". The second return value is
// false on no match; an error means the request itself failed (transport
// or non-OK status). Empty or malformed responses count as no match.
func (c *NominatimClient) Lookup(ctx context.Context, address, city string) (Coordinate, bool, error) {
	query := address
	if city != "" {
		query = fmt.Sprintf("%s, %s", address, city)
	}
	query = fmt.Sprintf("%s, %s", query, c.country)

	params := url.Values{
		"q":            {query},
		"format":       {"json"},
		"limit":        {"1"},
		"countrycodes": {c.countryCode},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("geocode: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("geocode: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Coordinate{}, false, fmt.Errorf("geocode: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.logger.Debug("malformed geocode response", zap.Error(err))
		return Coordinate{}, false, nil
	}
	if len(places) == 0 {
		return Coordinate{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		c.logger.Debug("unparseable coordinates in geocode response",
			zap.String("lat", places[0].Lat), zap.String("lon", places[0].Lon))
		return Coordinate{}, false, nil
	}

	return Coordinate{Lat: lat, Lon: lon}, true, nil
}

// place is the slice of a Nominatim search result we care about.
type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}
