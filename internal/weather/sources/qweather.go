package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yuchenw/weather-mcp/internal/encoding"
	"github.com/yuchenw/weather-mcp/internal/schema"
	"github.com/yuchenw/weather-mcp/internal/weather"
)

// locationIDs resolves known city names and aliases (case-insensitive) to
// provider location ids.
var locationIDs = map[string]string{
	"北京":        "101010100",
	"beijing":   "101010100",
	"上海":        "101020100",
	"shanghai":  "101020100",
	"广州":        "101280101",
	"guangzhou": "101280101",
	"深圳":        "101280601",
	"shenzhen":  "101280601",
	"杭州":        "101210101",
	"hangzhou":  "101210101",
}

// QWeatherSource fetches current conditions and the 3-day forecast from the
// QWeather HTTP API using bearer-token auth.
type QWeatherSource struct {
	client          *http.Client
	token           string
	baseURL         string
	defaultLocation string
}

// NewQWeatherSource creates the primary adapter. The client is shared and
// carries the outbound timeout; token may be empty, in which case the
// adapter reports itself unusable and must not be routed to.
func NewQWeatherSource(client *http.Client, token, baseURL, defaultLocation string) *QWeatherSource {
	return &QWeatherSource{
		client:          client,
		token:           token,
		baseURL:         strings.TrimRight(baseURL, "/"),
		defaultLocation: defaultLocation,
	}
}

func (s *QWeatherSource) Name() string { return "qweather" }

// Usable reports whether the adapter has a credential to authenticate with.
func (s *QWeatherSource) Usable() bool { return s.token != "" }

// Resolve repairs the city string and maps it to a provider location id.
// Unknown cities resolve to the default location rather than failing; the
// service degrades gracefully instead of rejecting unmapped input.
func (s *QWeatherSource) Resolve(city string) (locationID, repaired string) {
	repaired = encoding.Repair(city)
	if repaired != city {
		log.Printf("INFO: repaired city name %q -> %q", city, repaired)
	}

	if id, ok := locationIDs[strings.ToLower(repaired)]; ok {
		return id, repaired
	}

	log.Printf("INFO: no location mapping for city %q; using default location %s", repaired, s.defaultLocation)
	return s.defaultLocation, repaired
}

// Fetch retrieves and normalizes a full snapshot: current observation and
// 3-day forecast, fetched concurrently under the caller's deadline.
func (s *QWeatherSource) Fetch(ctx context.Context, city string, _ weather.Language) (weather.Snapshot, error) {
	locationID, repaired := s.Resolve(city)

	var current, forecast schema.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.FetchCurrent(gctx, locationID)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = s.FetchForecast(gctx, locationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return weather.Snapshot{}, err
	}

	return schema.Normalize(current, forecast, locationID, repaired)
}

// FetchCurrent retrieves the raw current-weather payload for a location id.
func (s *QWeatherSource) FetchCurrent(ctx context.Context, locationID string) (schema.Document, error) {
	return s.get(ctx, "/weather/now", locationID, "now")
}

// FetchForecast retrieves the raw 3-day forecast payload for a location id.
func (s *QWeatherSource) FetchForecast(ctx context.Context, locationID string) (schema.Document, error) {
	return s.get(ctx, "/weather/3d", locationID, "daily")
}

// get issues one authenticated call and returns the decoded body. A
// transport failure, non-2xx status, or a provider error code without the
// expected payload block all yield a SourceError.
func (s *QWeatherSource) get(ctx context.Context, path, locationID, payloadKey string) (schema.Document, error) {
	values := url.Values{}
	values.Set("location", locationID)
	u := fmt.Sprintf("%s%s?%s", s.baseURL, path, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &weather.SourceError{Source: s.Name(), Msg: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &weather.SourceError{Source: s.Name(), Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &weather.SourceError{
			Source: s.Name(),
			Msg:    fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, path),
		}
	}

	var doc schema.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &weather.SourceError{Source: s.Name(), Msg: "decode response", Err: err}
	}

	// The provider reports errors in-band with a 2xx status. A code other
	// than "200" is still accepted when the payload block is present.
	if code, _ := doc["code"].(string); code != "200" {
		if _, ok := doc[payloadKey]; !ok {
			msg, _ := doc["message"].(string)
			return nil, &weather.SourceError{
				Source: s.Name(),
				Msg:    fmt.Sprintf("provider error code %s: %s", code, msg),
			}
		}
	}

	return doc, nil
}
