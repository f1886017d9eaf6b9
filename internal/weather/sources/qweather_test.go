package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yuchenw/weather-mcp/internal/weather"
)

const testToken = "test-token"

func currentJSON() string {
	return `{
		"code": "200",
		"now": {
			"temp": "28.3", "feelsLike": "30.1", "humidity": "65",
			"pressure": "1009", "windSpeed": "4.1", "wind360": "225",
			"text": "多云", "icon": "101", "obsTime": "2026-08-29T15:00+08:00"
		}
	}`
}

func forecastJSON() string {
	day := `{"fxDate": "2026-08-%02d", "tempMax": "3%d", "tempMin": "2%d", "textDay": "晴", "textNight": "多云", "iconDay": "100"}`
	return fmt.Sprintf(`{"code": "200", "daily": [%s, %s, %s]}`,
		fmt.Sprintf(day, 29, 0, 2), fmt.Sprintf(day, 30, 1, 3), fmt.Sprintf(day, 31, 2, 4))
}

func newTestServer(t *testing.T, wantLocation string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
			t.Errorf("Authorization header = %q, want bearer token", got)
		}
		if got := r.URL.Query().Get("location"); got != wantLocation {
			t.Errorf("location query = %q, want %q", got, wantLocation)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/weather/now":
			fmt.Fprint(w, currentJSON())
		case "/weather/3d":
			fmt.Fprint(w, forecastJSON())
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchNormalizesPayloads(t *testing.T) {
	srv := newTestServer(t, "101020100")
	defer srv.Close()

	src := NewQWeatherSource(srv.Client(), testToken, srv.URL, "101010100")

	snap, err := src.Fetch(context.Background(), "shanghai", weather.LangEN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.City != "上海" {
		t.Fatalf("city = %q, want reverse-mapped 上海", snap.City)
	}
	if snap.Temperature != 28.3 || snap.Humidity != 65 {
		t.Fatalf("observation = %+v", snap)
	}
	if len(snap.Forecast) != 3 {
		t.Fatalf("forecast length = %d, want 3", len(snap.Forecast))
	}
	if snap.Forecast[0].Date != "2026-08-29" {
		t.Fatalf("first forecast date = %q", snap.Forecast[0].Date)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewQWeatherSource(srv.Client(), testToken, srv.URL, "101010100")

	_, err := src.Fetch(context.Background(), "beijing", weather.LangEN)
	var srcErr *weather.SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
}

func TestFetchProviderErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code": "402", "message": "quota exceeded"}`)
	}))
	defer srv.Close()

	src := NewQWeatherSource(srv.Client(), testToken, srv.URL, "101010100")

	_, err := src.Fetch(context.Background(), "beijing", weather.LangEN)
	var srcErr *weather.SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	client := &http.Client{Timeout: 50 * time.Millisecond}
	src := NewQWeatherSource(client, testToken, "http://127.0.0.1:1", "101010100")

	_, err := src.Fetch(context.Background(), "beijing", weather.LangEN)
	var srcErr *weather.SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
}

func TestResolveKnownCities(t *testing.T) {
	src := NewQWeatherSource(http.DefaultClient, testToken, "http://example.invalid", "101010100")

	tests := []struct {
		city string
		want string
	}{
		{"beijing", "101010100"},
		{"Beijing", "101010100"},
		{"北京", "101010100"},
		{"SHANGHAI", "101020100"},
		{"上海", "101020100"},
		{"hangzhou", "101210101"},
	}
	for _, tt := range tests {
		if id, _ := src.Resolve(tt.city); id != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.city, id, tt.want)
		}
	}
}

func TestResolveUnknownCityUsesDefault(t *testing.T) {
	src := NewQWeatherSource(http.DefaultClient, testToken, "http://example.invalid", "101010100")

	id, repaired := src.Resolve("atlantis")
	if id != "101010100" {
		t.Fatalf("id = %s, want default location", id)
	}
	if repaired != "atlantis" {
		t.Fatalf("repaired = %q, want input unchanged", repaired)
	}
}

func TestResolveRepairsMojibake(t *testing.T) {
	src := NewQWeatherSource(http.DefaultClient, testToken, "http://example.invalid", "101010100")

	id, repaired := src.Resolve("åäº¬")
	if repaired != "北京" {
		t.Fatalf("repaired = %q, want 北京", repaired)
	}
	if id != "101010100" {
		t.Fatalf("id = %s, want 101010100", id)
	}
}

func TestUsable(t *testing.T) {
	if NewQWeatherSource(http.DefaultClient, "", "http://example.invalid", "101010100").Usable() {
		t.Fatal("source with empty token must report unusable")
	}
	if !NewQWeatherSource(http.DefaultClient, testToken, "http://example.invalid", "101010100").Usable() {
		t.Fatal("source with token must report usable")
	}
}
