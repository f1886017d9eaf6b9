package weather

import (
	"fmt"
	"strings"
)

// Language selects the localization of condition text in responses.
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

// ParseLanguage converts a query-string value into a Language.
// Unrecognized values are a caller error, not a fallback case.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "en":
		return LangEN, nil
	case "zh":
		return LangZH, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
}

// Condition describes one observed or forecast weather state.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// ForecastDay is a single day of the 3-day forecast.
type ForecastDay struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	HighTemp  float64   `json:"high_temp"`
	LowTemp   float64   `json:"low_temp"`
	Condition Condition `json:"condition"`
}

// Snapshot is the canonical weather view every source is normalized into.
// Forecast always holds exactly three entries, today first.
type Snapshot struct {
	City          string        `json:"city"`
	Temperature   float64       `json:"temperature"`
	FeelsLike     float64       `json:"feels_like"`
	Humidity      int           `json:"humidity"`
	Pressure      int           `json:"pressure"`
	WindSpeed     float64       `json:"wind_speed"`
	WindDirection int           `json:"wind_direction"`
	Condition     Condition     `json:"condition"`
	Forecast      []ForecastDay `json:"forecast"`
	Timestamp     string        `json:"timestamp"`
}

// CacheKey builds the identity a snapshot is cached under. City casing is
// irrelevant; language is part of the key because localized condition text
// differs between languages.
func CacheKey(city string, lang Language) string {
	return strings.ToLower(city) + ":" + string(lang)
}
