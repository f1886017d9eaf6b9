package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuchenw/weather-mcp/internal/encoding"
	"github.com/yuchenw/weather-mcp/internal/weather"
)

// conditionTranslations localizes the fixed set of condition phrases the
// synthetic source emits. Keys are lowercased English phrases.
var conditionTranslations = map[string]map[weather.Language]string{
	"clear":        {weather.LangZH: "晴朗", weather.LangEN: "Clear"},
	"clear sky":    {weather.LangZH: "晴朗天空", weather.LangEN: "clear sky"},
	"clouds":       {weather.LangZH: "多云", weather.LangEN: "Clouds"},
	"few clouds":   {weather.LangZH: "少云", weather.LangEN: "few clouds"},
	"rain":         {weather.LangZH: "下雨", weather.LangEN: "Rain"},
	"light rain":   {weather.LangZH: "小雨", weather.LangEN: "light rain"},
	"snow":         {weather.LangZH: "下雪", weather.LangEN: "Snow"},
	"mist":         {weather.LangZH: "薄雾", weather.LangEN: "Mist"},
	"thunderstorm": {weather.LangZH: "雷暴", weather.LangEN: "Thunderstorm"},
	"drizzle":      {weather.LangZH: "毛毛雨", weather.LangEN: "Drizzle"},
}

// Translate localizes a condition phrase. Unmapped phrases pass through
// unchanged; translation gaps are never an error.
func Translate(phrase string, lang weather.Language) string {
	if byLang, ok := conditionTranslations[strings.ToLower(phrase)]; ok {
		if localized, ok := byLang[lang]; ok {
			return localized
		}
	}
	return phrase
}

// SyntheticSource produces a structurally valid snapshot with no network
// dependency. It is the unconditional fallback: there is nothing beneath it.
type SyntheticSource struct{}

func NewSyntheticSource() *SyntheticSource { return &SyntheticSource{} }

func (s *SyntheticSource) Name() string { return "synthetic" }

// Generate builds a plausible snapshot for the city: fixed current
// conditions and a 3-day forecast anchored at today.
func (s *SyntheticSource) Generate(city string, lang weather.Language) (weather.Snapshot, error) {
	repaired := encoding.Repair(city)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	mains := [3]string{"Clear", "Clouds", "Rain"}
	descriptions := [3]string{"clear sky", "few clouds", "light rain"}

	forecast := make([]weather.ForecastDay, 0, 3)
	for i := 0; i < 3; i++ {
		forecast = append(forecast, weather.ForecastDay{
			Date:     today.AddDate(0, 0, i).Format("2006-01-02"),
			HighTemp: float64(26 + i),
			LowTemp:  float64(18 + i),
			Condition: weather.Condition{
				Main:        Translate(mains[i], lang),
				Description: Translate(descriptions[i], lang),
			},
		})
	}

	snap := weather.Snapshot{
		City:          repaired,
		Temperature:   25.5,
		FeelsLike:     26.0,
		Humidity:      60,
		Pressure:      1013,
		WindSpeed:     5.2,
		WindDirection: 180,
		Condition: weather.Condition{
			Main:        Translate("Clear", lang),
			Description: Translate("clear sky", lang),
			Icon:        "01d",
		},
		Forecast:  forecast,
		Timestamp: now.Format(time.RFC3339),
	}

	if len(snap.Forecast) != 3 {
		// Unreachable in normal operation; a violation here is fatal
		// because no further fallback exists.
		return weather.Snapshot{}, &weather.FatalError{
			Msg: fmt.Sprintf("synthetic forecast has %d entries", len(snap.Forecast)),
		}
	}
	return snap, nil
}
