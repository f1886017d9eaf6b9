// Package schema translates provider JSON into the canonical Snapshot. The
// provider renamed most of its fields across API generations, so every
// attribute is read through an ordered accessor list: new name first, legacy
// name second, typed default last. Only the top-level blocks and the three
// forecast entries are allowed to hard-fail.
package schema

import (
	"fmt"
	"strconv"

	"github.com/yuchenw/weather-mcp/internal/weather"
)

// Document is a decoded provider JSON object.
type Document = map[string]any

// field is the ordered list of JSON keys an attribute may live under,
// newest schema first.
type field []string

// Accessor tables for the observation ("now") block.
var (
	obsTemp      = field{"temp", "tmp"}
	obsFeelsLike = field{"feelsLike", "fl"}
	obsHumidity  = field{"humidity", "hum"}
	obsPressure  = field{"pressure", "pres"}
	obsWindSpeed = field{"windSpeed", "wind_spd"}
	obsWindDir   = field{"wind360", "wind_deg"}
	obsText      = field{"text", "cond_txt"}
	obsIcon      = field{"icon", "cond_code"}
	obsTime      = field{"obsTime", "update_time"}
)

// Accessor tables for one entry of the "daily" forecast list.
var (
	dayDate      = field{"fxDate", "date"}
	dayTempMax   = field{"tempMax", "tmp_max"}
	dayTempMin   = field{"tempMin", "tmp_min"}
	dayTextDay   = field{"textDay", "cond_txt_d"}
	dayTextNight = field{"textNight", "cond_txt_n"}
	dayIcon      = field{"iconDay", "cond_code_d"}
)

// forecastDays is the fixed length of the canonical forecast. Longer
// upstream lists are truncated; shorter ones are a parse failure.
const forecastDays = 3

// Normalize converts the raw now/forecast payloads for a location into a
// Snapshot. locationID drives the canonical display name; city is the
// caller-supplied fallback when the id is not recognized.
func Normalize(current, forecast Document, locationID, city string) (weather.Snapshot, error) {
	now, ok := current["now"].(map[string]any)
	if !ok {
		return weather.Snapshot{}, &weather.SchemaError{Field: "now", Msg: "missing observation block"}
	}

	daily, ok := forecast["daily"].([]any)
	if !ok {
		return weather.Snapshot{}, &weather.SchemaError{Field: "daily", Msg: "missing forecast block"}
	}
	if len(daily) < forecastDays {
		return weather.Snapshot{}, &weather.SchemaError{
			Field: "daily",
			Msg:   fmt.Sprintf("need %d forecast entries, got %d", forecastDays, len(daily)),
		}
	}

	snap := weather.Snapshot{City: CanonicalCityName(locationID, city)}

	var err error
	if snap.Temperature, err = obsTemp.float(now); err != nil {
		return weather.Snapshot{}, err
	}
	if snap.FeelsLike, err = obsFeelsLike.float(now); err != nil {
		return weather.Snapshot{}, err
	}
	if snap.Humidity, err = obsHumidity.integer(now); err != nil {
		return weather.Snapshot{}, err
	}
	if snap.Pressure, err = obsPressure.integer(now); err != nil {
		return weather.Snapshot{}, err
	}
	if snap.WindSpeed, err = obsWindSpeed.float(now); err != nil {
		return weather.Snapshot{}, err
	}
	if snap.WindDirection, err = obsWindDir.integer(now); err != nil {
		return weather.Snapshot{}, err
	}

	text := obsText.text(now)
	snap.Condition = weather.Condition{
		Main:        text,
		Description: text,
		Icon:        obsIcon.textDefault(now, ""),
	}
	snap.Timestamp = obsTime.textDefault(now, "")

	for _, raw := range daily[:forecastDays] {
		day, ok := raw.(map[string]any)
		if !ok {
			return weather.Snapshot{}, &weather.SchemaError{Field: "daily", Msg: "forecast entry is not an object"}
		}

		fd := weather.ForecastDay{Date: dayDate.textDefault(day, "")}
		if fd.HighTemp, err = dayTempMax.float(day); err != nil {
			return weather.Snapshot{}, err
		}
		if fd.LowTemp, err = dayTempMin.float(day); err != nil {
			return weather.Snapshot{}, err
		}

		dayText := dayTextDay.text(day)
		nightText := dayTextNight.text(day)
		fd.Condition = weather.Condition{
			Main:        dayText,
			Description: dayText + "转" + nightText,
			Icon:        dayIcon.textDefault(day, ""),
		}
		snap.Forecast = append(snap.Forecast, fd)
	}

	return snap, nil
}

// float probes the accessor list in order; an absent attribute defaults to
// zero, but a present value that cannot be coerced is a SchemaError.
func (f field) float(obj map[string]any) (float64, error) {
	for _, key := range f {
		v, ok := obj[key]
		if !ok {
			continue
		}
		n, err := coerceFloat(v)
		if err != nil {
			return 0, &weather.SchemaError{Field: key, Msg: err.Error()}
		}
		return n, nil
	}
	return 0, nil
}

func (f field) integer(obj map[string]any) (int, error) {
	n, err := f.float(obj)
	return int(n), err
}

// text probes the accessor list in order, defaulting to "unknown".
func (f field) text(obj map[string]any) string {
	return f.textDefault(obj, "unknown")
}

func (f field) textDefault(obj map[string]any, def string) string {
	for _, key := range f {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return def
}

// coerceFloat accepts the two encodings the provider has used for numerics:
// JSON numbers and numeric strings.
func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to number", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to number", v)
	}
}
