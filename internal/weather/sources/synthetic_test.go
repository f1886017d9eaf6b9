package sources

import (
	"testing"
	"time"

	"github.com/yuchenw/weather-mcp/internal/weather"
)

func TestGenerateShape(t *testing.T) {
	src := NewSyntheticSource()

	snap, err := src.Generate("Beijing", weather.LangEN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.City != "Beijing" {
		t.Fatalf("city = %q, want caller casing preserved", snap.City)
	}
	if snap.Temperature != 25.5 || snap.FeelsLike != 26.0 {
		t.Fatalf("temps = %v/%v, want 25.5/26.0", snap.Temperature, snap.FeelsLike)
	}
	if snap.Humidity != 60 || snap.Pressure != 1013 {
		t.Fatalf("humidity/pressure = %d/%d", snap.Humidity, snap.Pressure)
	}
	if snap.WindSpeed != 5.2 || snap.WindDirection != 180 {
		t.Fatalf("wind = %v @ %d", snap.WindSpeed, snap.WindDirection)
	}
	if len(snap.Forecast) != 3 {
		t.Fatalf("forecast length = %d, want 3", len(snap.Forecast))
	}

	today := time.Now()
	for i, day := range snap.Forecast {
		want := today.AddDate(0, 0, i).Format("2006-01-02")
		if day.Date != want {
			t.Errorf("forecast[%d].Date = %q, want %q", i, day.Date, want)
		}
		if day.HighTemp != float64(26+i) || day.LowTemp != float64(18+i) {
			t.Errorf("forecast[%d] temps = %v/%v", i, day.HighTemp, day.LowTemp)
		}
	}
}

func TestGenerateEnglishConditions(t *testing.T) {
	src := NewSyntheticSource()

	snap, err := src.Generate("Beijing", weather.LangEN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Condition.Main != "Clear" || snap.Condition.Description != "clear sky" {
		t.Fatalf("condition = %+v", snap.Condition)
	}
	wantMains := [3]string{"Clear", "Clouds", "Rain"}
	for i, day := range snap.Forecast {
		if day.Condition.Main != wantMains[i] {
			t.Errorf("forecast[%d] main = %q, want %q", i, day.Condition.Main, wantMains[i])
		}
	}
}

func TestGenerateChineseConditions(t *testing.T) {
	src := NewSyntheticSource()

	snap, err := src.Generate("北京", weather.LangZH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Condition.Main != "晴朗" || snap.Condition.Description != "晴朗天空" {
		t.Fatalf("condition = %+v", snap.Condition)
	}
	wantMains := [3]string{"晴朗", "多云", "下雨"}
	wantDescs := [3]string{"晴朗天空", "少云", "小雨"}
	for i, day := range snap.Forecast {
		if day.Condition.Main != wantMains[i] {
			t.Errorf("forecast[%d] main = %q, want %q", i, day.Condition.Main, wantMains[i])
		}
		if day.Condition.Description != wantDescs[i] {
			t.Errorf("forecast[%d] description = %q, want %q", i, day.Condition.Description, wantDescs[i])
		}
	}
}

func TestGenerateRepairsCity(t *testing.T) {
	src := NewSyntheticSource()

	snap, err := src.Generate("åäº¬", weather.LangZH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.City != "北京" {
		t.Fatalf("city = %q, want repaired 北京", snap.City)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		phrase string
		lang   weather.Language
		want   string
	}{
		{"clear", weather.LangZH, "晴朗"},
		{"Clear", weather.LangZH, "晴朗"},
		{"clear", weather.LangEN, "Clear"},
		{"thunderstorm", weather.LangZH, "雷暴"},
		{"tornado", weather.LangZH, "tornado"},
		{"tornado", weather.LangEN, "tornado"},
	}

	for _, tt := range tests {
		if got := Translate(tt.phrase, tt.lang); got != tt.want {
			t.Errorf("Translate(%q, %s) = %q, want %q", tt.phrase, tt.lang, got, tt.want)
		}
	}
}
