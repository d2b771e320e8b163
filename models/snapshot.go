package models

import (
	"github.com/shyamyadavji/weather/payload"
)

// WeatherSnapshot is the normalized result of one fetch cycle for one
// location. The three sections come from independent endpoints and may be
// independently unavailable; a nil section means that endpoint failed while
// the others still populated. Leaf fields are display strings so the
// sentinel can flow through them unchanged.
type WeatherSnapshot struct {
	Location string             `json:"location"`
	Current  *CurrentConditions `json:"current,omitempty"`
	Forecast []DayForecast      `json:"forecast,omitempty"`
	Astro    *AstroInfo         `json:"astro,omitempty"`
}

// CurrentConditions holds the current-endpoint fields consumed by the
// presentation surface.
type CurrentConditions struct {
	TempC      string `json:"tempC"`
	Condition  string `json:"condition"`
	Humidity   string `json:"humidity"`
	WindKph    string `json:"windKph"`
	PressureMb string `json:"pressureMb"`
	VisKm      string `json:"visKm"`
	IsDay      bool   `json:"isDay"`
	LocalTime  string `json:"localTime"`
}

// DayForecast is one day of the multi-day forecast.
type DayForecast struct {
	Date       string         `json:"date"`
	MinTempC   string         `json:"minTempC"`
	MaxTempC   string         `json:"maxTempC"`
	Condition  string         `json:"condition"`
	RainChance string         `json:"rainChance"` // percentage
	Hours      []HourForecast `json:"hours,omitempty"`
}

// HourForecast is one hour within a forecast day.
type HourForecast struct {
	Time      string `json:"time"`
	TempC     string `json:"tempC"`
	Condition string `json:"condition"`
	WindKph   string `json:"windKph"`
}

// AstroInfo holds the astronomy-endpoint fields for a single day. All values
// are opaque display strings; no numeric parsing is applied.
type AstroInfo struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moonPhase"`
	MoonIllumination string `json:"moonIllumination"` // percentage
}

// BuildSnapshot assembles a snapshot from the raw payloads of the three
// endpoints. Any payload may be nil; the matching section stays nil.
func BuildSnapshot(location string, current, forecast, astro payload.Tree) WeatherSnapshot {
	return WeatherSnapshot{
		Location: location,
		Current:  CurrentFromPayload(current),
		Forecast: ForecastFromPayload(forecast),
		Astro:    AstroFromPayload(astro),
	}
}

// CurrentFromPayload normalizes a current-endpoint payload. Each field
// degrades to the sentinel independently.
func CurrentFromPayload(t payload.Tree) *CurrentConditions {
	if t == nil {
		return nil
	}
	c := &CurrentConditions{
		TempC:      payload.String(t, "current", "temp_c"),
		Condition:  payload.String(t, "current", "condition", "text"),
		Humidity:   payload.String(t, "current", "humidity"),
		WindKph:    payload.String(t, "current", "wind_kph"),
		PressureMb: payload.String(t, "current", "pressure_mb"),
		VisKm:      payload.String(t, "current", "vis_km"),
		LocalTime:  payload.String(t, "location", "localtime"),
		IsDay:      true,
	}
	if v, ok := payload.At(t, "current", "is_day"); ok {
		if n, ok := v.(float64); ok {
			c.IsDay = n != 0
		}
	}
	return c
}

// ForecastFromPayload normalizes a forecast-endpoint payload into the full
// ordered day sequence, each day carrying its ordered hour sequence.
func ForecastFromPayload(t payload.Tree) []DayForecast {
	if t == nil {
		return nil
	}
	n := payload.Len(t, "forecast", "forecastday")
	if n == 0 {
		return nil
	}
	days := make([]DayForecast, 0, n)
	for i := 0; i < n; i++ {
		day, ok := payload.Element(t, i, "forecast", "forecastday")
		if !ok {
			continue
		}
		df := DayForecast{
			Date:       payload.String(day, "date"),
			MinTempC:   payload.String(day, "day", "mintemp_c"),
			MaxTempC:   payload.String(day, "day", "maxtemp_c"),
			Condition:  payload.String(day, "day", "condition", "text"),
			RainChance: payload.String(day, "day", "daily_chance_of_rain"),
		}
		for h := 0; h < payload.Len(day, "hour"); h++ {
			hour, ok := payload.Element(day, h, "hour")
			if !ok {
				continue
			}
			df.Hours = append(df.Hours, HourForecast{
				Time:      payload.String(hour, "time"),
				TempC:     payload.String(hour, "temp_c"),
				Condition: payload.String(hour, "condition", "text"),
				WindKph:   payload.String(hour, "wind_kph"),
			})
		}
		days = append(days, df)
	}
	return days
}

// AstroFromPayload normalizes an astronomy-endpoint payload.
func AstroFromPayload(t payload.Tree) *AstroInfo {
	if t == nil {
		return nil
	}
	if _, ok := payload.At(t, "astronomy", "astro"); !ok {
		return nil
	}
	return &AstroInfo{
		Sunrise:          payload.String(t, "astronomy", "astro", "sunrise"),
		Sunset:           payload.String(t, "astronomy", "astro", "sunset"),
		Moonrise:         payload.String(t, "astronomy", "astro", "moonrise"),
		Moonset:          payload.String(t, "astronomy", "astro", "moonset"),
		MoonPhase:        payload.String(t, "astronomy", "astro", "moon_phase"),
		MoonIllumination: payload.String(t, "astronomy", "astro", "moon_illumination"),
	}
}
