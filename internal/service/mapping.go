package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/alexivanou/weather-dashboard/internal/provider"
)

var errMissingCondition = errors.New("response has no weather condition")

// roundHalfUp rounds .5 towards +Inf, so -2.5 becomes -2
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func mapWeather(resp *provider.WeatherResponse) (*model.CurrentWeather, error) {
	if len(resp.Weather) == 0 {
		return nil, errMissingCondition
	}

	var wind float64
	if resp.Wind != nil {
		wind = resp.Wind.Speed
	}

	return &model.CurrentWeather{
		Name:        resp.Name,
		Temp:        roundHalfUp(resp.Main.Temp),
		TempMax:     roundHalfUp(resp.Main.TempMax),
		TempMin:     roundHalfUp(resp.Main.TempMin),
		Humidity:    roundHalfUp(resp.Main.Humidity),
		FeelsLike:   roundHalfUp(resp.Main.FeelsLike),
		Icon:        resp.Weather[0].Icon,
		Description: resp.Weather[0].Description,
		Main:        resp.Weather[0].Main,
		WindSpeed:   wind,
		Pressure:    roundHalfUp(resp.Main.Pressure),
		RawTemp:     resp.Main.Temp,
	}, nil
}

func mapForecast(slots []provider.ForecastSlot) ([]model.ForecastEntry, error) {
	if len(slots) > model.MaxForecastEntries {
		slots = slots[:model.MaxForecastEntries]
	}

	entries := make([]model.ForecastEntry, 0, len(slots))
	for _, slot := range slots {
		if len(slot.Weather) == 0 {
			return nil, errMissingCondition
		}
		entries = append(entries, model.ForecastEntry{
			Time:     slotTime(slot),
			Temp:     roundHalfUp(slot.Main.Temp),
			Humidity: roundHalfUp(slot.Main.Humidity),
			Desc:     slot.Weather[0].Description,
			Icon:     slot.Weather[0].Icon,
		})
	}
	return entries, nil
}

// slotTime returns the HH:MM part of dt_txt, falling back to the unix timestamp
func slotTime(slot provider.ForecastSlot) string {
	if ts, err := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(slot.DtTxt)); err == nil {
		return ts.Format("15:04")
	}
	if slot.Dt > 0 {
		return time.Unix(slot.Dt, 0).UTC().Format("15:04")
	}
	return ""
}

// mapAirQuality returns the first record, or false when there is none usable
func mapAirQuality(resp *provider.AirPollutionResponse) (*model.AirQuality, bool) {
	if resp == nil || len(resp.List) == 0 {
		return nil, false
	}

	item := resp.List[0]
	if item.Main.AQI < 1 || item.Main.AQI > 5 {
		return nil, false
	}

	components := make(map[string]float64, len(item.Components))
	for k, v := range item.Components {
		components[k] = v
	}
	return &model.AirQuality{AQI: item.Main.AQI, Components: components}, true
}
