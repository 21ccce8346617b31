package provider

import (
	"context"
	"net/url"
	"strings"
)

// CurrentWeatherByCity fetches current conditions for a city name
func (c *Client) CurrentWeatherByCity(ctx context.Context, city string) (*WeatherResponse, error) {
	params := c.values()
	params.Set("q", city)
	params.Set("units", "metric")

	var resp WeatherResponse
	if err := c.getJSON(ctx, c.baseURL+"/data/2.5/weather", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentWeatherByCoords fetches current conditions for a coordinate pair
func (c *Client) CurrentWeatherByCoords(ctx context.Context, lat, lon float64) (*WeatherResponse, error) {
	params := c.values()
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("units", "metric")

	var resp WeatherResponse
	if err := c.getJSON(ctx, c.baseURL+"/data/2.5/weather", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forecast fetches the 5 day / 3 hour forecast for a city name
func (c *Client) Forecast(ctx context.Context, city string) (*ForecastResponse, error) {
	params := c.values()
	params.Set("q", city)
	params.Set("units", "metric")

	var resp ForecastResponse
	if err := c.getJSON(ctx, c.baseURL+"/data/2.5/forecast", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AirQuality fetches the current air pollution record for a coordinate pair
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (*AirPollutionResponse, error) {
	params := c.values()
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))

	var resp AirPollutionResponse
	if err := c.getJSON(ctx, c.baseURL+"/data/2.5/air_pollution", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Timeline fetches hourly history for a city between two YYYY-MM-DD dates
func (c *Client) Timeline(ctx context.Context, city, start, end string) (*TimelineResponse, error) {
	params := url.Values{}
	params.Set("unitGroup", "metric")
	params.Set("key", c.historyAPIKey)
	params.Set("contentType", "json")

	endpoint := strings.TrimSuffix(c.historyBaseURL, "/") + "/" +
		url.PathEscape(city) + "/" + url.PathEscape(start) + "/" + url.PathEscape(end)

	var resp TimelineResponse
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
