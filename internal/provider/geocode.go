package provider

import (
	"context"
)

// ReverseGeocode resolves coordinates to at most one place
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) ([]GeoPlace, error) {
	params := c.values()
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("limit", "1")

	var places []GeoPlace
	if err := c.getJSON(ctx, c.baseURL+"/geo/1.0/reverse", params, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// DirectGeocode resolves a place name to at most one place
func (c *Client) DirectGeocode(ctx context.Context, city string) ([]GeoPlace, error) {
	params := c.values()
	params.Set("q", city)
	params.Set("limit", "1")

	var places []GeoPlace
	if err := c.getJSON(ctx, c.baseURL+"/geo/1.0/direct", params, &places); err != nil {
		return nil, err
	}
	return places, nil
}
