package provider

// WeatherResponse is the /data/2.5/weather payload
type WeatherResponse struct {
	Name  string      `json:"name"`
	Coord *Coord      `json:"coord"`
	Main  MainReading `json:"main"`
	Wind  *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []Condition `json:"weather"`
}

// Coord is a latitude/longitude pair as sent by the provider
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MainReading groups the temperature block of weather and forecast payloads
type MainReading struct {
	Temp      float64 `json:"temp"`
	TempMax   float64 `json:"temp_max"`
	TempMin   float64 `json:"temp_min"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

// Condition is one element of the "weather" array
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ForecastResponse is the /data/2.5/forecast payload (5 day / 3 hour)
type ForecastResponse struct {
	List []ForecastSlot `json:"list"`
}

// ForecastSlot is one 3-hour slot of the forecast list
type ForecastSlot struct {
	Dt      int64       `json:"dt"`
	DtTxt   string      `json:"dt_txt"`
	Main    MainReading `json:"main"`
	Weather []Condition `json:"weather"`
}

// GeoPlace is one element of the /geo/1.0 reverse and direct responses
type GeoPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

// AirPollutionResponse is the /data/2.5/air_pollution payload
type AirPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}

// TimelineResponse is the Visual Crossing timeline payload
type TimelineResponse struct {
	Days []TimelineDay `json:"days"`
}

// TimelineDay groups the hourly observations of one day
type TimelineDay struct {
	Datetime string         `json:"datetime"`
	Hours    []TimelineHour `json:"hours"`
}

// TimelineHour is one hourly observation
type TimelineHour struct {
	Datetime string  `json:"datetime"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}
