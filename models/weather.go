package models

// GeoPoint is a geocoded venue
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// HourlyForecast holds parallel hourly series for one day.
// Times are local "YYYY-MM-DDTHH:MM" strings in the requested timezone.
type HourlyForecast struct {
	Times             []string  `json:"times"`
	WindSpeedMPH      []float64 `json:"wind_speed_mph"`
	WindGustMPH       []float64 `json:"wind_gust_mph"`
	PrecipProbability []float64 `json:"precip_probability"`
}

// At returns the conditions at index i; missing series values read as 0
func (f *HourlyForecast) At(i int) KickoffConditions {
	at := func(series []float64) float64 {
		if i >= 0 && i < len(series) {
			return series[i]
		}
		return 0
	}
	return KickoffConditions{
		WindMPH:   at(f.WindSpeedMPH),
		GustMPH:   at(f.WindGustMPH),
		PrecipPct: at(f.PrecipProbability),
	}
}

// KickoffConditions are the forecast values at kickoff hour
type KickoffConditions struct {
	WindMPH   float64 `json:"wind_mph"`
	GustMPH   float64 `json:"gust_mph"`
	PrecipPct float64 `json:"precip_pct"`
}

// WindFlag is a game whose kickoff forecast crossed a wind threshold
type WindFlag struct {
	Game       ScheduledGame     `json:"game"`
	Conditions KickoffConditions `json:"conditions"`
}
