package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind tags the variant of a weather field. The station either produced a
// measurement, filed one of the no-measurement sentinels, or left no usable
// record at all ("unavailable", which the audit treats as the conservative
// case rather than an error).
type Kind int

const (
	KindMeasured Kind = iota
	KindUnavailable
	KindCalm  // wind only
	KindClear // sky only
)

// Visibility is the visibility field of a weather report. Prevailing is
// required on a measurement; Minimum and Maximum are optional. Units are
// "SM" (statute miles) or "FT" (feet).
type Visibility struct {
	Kind       Kind
	Prevailing float64
	Minimum    *float64
	Maximum    *float64
	Units      string
}

// Wind is the wind field of a weather report. Speed is required on a
// measurement; Gusts and Crosswind are optional. Units are "KT" (knots) or
// "MPS" (meters per second).
type Wind struct {
	Kind      Kind
	Speed     float64
	Gusts     *float64
	Crosswind *float64
	Units     string
}

// CloudLayer is one layer of a sky measurement. Heights are always in feet.
type CloudLayer struct {
	Cover  string  `json:"cover,omitempty"`
	Type   string  `json:"type"` // a few, scattered, broken, overcast, indefinite ceiling
	Height float64 `json:"height"`
	Units  string  `json:"units"`
}

// Constrains reports whether this layer counts toward the ceiling. Layers of
// "a few" or "scattered" clouds never do.
func (c CloudLayer) Constrains() bool {
	return c.Type != "a few" && c.Type != "scattered"
}

// Sky is the sky/ceiling field of a weather report.
type Sky struct {
	Kind   Kind
	Layers []CloudLayer
}

// WeatherReport is one timestamped observation from weather.json. Reports may
// carry more fields (temperature, remarks); only these matter to the audit.
type WeatherReport struct {
	Visibility Visibility `json:"visibility"`
	Wind       Wind       `json:"wind"`
	Sky        Sky        `json:"sky"`
	Code       string     `json:"code"`
}

type visibilityMeasurement struct {
	Prevailing float64  `json:"prevailing"`
	Minimum    *float64 `json:"minimum"`
	Maximum    *float64 `json:"maximum"`
	Units      string   `json:"units"`
}

// UnmarshalJSON decodes either the string sentinel "unavailable" or a
// measurement object.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "unavailable" {
			return fmt.Errorf("unknown visibility sentinel %q", s)
		}
		*v = Visibility{Kind: KindUnavailable}
		return nil
	}

	var m visibilityMeasurement
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("invalid visibility measurement: %w", err)
	}
	*v = Visibility{
		Kind:       KindMeasured,
		Prevailing: m.Prevailing,
		Minimum:    m.Minimum,
		Maximum:    m.Maximum,
		Units:      m.Units,
	}
	return nil
}

type windMeasurement struct {
	Speed     float64  `json:"speed"`
	Gusts     *float64 `json:"gusts"`
	Crosswind *float64 `json:"crosswind"`
	Units     string   `json:"units"`
}

// UnmarshalJSON decodes the string sentinels "calm" and "unavailable" or a
// measurement object.
func (w *Wind) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "calm":
			*w = Wind{Kind: KindCalm}
		case "unavailable":
			*w = Wind{Kind: KindUnavailable}
		default:
			return fmt.Errorf("unknown wind sentinel %q", s)
		}
		return nil
	}

	var m windMeasurement
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("invalid wind measurement: %w", err)
	}
	*w = Wind{
		Kind:      KindMeasured,
		Speed:     m.Speed,
		Gusts:     m.Gusts,
		Crosswind: m.Crosswind,
		Units:     m.Units,
	}
	return nil
}

// UnmarshalJSON decodes the string sentinels "clear" and "unavailable" or a
// list of cloud layers.
func (s *Sky) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		switch str {
		case "clear":
			*s = Sky{Kind: KindClear}
		case "unavailable":
			*s = Sky{Kind: KindUnavailable}
		default:
			return fmt.Errorf("unknown sky sentinel %q", str)
		}
		return nil
	}

	var layers []CloudLayer
	if err := json.Unmarshal(data, &layers); err != nil {
		return fmt.Errorf("invalid sky measurement: %w", err)
	}
	*s = Sky{Kind: KindMeasured, Layers: layers}
	return nil
}

// Daycycle is the sunrise/sunset schedule for the school's airport
// (daycycle.json). It also supplies the local timezone for dataset fields
// that are bare dates, such as certification and repair dates.
type Daycycle struct {
	Timezone string            `json:"timezone"`
	Sunrise  map[string]string `json:"sunrise"` // date -> "HH:MM" local
	Sunset   map[string]string `json:"sunset"`  // date -> "HH:MM" local

	loc *time.Location
}

// Location returns the airport's timezone, loading it on first use.
func (d *Daycycle) Location() (*time.Location, error) {
	if d.loc != nil {
		return d.loc, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load daycycle timezone %q: %w", d.Timezone, err)
	}
	d.loc = loc
	return loc, nil
}

// Daytime reports whether the instant falls between sunrise (inclusive) and
// sunset (exclusive) local time. Dates outside the schedule count as night.
func (d *Daycycle) Daytime(t time.Time) (bool, error) {
	loc, err := d.Location()
	if err != nil {
		return false, err
	}

	local := t.In(loc)
	date := local.Format("2006-01-02")

	sunrise, ok := d.Sunrise[date]
	if !ok {
		return false, nil
	}
	sunset, ok := d.Sunset[date]
	if !ok {
		return false, nil
	}

	rise, err := time.ParseInLocation("2006-01-02 15:04", date+" "+sunrise, loc)
	if err != nil {
		return false, fmt.Errorf("invalid sunrise %q for %s: %w", sunrise, date, err)
	}
	set, err := time.ParseInLocation("2006-01-02 15:04", date+" "+sunset, loc)
	if err != nil {
		return false, fmt.Errorf("invalid sunset %q for %s: %w", sunset, date, err)
	}

	return !local.Before(rise) && local.Before(set), nil
}
