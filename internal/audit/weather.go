package audit

import (
	"fmt"
	"sort"
	"time"

	"skyaudit/internal/models"
)

const (
	feetPerMile = 5280.0
	knotsPerMPS = 1.94384
	unitsFeet   = "FT"
	unitsMPS    = "MPS"
)

// badVisibility reports whether a visibility measurement violates the minimum
// (in statute miles). The measurement's own minimum is compared when present,
// otherwise the prevailing visibility. An unavailable reading always violates:
// the school is liable for flying blind on record keeping.
func badVisibility(visibility models.Visibility, minimum float64) bool {
	if visibility.Kind == models.KindUnavailable {
		return true
	}

	value := visibility.Prevailing
	if visibility.Minimum != nil {
		value = *visibility.Minimum
	}
	if visibility.Units == unitsFeet {
		value /= feetPerMile
	}
	return value < minimum
}

// badWinds reports whether a wind measurement violates the maximum wind or
// crosswind speeds (in knots). The worse of speed and gusts counts against
// the wind limit. Calm winds never violate; an unavailable reading always
// does.
func badWinds(winds models.Wind, maxWind, maxCross float64) bool {
	switch winds.Kind {
	case models.KindCalm:
		return false
	case models.KindUnavailable:
		return true
	}

	factor := 1.0
	if winds.Units == unitsMPS {
		factor = knotsPerMPS
	}

	speed := winds.Speed * factor
	if winds.Gusts != nil && *winds.Gusts*factor > speed {
		speed = *winds.Gusts * factor
	}
	if speed > maxWind {
		return true
	}

	return winds.Crosswind != nil && *winds.Crosswind*factor > maxCross
}

// badCeiling reports whether a sky measurement violates the minimum ceiling
// (in feet). Only broken, overcast, and indefinite ceiling layers constrain;
// a sky of nothing but "a few" or scattered clouds never violates. Clear
// skies never violate; an unavailable reading always does.
func badCeiling(sky models.Sky, minimum float64) bool {
	switch sky.Kind {
	case models.KindClear:
		return false
	case models.KindUnavailable:
		return true
	}

	for _, layer := range sky.Layers {
		if layer.Constrains() && layer.Height < minimum {
			return true
		}
	}
	return false
}

// weatherReason classifies a takeoff against the resolved minimums. It
// returns one of ReasonVisibility, ReasonWinds, or ReasonCeiling when exactly
// one rule is broken, ReasonWeather when more than one is, ReasonUnknown when
// no observation was available, and "" when the flight was fine.
func weatherReason(report *models.WeatherReport, mins Minimums) string {
	if report == nil {
		return models.ReasonUnknown
	}

	var broken []string
	if badVisibility(report.Visibility, mins.Visibility) {
		broken = append(broken, models.ReasonVisibility)
	}
	if badWinds(report.Wind, mins.Wind, mins.Crosswind) {
		broken = append(broken, models.ReasonWinds)
	}
	if badCeiling(report.Sky, mins.Ceiling) {
		broken = append(broken, models.ReasonCeiling)
	}

	switch len(broken) {
	case 0:
		return ""
	case 1:
		return broken[0]
	default:
		return models.ReasonWeather
	}
}

// WeatherLog indexes the hourly observations by time so that every takeoff
// lookup is a binary search instead of a scan over the whole year of reports.
type WeatherLog struct {
	observations []observation
}

type observation struct {
	at     time.Time
	report *models.WeatherReport
}

// NewWeatherLog builds the sorted observation index from the raw weather
// table keyed by ISO-8601 timestamp.
func NewWeatherLog(weather map[string]*models.WeatherReport) (*WeatherLog, error) {
	log := &WeatherLog{observations: make([]observation, 0, len(weather))}
	for key, report := range weather {
		at, err := time.Parse(time.RFC3339, key)
		if err != nil {
			return nil, fmt.Errorf("bad weather timestamp %q: %w", key, err)
		}
		log.observations = append(log.observations, observation{at: at, report: report})
	}
	sort.Slice(log.observations, func(i, j int) bool {
		return log.observations[i].at.Before(log.observations[j].at)
	})
	return log, nil
}

// ReportAt returns the observation for a takeoff: the report at the exact
// takeoff instant if one exists, otherwise the nearest report strictly before
// takeoff on the same calendar day. Returns nil when no such report exists,
// which the audit treats as unknown weather.
func (l *WeatherLog) ReportAt(takeoff time.Time) *models.WeatherReport {
	// First observation after takeoff; the candidate is the one before it.
	idx := sort.Search(len(l.observations), func(i int) bool {
		return l.observations[i].at.After(takeoff)
	})
	if idx == 0 {
		return nil
	}

	candidate := l.observations[idx-1]
	if candidate.at.Equal(takeoff) {
		return candidate.report
	}
	// Nearest prior only counts on the takeoff's own calendar day, each
	// instant judged in its own recorded offset.
	if candidate.at.Format("2006-01-02") != takeoff.Format("2006-01-02") {
		return nil
	}
	return candidate.report
}
