// Package audit implements the rule engine that decides whether a flight
// lesson complied with the school's insurance-mandated safety rules: weather
// minimums, pilot credentials, and aircraft airworthiness. All decision
// functions are pure over the read-only dataset tables.
package audit

import (
	"time"

	"skyaudit/internal/models"
)

// Certification classifies where a pilot is in the licensing process at a
// given instant. The values are ordered: a pilot's certification never
// decreases over time.
type Certification int

const (
	// CertUnknown means the pilot record has no joined date (malformed data,
	// not defended against beyond this sentinel).
	CertUnknown Certification = iota - 2
	// CertInvalid means the flight predates the pilot joining the school.
	CertInvalid
	// CertNovice is a pilot that has joined but not yet soloed.
	CertNovice
	// CertStudent is a pilot that has soloed but holds no license.
	CertStudent
	// CertCertified is a licensed pilot with under 50 hours past license.
	CertCertified
	// CertFiftyHours is a licensed pilot 50 hours past license.
	CertFiftyHours
)

// CertificationAt returns the pilot's certification at the time of takeoff.
// A milestone counts only if it was earned strictly before takeoff; joining
// the school counts on the takeoff instant itself.
func CertificationAt(takeoff time.Time, pilot *models.Pilot) Certification {
	if pilot.Joined == nil {
		return CertUnknown
	}
	if takeoff.Before(*pilot.Joined) {
		return CertInvalid
	}

	cert := CertNovice
	if pilot.Solo != nil && pilot.Solo.Before(takeoff) {
		cert = CertStudent
	}
	if pilot.License != nil && pilot.License.Before(takeoff) {
		cert = CertCertified
	}
	if pilot.FiftyHours != nil && pilot.FiftyHours.Before(takeoff) {
		cert = CertFiftyHours
	}
	return cert
}

// HasInstrumentRating reports whether the pilot held an instrument rating at
// takeoff. Holding the rating does not make a flight IFR; it only allows it.
func HasInstrumentRating(takeoff time.Time, pilot *models.Pilot) bool {
	return earnedBy(pilot.Instrument, takeoff)
}

// HasAdvancedEndorsement reports whether the pilot was endorsed for advanced
// aircraft (retractable gear) at takeoff.
func HasAdvancedEndorsement(takeoff time.Time, pilot *models.Pilot) bool {
	return earnedBy(pilot.Advanced, takeoff)
}

// HasMultiengineEndorsement reports whether the pilot was endorsed for
// multiengine aircraft at takeoff.
func HasMultiengineEndorsement(takeoff time.Time, pilot *models.Pilot) bool {
	return earnedBy(pilot.Multiengine, takeoff)
}

// earnedBy reports whether a milestone timestamp exists and is at or before
// the given instant. A nil timestamp means the milestone was never earned.
func earnedBy(earned *time.Time, asOf time.Time) bool {
	return earned != nil && !earned.After(asOf)
}
