package audit

import (
	"time"

	"skyaudit/internal/models"
)

// badSolo reports whether a pilot flew alone under instrument flight rules
// without holding an instrument rating.
func badSolo(lesson models.Lesson, pilot *models.Pilot) bool {
	return !lesson.Instructed() &&
		lesson.Filed == models.FiledIFR &&
		!HasInstrumentRating(lesson.Takeoff, pilot)
}

// badEndorsement reports whether the flight lacked the endorsements the
// aircraft requires. An instructor aboard satisfies the advanced requirement
// outright, but covers multiengine only with an MEI. A pilot flying alone
// must personally hold every endorsement the aircraft requires.
func badEndorsement(takeoff time.Time, pilot *models.Pilot, instructor *models.Instructor, aircraft *models.Aircraft) bool {
	if !aircraft.Advanced && !aircraft.Multiengine {
		return false
	}

	if instructor != nil {
		return aircraft.Multiengine && !instructor.MEI
	}

	if aircraft.Advanced && !HasAdvancedEndorsement(takeoff, pilot) {
		return true
	}
	return aircraft.Multiengine && !HasMultiengineEndorsement(takeoff, pilot)
}

// badIFR reports whether the flight was not authorized for instrument flight:
// the aircraft must be IFR capable, an instructor aboard must hold a CFII,
// and a pilot alone must hold an instrument rating. Endorsements do not enter
// into it.
func badIFR(takeoff time.Time, pilot *models.Pilot, instructor *models.Instructor, aircraft *models.Aircraft) bool {
	if !aircraft.IFRCapable {
		return true
	}
	if instructor != nil {
		return !instructor.CFII
	}
	return !HasInstrumentRating(takeoff, pilot)
}

// credentialsReason returns the credentials violation for a lesson, or "".
// The checks apply in a fixed order (solo, then endorsement, then IFR) and
// the first broken rule names the violation. The IFR check only applies to
// lessons actually filed IFR.
func credentialsReason(lesson models.Lesson, pilot *models.Pilot, instructor *models.Instructor, aircraft *models.Aircraft) string {
	if badSolo(lesson, pilot) {
		return models.ReasonSolo
	}
	if badEndorsement(lesson.Takeoff, pilot, instructor, aircraft) {
		return models.ReasonEndorsement
	}
	if lesson.Filed == models.FiledIFR && badIFR(lesson.Takeoff, pilot, instructor, aircraft) {
		return models.ReasonIFR
	}
	return ""
}
