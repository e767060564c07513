package models

import "time"

// Filed flight rule values as they appear in lessons.csv
const (
	FiledVFR = "VFR"
	FiledIFR = "IFR"
)

// Violation reasons. Each evaluator emits at most one reason per lesson; when
// several rules break inside the same category the combined reason is used.
const (
	// Weather category
	ReasonVisibility = "Visibility"
	ReasonWinds      = "Winds"
	ReasonCeiling    = "Ceiling"
	ReasonWeather    = "Weather" // two or more weather rules broken
	ReasonUnknown    = "Unknown" // no observation on record; suppressed from the report

	// Credentials category
	ReasonSolo        = "Solo"
	ReasonEndorsement = "Endorsement"
	ReasonIFR         = "IFR"

	// Maintenance category
	ReasonGrounded    = "Grounded"
	ReasonInspection  = "Inspection"
	ReasonAnnual      = "Annual"
	ReasonMaintenance = "Maintenance" // two or more maintenance rules broken
)

// Lesson represents one flight (takeoff and landing) from lessons.csv
type Lesson struct {
	Student    string    // Student pilot id
	Airplane   string    // Aircraft tail number
	Instructor string    // Instructor id, empty for solo flights
	Takeoff    time.Time // Takeoff instant, timezone aware
	Landing    time.Time // Landing instant, timezone aware
	Filed      string    // FiledVFR or FiledIFR
	Area       string    // Pattern, Practice Area, Local, or Cross Country
}

// Instructed reports whether an instructor was aboard.
func (l Lesson) Instructed() bool {
	return l.Instructor != ""
}

// VFR reports whether the lesson was filed under visual flight rules.
func (l Lesson) VFR() bool {
	return l.Filed == FiledVFR
}

// Pilot represents a student's certification history from students.csv.
// A nil timestamp means the milestone was never earned, not epoch zero.
type Pilot struct {
	ID          string
	LastName    string
	FirstName   string
	Joined      *time.Time // Joined the school
	Solo        *time.Time // First solo
	License     *time.Time // Private license
	FiftyHours  *time.Time // 50 hours past license
	Instrument  *time.Time // Instrument rating
	Advanced    *time.Time // Advanced endorsement
	Multiengine *time.Time // Multiengine endorsement
}

// Instructor represents a certified instructor from instructors.csv
type Instructor struct {
	ID        string
	LastName  string
	FirstName string
	CFI       bool // May teach VFR flights
	CFII      bool // May teach IFR flights
	MEI       bool // May teach multiengine flights
}

// Aircraft represents one airplane from fleet.csv. Annual and Hours are the
// maintenance baseline as of the start of the audit period; the actual clocks
// are derived by combining them with the repair history.
type Aircraft struct {
	TailNumber  string
	Type        string
	IFRCapable  bool      // Outfitted for instrument flight
	Advanced    bool      // Requires an advanced endorsement
	Multiengine bool      // Requires a multiengine endorsement
	Annual      time.Time // Last annual inspection before the audit period
	Hours       float64   // Hours since the last 100-hour inspection
}

// Repair represents one maintenance or grounding event from repairs.csv.
// The aircraft is in the shop, and must not fly, between ShopIn and ShopOut.
type Repair struct {
	TailNumber  string
	ShopIn      time.Time
	ShopOut     time.Time
	Description string
}

// IsAnnual reports whether this repair was an annual inspection, which resets
// the annual clock. Any repair resets the 100-hour clock.
func (r Repair) IsAnnual() bool {
	return r.Description == "annual inspection"
}

// MinimumsRule is one row of the insurance minimums table (minimums.csv).
// The csv tags match the table header exactly.
type MinimumsRule struct {
	Category   string  `csv:"CATEGORY"`   // Student, Certified, 50 Hours, or Dual
	Conditions string  `csv:"CONDITIONS"` // VMC or IMC
	Area       string  `csv:"AREA"`       // Pattern, Practice Area, Local, Cross Country, or Any
	Time       string  `csv:"TIME"`       // Day or Night
	Ceiling    float64 `csv:"CEILING"`    // Minimum ceiling in feet
	Visibility float64 `csv:"VISIBILITY"` // Minimum visibility in statute miles
	Wind       float64 `csv:"WIND"`       // Maximum wind speed in knots
	Crosswind  float64 `csv:"CROSSWIND"`  // Maximum crosswind speed in knots
}

// Violation is one annotated row of the audit report: the offending lesson
// plus exactly one reason. Immutable once created.
type Violation struct {
	Student    string `csv:"STUDENT"`
	Airplane   string `csv:"AIRPLANE"`
	Instructor string `csv:"INSTRUCTOR"`
	Takeoff    string `csv:"TAKEOFF"`
	Landing    string `csv:"LANDING"`
	Filed      string `csv:"FILED"`
	Area       string `csv:"AREA"`
	Reason     string `csv:"REASON"`
}

// NewViolation copies the lesson fields and annotates them with a reason.
func NewViolation(lesson Lesson, reason string) Violation {
	return Violation{
		Student:    lesson.Student,
		Airplane:   lesson.Airplane,
		Instructor: lesson.Instructor,
		Takeoff:    lesson.Takeoff.Format(time.RFC3339),
		Landing:    lesson.Landing.Format(time.RFC3339),
		Filed:      lesson.Filed,
		Area:       lesson.Area,
		Reason:     reason,
	}
}
