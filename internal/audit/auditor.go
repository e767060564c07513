package audit

import (
	"fmt"
	"log/slog"

	"skyaudit/internal/dataset"
	"skyaudit/internal/models"
)

// Auditor runs the three evaluators over a loaded dataset. The dataset is
// read-only for the duration of the run, so an Auditor is safe to reuse.
type Auditor struct {
	ds  *dataset.Dataset
	log *WeatherLog
}

// Report is the outcome of one audit: the annotated violations per category.
// A lesson may appear once per category but never twice within one.
type Report struct {
	Weather     []models.Violation
	Credentials []models.Violation
	Maintenance []models.Violation
}

// New builds an Auditor over a loaded dataset, indexing the weather
// observations for takeoff lookups.
func New(ds *dataset.Dataset) (*Auditor, error) {
	log, err := NewWeatherLog(ds.Weather)
	if err != nil {
		return nil, fmt.Errorf("failed to index weather observations: %w", err)
	}
	return &Auditor{ds: ds, log: log}, nil
}

// Run audits every lesson against the weather, credentials, and maintenance
// rules and returns the combined report.
func (a *Auditor) Run() (*Report, error) {
	weather, err := a.weatherViolations()
	if err != nil {
		return nil, fmt.Errorf("weather audit failed: %w", err)
	}
	slog.Info("Weather audit complete", "violations", len(weather))

	credentials, err := a.credentialsViolations()
	if err != nil {
		return nil, fmt.Errorf("credentials audit failed: %w", err)
	}
	slog.Info("Credentials audit complete", "violations", len(credentials))

	maintenance, err := maintenanceViolations(a.ds.Lessons, a.ds.Fleet, a.ds.Repairs)
	if err != nil {
		return nil, fmt.Errorf("maintenance audit failed: %w", err)
	}
	slog.Info("Maintenance audit complete", "violations", len(maintenance))

	return &Report{
		Weather:     weather,
		Credentials: credentials,
		Maintenance: maintenance,
	}, nil
}

// weatherViolations flags every lesson whose takeoff weather broke the
// minimums that applied to that pilot, area, and time of day. Lessons with no
// usable observation are unknown, not violations, and are left out.
func (a *Auditor) weatherViolations() ([]models.Violation, error) {
	var violations []models.Violation

	for _, lesson := range a.ds.Lessons {
		pilot, err := a.ds.Pilot(lesson.Student)
		if err != nil {
			return nil, err
		}

		cert := CertificationAt(lesson.Takeoff, pilot)
		daytime, err := a.ds.Daycycle.Daytime(lesson.Takeoff)
		if err != nil {
			return nil, err
		}

		mins, ok := ResolveMinimums(cert, lesson.Area, lesson.Instructed(), lesson.VFR(), daytime, a.ds.Minimums)
		if !ok {
			// No rule authorizes this flight at all; that is a credentials
			// problem, not a weather one.
			continue
		}

		reason := weatherReason(a.log.ReportAt(lesson.Takeoff), mins)
		if reason == "" || reason == models.ReasonUnknown {
			continue
		}
		violations = append(violations, models.NewViolation(lesson, reason))
	}

	return violations, nil
}

// credentialsViolations flags every lesson flown without the required
// certifications, endorsements, or instrument authority.
func (a *Auditor) credentialsViolations() ([]models.Violation, error) {
	var violations []models.Violation

	for _, lesson := range a.ds.Lessons {
		pilot, err := a.ds.Pilot(lesson.Student)
		if err != nil {
			return nil, err
		}
		instructor, err := a.ds.Instructor(lesson.Instructor)
		if err != nil {
			return nil, err
		}
		aircraft, err := a.ds.Aircraft(lesson.Airplane)
		if err != nil {
			return nil, err
		}

		if reason := credentialsReason(lesson, pilot, instructor, aircraft); reason != "" {
			violations = append(violations, models.NewViolation(lesson, reason))
		}
	}

	return violations, nil
}

// All returns every violation as one flat list, weather first, then
// credentials, then maintenance.
func (r *Report) All() []models.Violation {
	all := make([]models.Violation, 0, r.Total())
	all = append(all, r.Weather...)
	all = append(all, r.Credentials...)
	all = append(all, r.Maintenance...)
	return all
}

// Total is the number of violations across all three categories.
func (r *Report) Total() int {
	return len(r.Weather) + len(r.Credentials) + len(r.Maintenance)
}

// Summary is the human-readable count line printed for the audit's caller.
func (r *Report) Summary() string {
	switch total := r.Total(); total {
	case 0:
		return "No violations found."
	case 1:
		return "1 violation found."
	default:
		return fmt.Sprintf("%d violations found.", total)
	}
}
