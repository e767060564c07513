// Package dataset loads a flight school's audit dataset from disk into the
// typed, read-only tables the rule engine consumes. All files are read once,
// up front; any read or parse failure aborts the audit with no partial result.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"skyaudit/internal/config"
	"skyaudit/internal/models"

	"github.com/jszwec/csvutil"
)

// Dataset is one school's records for the audit period. Immutable after Load.
type Dataset struct {
	Daycycle    *models.Daycycle
	Weather     map[string]*models.WeatherReport
	Minimums    []models.MinimumsRule
	Pilots      []models.Pilot
	Instructors []models.Instructor
	Fleet       []models.Aircraft
	Lessons     []models.Lesson
	Repairs     []models.Repair

	pilotsByID      map[string]*models.Pilot
	instructorsByID map[string]*models.Instructor
	fleetByTail     map[string]*models.Aircraft
}

// Raw CSV rows as they appear on disk. Date, Yes/No, and VFR/IFR columns are
// converted to typed fields during Load so the rule engine never sees strings.
type pilotRow struct {
	ID          string `csv:"ID"`
	LastName    string `csv:"LASTNAME"`
	FirstName   string `csv:"FIRSTNAME"`
	Joined      string `csv:"JOINED"`
	Solo        string `csv:"SOLO"`
	License     string `csv:"LICENSE"`
	FiftyHours  string `csv:"50 HOURS"`
	Instrument  string `csv:"INSTRUMENT"`
	Advanced    string `csv:"ADVANCED"`
	Multiengine string `csv:"MULTIENGINE"`
}

type instructorRow struct {
	ID        string `csv:"ID"`
	LastName  string `csv:"LASTNAME"`
	FirstName string `csv:"FIRSTNAME"`
	CFI       string `csv:"CFI"`
	CFII      string `csv:"CFII"`
	MEI       string `csv:"MEI"`
}

type aircraftRow struct {
	TailNumber  string  `csv:"TAILNO"`
	Type        string  `csv:"TYPE"`
	Capability  string  `csv:"CAPABILITY"`
	Advanced    string  `csv:"ADVANCED"`
	Multiengine string  `csv:"MULTIENGINE"`
	Annual      string  `csv:"ANNUAL"`
	Hours       float64 `csv:"HOURS"`
}

type lessonRow struct {
	Student    string `csv:"STUDENT"`
	Airplane   string `csv:"AIRPLANE"`
	Instructor string `csv:"INSTRUCTOR"`
	Takeoff    string `csv:"TAKEOFF"`
	Landing    string `csv:"LANDING"`
	Filed      string `csv:"FILED"`
	Area       string `csv:"AREA"`
}

type repairRow struct {
	TailNumber  string `csv:"TAILNO"`
	ShopIn      string `csv:"IN DATE"`
	ShopOut     string `csv:"OUT DATE"`
	Description string `csv:"DESCRIPTION"`
}

// Load reads all eight dataset files from dir. The daycycle file is loaded
// first because its timezone anchors the bare-date columns everywhere else.
func Load(dir string, files config.Files) (*Dataset, error) {
	ds := &Dataset{}

	daycycle, err := readDaycycle(filepath.Join(dir, files.Daycycle))
	if err != nil {
		return nil, err
	}
	ds.Daycycle = daycycle

	loc, err := daycycle.Location()
	if err != nil {
		return nil, err
	}

	if err := readJSON(filepath.Join(dir, files.Weather), &ds.Weather); err != nil {
		return nil, fmt.Errorf("failed to load weather: %w", err)
	}

	if err := unmarshalCSV(filepath.Join(dir, files.Minimums), &ds.Minimums); err != nil {
		return nil, fmt.Errorf("failed to load minimums: %w", err)
	}

	var pilots []pilotRow
	if err := unmarshalCSV(filepath.Join(dir, files.Students), &pilots); err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	for _, row := range pilots {
		pilot, err := row.toModel(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid student %s: %w", row.ID, err)
		}
		ds.Pilots = append(ds.Pilots, pilot)
	}

	var instructors []instructorRow
	if err := unmarshalCSV(filepath.Join(dir, files.Instructors), &instructors); err != nil {
		return nil, fmt.Errorf("failed to load instructors: %w", err)
	}
	for _, row := range instructors {
		ds.Instructors = append(ds.Instructors, models.Instructor{
			ID:        row.ID,
			LastName:  row.LastName,
			FirstName: row.FirstName,
			CFI:       yesNo(row.CFI),
			CFII:      yesNo(row.CFII),
			MEI:       yesNo(row.MEI),
		})
	}

	var fleet []aircraftRow
	if err := unmarshalCSV(filepath.Join(dir, files.Fleet), &fleet); err != nil {
		return nil, fmt.Errorf("failed to load fleet: %w", err)
	}
	for _, row := range fleet {
		aircraft, err := row.toModel(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid aircraft %s: %w", row.TailNumber, err)
		}
		ds.Fleet = append(ds.Fleet, aircraft)
	}

	var lessons []lessonRow
	if err := unmarshalCSV(filepath.Join(dir, files.Lessons), &lessons); err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	for i, row := range lessons {
		lesson, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("invalid lesson %d (%s): %w", i+1, row.Student, err)
		}
		ds.Lessons = append(ds.Lessons, lesson)
	}

	var repairs []repairRow
	if err := unmarshalCSV(filepath.Join(dir, files.Repairs), &repairs); err != nil {
		return nil, fmt.Errorf("failed to load repairs: %w", err)
	}
	for i, row := range repairs {
		repair, err := row.toModel(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid repair %d (%s): %w", i+1, row.TailNumber, err)
		}
		ds.Repairs = append(ds.Repairs, repair)
	}

	ds.index()
	return ds, nil
}

// index builds the id-keyed lookup maps over the loaded slices.
func (d *Dataset) index() {
	d.pilotsByID = make(map[string]*models.Pilot, len(d.Pilots))
	for i := range d.Pilots {
		d.pilotsByID[d.Pilots[i].ID] = &d.Pilots[i]
	}
	d.instructorsByID = make(map[string]*models.Instructor, len(d.Instructors))
	for i := range d.Instructors {
		d.instructorsByID[d.Instructors[i].ID] = &d.Instructors[i]
	}
	d.fleetByTail = make(map[string]*models.Aircraft, len(d.Fleet))
	for i := range d.Fleet {
		d.fleetByTail[d.Fleet[i].TailNumber] = &d.Fleet[i]
	}
}

// Pilot returns the pilot record for id. A missing id is a fatal lookup error.
func (d *Dataset) Pilot(id string) (*models.Pilot, error) {
	pilot, ok := d.pilotsByID[id]
	if !ok {
		return nil, fmt.Errorf("no student with id %s", id)
	}
	return pilot, nil
}

// Instructor returns the instructor record for id, or nil when id is empty
// (a solo flight). A missing non-empty id is a fatal lookup error.
func (d *Dataset) Instructor(id string) (*models.Instructor, error) {
	if id == "" {
		return nil, nil
	}
	instructor, ok := d.instructorsByID[id]
	if !ok {
		return nil, fmt.Errorf("no instructor with id %s", id)
	}
	return instructor, nil
}

// Aircraft returns the fleet record for a tail number. A missing tail number
// is a fatal lookup error.
func (d *Dataset) Aircraft(tail string) (*models.Aircraft, error) {
	aircraft, ok := d.fleetByTail[tail]
	if !ok {
		return nil, fmt.Errorf("no aircraft with tail number %s", tail)
	}
	return aircraft, nil
}

func (r pilotRow) toModel(loc *time.Location) (models.Pilot, error) {
	pilot := models.Pilot{
		ID:        r.ID,
		LastName:  r.LastName,
		FirstName: r.FirstName,
	}

	fields := []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"JOINED", r.Joined, &pilot.Joined},
		{"SOLO", r.Solo, &pilot.Solo},
		{"LICENSE", r.License, &pilot.License},
		{"50 HOURS", r.FiftyHours, &pilot.FiftyHours},
		{"INSTRUMENT", r.Instrument, &pilot.Instrument},
		{"ADVANCED", r.Advanced, &pilot.Advanced},
		{"MULTIENGINE", r.Multiengine, &pilot.Multiengine},
	}
	for _, f := range fields {
		t, err := parseDate(f.value, loc)
		if err != nil {
			return models.Pilot{}, fmt.Errorf("bad %s date: %w", f.name, err)
		}
		*f.dst = t
	}

	return pilot, nil
}

func (r aircraftRow) toModel(loc *time.Location) (models.Aircraft, error) {
	annual, err := parseDate(r.Annual, loc)
	if err != nil {
		return models.Aircraft{}, fmt.Errorf("bad ANNUAL date: %w", err)
	}
	aircraft := models.Aircraft{
		TailNumber:  r.TailNumber,
		Type:        r.Type,
		IFRCapable:  r.Capability == models.FiledIFR,
		Advanced:    yesNo(r.Advanced),
		Multiengine: yesNo(r.Multiengine),
		Hours:       r.Hours,
	}
	if annual != nil {
		aircraft.Annual = *annual
	}
	return aircraft, nil
}

func (r lessonRow) toModel() (models.Lesson, error) {
	takeoff, err := time.Parse(time.RFC3339, r.Takeoff)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("bad TAKEOFF timestamp: %w", err)
	}
	landing, err := time.Parse(time.RFC3339, r.Landing)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("bad LANDING timestamp: %w", err)
	}
	return models.Lesson{
		Student:    r.Student,
		Airplane:   r.Airplane,
		Instructor: r.Instructor,
		Takeoff:    takeoff,
		Landing:    landing,
		Filed:      r.Filed,
		Area:       r.Area,
	}, nil
}

func (r repairRow) toModel(loc *time.Location) (models.Repair, error) {
	shopIn, err := parseDate(r.ShopIn, loc)
	if err != nil {
		return models.Repair{}, fmt.Errorf("bad IN DATE: %w", err)
	}
	shopOut, err := parseDate(r.ShopOut, loc)
	if err != nil {
		return models.Repair{}, fmt.Errorf("bad OUT DATE: %w", err)
	}
	if shopIn == nil || shopOut == nil {
		return models.Repair{}, fmt.Errorf("repair dates are required")
	}
	return models.Repair{
		TailNumber:  r.TailNumber,
		ShopIn:      *shopIn,
		ShopOut:     *shopOut,
		Description: r.Description,
	}, nil
}

// parseDate parses a bare date column at local midnight in the daycycle
// timezone. Empty columns are valid and mean "never" rather than epoch zero.
func parseDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func yesNo(s string) bool {
	return s == "Yes"
}

// unmarshalCSV decodes a whole CSV file, header included, into a slice of
// csv-tagged rows.
func unmarshalCSV(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := csvutil.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func readDaycycle(path string) (*models.Daycycle, error) {
	var daycycle models.Daycycle
	if err := readJSON(path, &daycycle); err != nil {
		return nil, fmt.Errorf("failed to load daycycle: %w", err)
	}
	return &daycycle, nil
}
