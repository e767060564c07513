package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyaudit/internal/models"
)

func maintLesson(t *testing.T, tail, takeoff, landing string) models.Lesson {
	return models.Lesson{
		Student:  "S00681",
		Airplane: tail,
		Takeoff:  mustTime(t, takeoff),
		Landing:  mustTime(t, landing),
		Filed:    models.FiledVFR,
		Area:     "Pattern",
	}
}

func TestMaintenanceViolationsGrounded(t *testing.T) {
	fleet := []models.Aircraft{
		{TailNumber: "738GG", Annual: mustTime(t, "2016-12-01T00:00:00-05:00"), Hours: 0},
	}
	repairs := []models.Repair{
		{
			TailNumber:  "738GG",
			ShopIn:      mustTime(t, "2017-03-18T00:00:00-04:00"),
			ShopOut:     mustTime(t, "2017-03-21T00:00:00-04:00"),
			Description: "oil change",
		},
	}
	lessons := []models.Lesson{
		maintLesson(t, "738GG", "2017-03-19T13:00:00-04:00", "2017-03-19T15:00:00-04:00"),
		maintLesson(t, "738GG", "2017-03-22T13:00:00-04:00", "2017-03-22T15:00:00-04:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, repairs)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ReasonGrounded, violations[0].Reason)
	assert.Equal(t, "2017-03-19T13:00:00-04:00", violations[0].Takeoff)
}

func TestMaintenanceViolationsInspection(t *testing.T) {
	// 99 baseline hours: the first two-hour flight lands at 101 hours and
	// violates; after the shop visit the clock starts over.
	fleet := []models.Aircraft{
		{TailNumber: "684TM", Annual: mustTime(t, "2016-12-01T00:00:00-05:00"), Hours: 99},
	}
	repairs := []models.Repair{
		{
			TailNumber:  "684TM",
			ShopIn:      mustTime(t, "2017-02-27T00:00:00-05:00"),
			ShopOut:     mustTime(t, "2017-03-01T00:00:00-05:00"),
			Description: "100 hour inspection",
		},
	}
	lessons := []models.Lesson{
		maintLesson(t, "684TM", "2017-02-26T14:00:00-05:00", "2017-02-26T16:00:00-05:00"),
		maintLesson(t, "684TM", "2017-03-02T14:00:00-05:00", "2017-03-02T16:00:00-05:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, repairs)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ReasonInspection, violations[0].Reason)
	assert.Equal(t, "2017-02-26T14:00:00-05:00", violations[0].Takeoff)
}

func TestMaintenanceViolationsExactlyHundredHours(t *testing.T) {
	fleet := []models.Aircraft{
		{TailNumber: "684TM", Annual: mustTime(t, "2016-12-01T00:00:00-05:00"), Hours: 98},
	}
	lessons := []models.Lesson{
		maintLesson(t, "684TM", "2017-02-26T14:00:00-05:00", "2017-02-26T16:00:00-05:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, nil)
	require.NoError(t, err)
	assert.Empty(t, violations, "landing with exactly 100 hours is compliant")
}

func TestMaintenanceViolationsAnnual(t *testing.T) {
	fleet := []models.Aircraft{
		{TailNumber: "811AX", Annual: mustTime(t, "2016-01-25T00:00:00-05:00"), Hours: 0},
	}
	repairs := []models.Repair{
		{
			TailNumber:  "811AX",
			ShopIn:      mustTime(t, "2017-02-01T00:00:00-05:00"),
			ShopOut:     mustTime(t, "2017-02-04T00:00:00-05:00"),
			Description: "annual inspection",
		},
	}
	lessons := []models.Lesson{
		// 368 days past the baseline annual
		maintLesson(t, "811AX", "2017-01-27T13:00:00-05:00", "2017-01-27T15:00:00-05:00"),
		// after the fresh annual inspection
		maintLesson(t, "811AX", "2017-02-10T13:00:00-05:00", "2017-02-10T15:00:00-05:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, repairs)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ReasonAnnual, violations[0].Reason)
	assert.Equal(t, "2017-01-27T13:00:00-05:00", violations[0].Takeoff)
}

func TestMaintenanceViolationsExactlyYear(t *testing.T) {
	annual := mustTime(t, "2016-02-26T14:00:00-05:00")
	fleet := []models.Aircraft{
		{TailNumber: "811AX", Annual: annual, Hours: 0},
	}
	lessons := []models.Lesson{
		// Takeoff exactly 365 days after the annual.
		maintLesson(t, "811AX",
			annual.Add(365*24*time.Hour).Format(time.RFC3339),
			annual.Add(365*24*time.Hour+2*time.Hour).Format(time.RFC3339)),
	}

	violations, err := maintenanceViolations(lessons, fleet, nil)
	require.NoError(t, err)
	assert.Empty(t, violations, "exactly 365 days since the annual is compliant")
}

func TestMaintenanceViolationsCombined(t *testing.T) {
	// Over the annual limit and over 100 hours at once.
	fleet := []models.Aircraft{
		{TailNumber: "426JQ", Annual: mustTime(t, "2015-06-01T00:00:00-04:00"), Hours: 101},
	}
	lessons := []models.Lesson{
		maintLesson(t, "426JQ", "2017-01-12T13:00:00-05:00", "2017-01-12T15:00:00-05:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, nil)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ReasonMaintenance, violations[0].Reason)
}

func TestMaintenanceViolationsAnyRepairResetsHours(t *testing.T) {
	fleet := []models.Aircraft{
		{TailNumber: "684TM", Annual: mustTime(t, "2016-12-01T00:00:00-05:00"), Hours: 99.5},
	}
	repairs := []models.Repair{
		{
			TailNumber:  "684TM",
			ShopIn:      mustTime(t, "2017-01-10T00:00:00-05:00"),
			ShopOut:     mustTime(t, "2017-01-12T00:00:00-05:00"),
			Description: "radio repair",
		},
	}
	lessons := []models.Lesson{
		maintLesson(t, "684TM", "2017-01-15T14:00:00-05:00", "2017-01-15T17:00:00-05:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, repairs)
	require.NoError(t, err)
	assert.Empty(t, violations, "a routine repair resets the 100-hour clock")
}

func TestMaintenanceViolationsPreservesLessonOrder(t *testing.T) {
	fleet := []models.Aircraft{
		{TailNumber: "426JQ", Annual: mustTime(t, "2015-06-01T00:00:00-04:00"), Hours: 0},
		{TailNumber: "811AX", Annual: mustTime(t, "2015-01-25T00:00:00-05:00"), Hours: 0},
	}
	// Two overdue aircraft interleaved in the lesson file.
	lessons := []models.Lesson{
		maintLesson(t, "811AX", "2017-01-05T13:00:00-05:00", "2017-01-05T15:00:00-05:00"),
		maintLesson(t, "426JQ", "2017-01-06T13:00:00-05:00", "2017-01-06T15:00:00-05:00"),
		maintLesson(t, "811AX", "2017-01-07T13:00:00-05:00", "2017-01-07T15:00:00-05:00"),
	}

	violations, err := maintenanceViolations(lessons, fleet, nil)
	require.NoError(t, err)
	require.Len(t, violations, 3)
	assert.Equal(t, "2017-01-05T13:00:00-05:00", violations[0].Takeoff)
	assert.Equal(t, "2017-01-06T13:00:00-05:00", violations[1].Takeoff)
	assert.Equal(t, "2017-01-07T13:00:00-05:00", violations[2].Takeoff)
}

func TestMaintenanceViolationsUnknownTailNumber(t *testing.T) {
	lessons := []models.Lesson{
		maintLesson(t, "999ZZ", "2017-01-05T13:00:00-05:00", "2017-01-05T15:00:00-05:00"),
	}

	_, err := maintenanceViolations(lessons, nil, nil)
	assert.Error(t, err)
}
