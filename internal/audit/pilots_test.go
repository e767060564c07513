package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyaudit/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func timePtr(t *testing.T, value string) *time.Time {
	parsed := mustTime(t, value)
	return &parsed
}

func TestCertificationAt(t *testing.T) {
	pilot := &models.Pilot{
		ID:         "S00811",
		Joined:     timePtr(t, "2016-01-01T00:00:00-05:00"),
		Solo:       timePtr(t, "2016-04-15T00:00:00-04:00"),
		License:    timePtr(t, "2016-09-20T00:00:00-04:00"),
		FiftyHours: timePtr(t, "2017-02-10T00:00:00-05:00"),
	}

	tests := []struct {
		name     string
		takeoff  string
		pilot    *models.Pilot
		expected Certification
	}{
		{
			name:     "before joining",
			takeoff:  "2015-06-01T10:00:00-04:00",
			pilot:    pilot,
			expected: CertInvalid,
		},
		{
			name:     "joined counts on the instant itself",
			takeoff:  "2016-01-01T00:00:00-05:00",
			pilot:    pilot,
			expected: CertNovice,
		},
		{
			name:     "after joining before solo",
			takeoff:  "2016-02-01T10:00:00-05:00",
			pilot:    pilot,
			expected: CertNovice,
		},
		{
			name:     "solo does not count on the instant itself",
			takeoff:  "2016-04-15T00:00:00-04:00",
			pilot:    pilot,
			expected: CertNovice,
		},
		{
			name:     "after solo before license",
			takeoff:  "2016-06-01T10:00:00-04:00",
			pilot:    pilot,
			expected: CertStudent,
		},
		{
			name:     "after license",
			takeoff:  "2016-11-01T10:00:00-04:00",
			pilot:    pilot,
			expected: CertCertified,
		},
		{
			name:     "after fifty hours",
			takeoff:  "2017-03-01T10:00:00-05:00",
			pilot:    pilot,
			expected: CertFiftyHours,
		},
		{
			name:    "no joined date",
			takeoff: "2017-03-01T10:00:00-05:00",
			pilot: &models.Pilot{
				ID:   "S00999",
				Solo: timePtr(t, "2016-04-15T00:00:00-04:00"),
			},
			expected: CertUnknown,
		},
		{
			name:    "joined only, later milestones absent",
			takeoff: "2017-03-01T10:00:00-05:00",
			pilot: &models.Pilot{
				ID:     "S00523",
				Joined: timePtr(t, "2016-01-01T00:00:00-05:00"),
			},
			expected: CertNovice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert := CertificationAt(mustTime(t, tt.takeoff), tt.pilot)
			assert.Equal(t, tt.expected, cert)
		})
	}
}

func TestCertificationAtMonotonic(t *testing.T) {
	pilot := &models.Pilot{
		ID:         "S00811",
		Joined:     timePtr(t, "2016-01-01T00:00:00-05:00"),
		Solo:       timePtr(t, "2016-04-15T00:00:00-04:00"),
		License:    timePtr(t, "2016-09-20T00:00:00-04:00"),
		FiftyHours: timePtr(t, "2017-02-10T00:00:00-05:00"),
	}

	// Certification never decreases as takeoff moves forward in time.
	start := mustTime(t, "2015-12-01T00:00:00-05:00")
	previous := CertificationAt(start, pilot)
	for day := 1; day < 500; day++ {
		at := start.AddDate(0, 0, day)
		cert := CertificationAt(at, pilot)
		require.GreaterOrEqual(t, cert, previous, "certification regressed at %s", at)
		previous = cert
	}
	assert.Equal(t, CertFiftyHours, previous)
}

func TestEndorsementPredicates(t *testing.T) {
	pilot := &models.Pilot{
		ID:          "S00850",
		Joined:      timePtr(t, "2015-03-01T00:00:00-05:00"),
		Instrument:  timePtr(t, "2016-07-01T00:00:00-04:00"),
		Advanced:    timePtr(t, "2016-08-15T00:00:00-04:00"),
		Multiengine: nil,
	}

	tests := []struct {
		name      string
		takeoff   string
		predicate func(time.Time, *models.Pilot) bool
		expected  bool
	}{
		{
			name:      "instrument before rating",
			takeoff:   "2016-06-01T10:00:00-04:00",
			predicate: HasInstrumentRating,
			expected:  false,
		},
		{
			name:      "instrument counts on the rating instant",
			takeoff:   "2016-07-01T00:00:00-04:00",
			predicate: HasInstrumentRating,
			expected:  true,
		},
		{
			name:      "instrument after rating",
			takeoff:   "2016-12-01T10:00:00-05:00",
			predicate: HasInstrumentRating,
			expected:  true,
		},
		{
			name:      "advanced after endorsement",
			takeoff:   "2016-09-01T10:00:00-04:00",
			predicate: HasAdvancedEndorsement,
			expected:  true,
		},
		{
			name:      "multiengine never earned",
			takeoff:   "2017-06-01T10:00:00-04:00",
			predicate: HasMultiengineEndorsement,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.predicate(mustTime(t, tt.takeoff), pilot)
			assert.Equal(t, tt.expected, got)
		})
	}
}
