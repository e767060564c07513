package dataset

import (
	"fmt"
	"os"

	"skyaudit/internal/models"

	"github.com/jszwec/csvutil"
)

// WriteReport writes the violation report as CSV. The header row
// (STUDENT,AIRPLANE,INSTRUCTOR,TAKEOFF,LANDING,FILED,AREA,REASON) is always
// written, so an audit with no violations produces a header-only file.
func WriteReport(path string, violations []models.Violation) error {
	data, err := csvutil.Marshal(violations)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
