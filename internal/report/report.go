// Package report prints a saved calendar in a human-readable format.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"finsk-kalender/internal/model"
)

// DefaultFile is where `kalender fetch` saves the calendar by default.
const DefaultFile = "calendar.json"

// Load reads a previously saved calendar JSON array. A missing file is
// returned as-is (wrapping fs.ErrNotExist) so callers can distinguish it
// from a corrupt one.
func Load(path string) ([]model.ChurchService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var services []model.ChurchService
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return services, nil
}

// Print writes one block per service plus a total count. Optional fields
// only get a line when present.
func Print(w io.Writer, services []model.ChurchService) {
	if len(services) == 0 {
		fmt.Fprintln(w, "No services found in calendar.")
		return
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, "Church Services Calendar")
	fmt.Fprintln(w, rule)

	for _, s := range services {
		fmt.Fprintf(w, "\n%s (%s)\n", s.Date, s.DayOfWeek)
		fmt.Fprintf(w, "  Service: %s\n", s.ServiceName)
		if s.Occasion != nil {
			fmt.Fprintf(w, "  Occasion: %s\n", *s.Occasion)
		}
		if s.Time != nil {
			fmt.Fprintf(w, "  Time: %s\n", *s.Time)
		}
		if s.Location != nil {
			fmt.Fprintf(w, "  Location: %s\n", *s.Location)
		}
		if s.Notes != nil {
			fmt.Fprintf(w, "  Notes: %s\n", *s.Notes)
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Total services: %d\n", len(services))
}
