package report

import (
	"sort"
	"strings"
	"time"

	"rollbook/internal/store"
)

// dateLayout renders calendar dates in headers and summaries.
const dateLayout = "2006-01-02"

// dateOf truncates an event timestamp to its calendar date.
func dateOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// CollectDates returns the sorted, deduplicated calendar dates across all
// events of the given profiles.
func CollectDates(profiles []*store.Profile) []time.Time {
	seen := map[time.Time]bool{}
	var dates []time.Time
	for _, profile := range profiles {
		for _, evt := range profile.Events {
			day := dateOf(evt.Timestamp)
			if !seen[day] {
				seen[day] = true
				dates = append(dates, day)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// BuildMatrix maps each profile's email to the set of dates on which at
// least one event occurred. Multiple same-day events collapse to a single
// presence flag.
func BuildMatrix(profiles []*store.Profile) map[string]map[time.Time]bool {
	matrix := map[string]map[time.Time]bool{}
	for _, profile := range profiles {
		for _, evt := range profile.Events {
			days := matrix[profile.Email]
			if days == nil {
				days = map[time.Time]bool{}
				matrix[profile.Email] = days
			}
			days[dateOf(evt.Timestamp)] = true
		}
	}
	return matrix
}

// CountByDate returns, for each date, the number of distinct profiles with
// a presence flag on that date.
func CountByDate(profiles []*store.Profile) map[time.Time]int {
	counts := map[time.Time]int{}
	for _, days := range BuildMatrix(profiles) {
		for day, present := range days {
			if present {
				counts[day]++
			}
		}
	}
	return counts
}

// SortProfiles orders profiles by lower-cased name, then email.
func SortProfiles(profiles []*store.Profile) []*store.Profile {
	sorted := make([]*store.Profile, len(profiles))
	copy(sorted, profiles)
	sort.Slice(sorted, func(i, j int) bool {
		ni, nj := strings.ToLower(sorted[i].Name), strings.ToLower(sorted[j].Name)
		if ni != nj {
			return ni < nj
		}
		return sorted[i].Email < sorted[j].Email
	})
	return sorted
}

// DisplayName substitutes a placeholder for blank names.
func DisplayName(profile *store.Profile) string {
	if profile.Name == "" {
		return "(Unknown)"
	}
	return profile.Name
}

// FormatAttendanceTable renders the name/date presence matrix as a fixed
// width, pipe-separated grid with a dashed separator under the header.
func FormatAttendanceTable(profiles []*store.Profile) string {
	profiles = SortProfiles(profiles)
	if len(profiles) == 0 {
		return "No attendance data available."
	}
	dates := CollectDates(profiles)
	matrix := BuildMatrix(profiles)

	header := []string{"Name", "Email"}
	for _, day := range dates {
		header = append(header, day.Format(dateLayout))
	}
	rows := [][]string{header}

	for _, profile := range profiles {
		row := []string{DisplayName(profile), profile.Email}
		for _, day := range dates {
			if matrix[profile.Email][day] {
				row = append(row, "✓")
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for idx, value := range row {
			if n := len([]rune(value)); n > widths[idx] {
				widths[idx] = n
			}
		}
	}

	formatRow := func(row []string) string {
		cells := make([]string, len(row))
		for idx, value := range row {
			cells[idx] = value + strings.Repeat(" ", widths[idx]-len([]rune(value)))
		}
		return strings.Join(cells, " | ")
	}

	dashes := make([]string, len(widths))
	for idx, width := range widths {
		dashes[idx] = strings.Repeat("-", width)
	}

	lines := []string{formatRow(rows[0]), strings.Join(dashes, "-+-")}
	for _, row := range rows[1:] {
		lines = append(lines, formatRow(row))
	}
	return strings.Join(lines, "\n")
}
