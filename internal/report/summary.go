package report

import (
	"rollbook/internal/store"
)

// summaryTimeLayout renders event timestamps in dashboard summaries.
const summaryTimeLayout = "2006-01-02 15:04"

// SummaryEvent is one attendance event in a dashboard summary.
type SummaryEvent struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// SummaryProfile is one table row in a dashboard summary. Flags aligns
// with the summary's date list.
type SummaryProfile struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Flags      []bool         `json:"flags"`
	EventCount int            `json:"event_count"`
	Events     []SummaryEvent `json:"events"`
}

// DateCount is the attendance count for one date.
type DateCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the derived view served by the dashboard API.
type Summary struct {
	Profiles      []SummaryProfile `json:"profiles"`
	Dates         []string         `json:"dates"`
	Counts        []DateCount      `json:"counts"`
	TotalProfiles int              `json:"total_profiles"`
}

// BuildSummary derives the dashboard view from a snapshot of profiles.
func BuildSummary(profiles []*store.Profile) Summary {
	profiles = SortProfiles(profiles)
	dates := CollectDates(profiles)
	matrix := BuildMatrix(profiles)

	labels := make([]string, len(dates))
	for idx, day := range dates {
		labels[idx] = day.Format(dateLayout)
	}

	rows := make([]SummaryProfile, 0, len(profiles))
	for _, profile := range profiles {
		flags := make([]bool, len(dates))
		for idx, day := range dates {
			flags[idx] = matrix[profile.Email][day]
		}
		events := make([]SummaryEvent, 0, len(profile.Events))
		for _, evt := range profile.Events {
			events = append(events, SummaryEvent{
				Timestamp: evt.Timestamp.Format(summaryTimeLayout),
				Source:    evt.Source,
			})
		}
		rows = append(rows, SummaryProfile{
			Name:       DisplayName(profile),
			Email:      profile.Email,
			Flags:      flags,
			EventCount: len(profile.Events),
			Events:     events,
		})
	}

	counts := make([]DateCount, 0, len(dates))
	byDate := CountByDate(profiles)
	for idx, day := range dates {
		counts = append(counts, DateCount{Label: labels[idx], Count: byDate[day]})
	}

	return Summary{
		Profiles:      rows,
		Dates:         labels,
		Counts:        counts,
		TotalProfiles: len(profiles),
	}
}
