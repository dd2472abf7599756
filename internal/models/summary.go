package models

// DailySummary is the aggregate usage report returned by the stats endpoint.
type DailySummary struct {
	Summaries []SummaryEntry `json:"summaries"`
	Timezone  string         `json:"timezone"`
}

// SummaryEntry holds the totals for a single day.
type SummaryEntry struct {
	Date         string       `json:"date"`
	TotalSeconds uint64       `json:"totalSeconds"`
	HourlyData   []HourlyData `json:"hourlyData,omitempty"`
}

// HourlyData is the per-hour breakdown inside a summary entry.
type HourlyData struct {
	Seconds uint64 `json:"seconds"`
}
