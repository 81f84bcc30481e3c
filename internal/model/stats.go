package model

// EventStats is the aggregate view over a set of protocol events.
// Volume figures are exact big-integer sums encoded as decimal strings.
type EventStats struct {
	TotalEvents       int               `json:"totalEvents"`
	EventsByType      map[string]int    `json:"eventsByType"`
	TotalVolume       map[string]string `json:"totalVolume"`
	UniqueUsers       int               `json:"uniqueUsers"`
	ProtocolBreakdown map[string]int    `json:"protocolBreakdown,omitempty"`
	RecentEvents      []Event           `json:"recentEvents"`
}

// Distribution maps group keys to counts and percentage-of-total shares.
// Percentages are decimal strings with one fractional digit, e.g. "42.3%".
type Distribution struct {
	Counts      map[string]int    `json:"counts"`
	Percentages map[string]string `json:"percentages"`
	Total       int               `json:"total"`
}
