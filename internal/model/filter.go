package model

import "time"

// DefaultLimit caps result counts when a filter does not specify one.
const DefaultLimit = 100

// Filter is a conjunctive predicate set over decoded events. An unset
// dimension matches everything. Amount bounds are decimal-string integers
// and are compared with arbitrary precision.
type Filter struct {
	Kind       string    `json:"eventType,omitempty"`
	Protocol   string    `json:"protocol,omitempty"`
	Asset      string    `json:"asset,omitempty"`
	Actor      string    `json:"user,omitempty"`
	TxHash     string    `json:"txHash,omitempty"`
	MinAmount  string    `json:"minAmount,omitempty"`
	MaxAmount  string    `json:"maxAmount,omitempty"`
	From       time.Time `json:"startDate,omitempty"`
	To         time.Time `json:"endDate,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	SortByTime bool      `json:"sortByTime,omitempty"`
}

// EffectiveLimit returns the configured limit or DefaultLimit.
func (f Filter) EffectiveLimit() int {
	if f.Limit > 0 {
		return f.Limit
	}
	return DefaultLimit
}
