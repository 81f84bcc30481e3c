// Package filter evaluates conjunctive predicate sets over decoded events.
// It exists to compensate for the query service accepting only a single
// server-side equality clause: every other dimension is matched here.
package filter

import (
	"math/big"
	"sort"

	"arkivscope/internal/model"
)

// Apply returns the subsequence of events matching every set dimension of
// the filter, in decoded input order unless the filter requests a stable
// sort by timestamp descending. The limit is applied strictly after
// filtering and sorting. A record that cannot be evaluated (for example an
// unparsable amount under an amount bound) is excluded, never propagated.
func Apply(events []model.Event, f model.Filter) []model.Event {
	matched := make([]model.Event, 0, len(events))
	for _, event := range events {
		if Match(event, f) {
			matched = append(matched, event)
		}
	}

	if f.SortByTime {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		})
	}

	if limit := f.EffectiveLimit(); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// Match reports whether a single event satisfies the filter. A set
// transaction hash short-circuits all other predicates: it is already
// maximally selective.
func Match(event model.Event, f model.Filter) bool {
	if f.TxHash != "" {
		return event.TxHash == f.TxHash
	}

	if f.Kind != "" && string(event.Kind) != f.Kind {
		return false
	}
	if f.Protocol != "" && event.Protocol != f.Protocol {
		return false
	}
	if f.Asset != "" && !matchAny(event.Assets(), f.Asset) {
		return false
	}
	if f.Actor != "" && !matchAny(event.Actors(), f.Actor) {
		return false
	}
	if !matchAmount(event, f.MinAmount, f.MaxAmount) {
		return false
	}
	if !matchTime(event, f) {
		return false
	}
	return true
}

// matchAny is the OR across differently-named fields within one AND-ed
// dimension. Matching is case-sensitive exact.
func matchAny(values []string, target string) bool {
	for _, value := range values {
		if value != "" && value == target {
			return true
		}
	}
	return false
}

// matchAmount compares the event's primary amount against inclusive
// decimal-string bounds using big integers. An unparsable amount under any
// set bound fails closed.
func matchAmount(event model.Event, minAmount, maxAmount string) bool {
	if minAmount == "" && maxAmount == "" {
		return true
	}

	amount, ok := new(big.Int).SetString(event.PrimaryAmount(), 10)
	if !ok {
		return false
	}

	if minAmount != "" {
		min, ok := new(big.Int).SetString(minAmount, 10)
		if !ok {
			return false
		}
		if amount.Cmp(min) < 0 {
			return false
		}
	}
	if maxAmount != "" {
		max, ok := new(big.Int).SetString(maxAmount, 10)
		if !ok {
			return false
		}
		if amount.Cmp(max) > 0 {
			return false
		}
	}
	return true
}

func matchTime(event model.Event, f model.Filter) bool {
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}
	if event.Timestamp.IsZero() {
		return false
	}
	if !f.From.IsZero() && event.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && event.Timestamp.After(f.To) {
		return false
	}
	return true
}
