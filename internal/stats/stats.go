// Package stats computes grouped counts, exact big-integer volume sums,
// and derived ratios over decoded protocol events.
package stats

import (
	"math/big"

	"github.com/shopspring/decimal"

	"arkivscope/internal/model"
)

// recentEventCount is how many leading events a stats result retains.
const recentEventCount = 10

// GroupKey extracts a grouping key from an event. Events yielding an
// empty key are left out of the group mapping.
type GroupKey func(model.Event) string

// ByKind groups events by their discriminator.
func ByKind(event model.Event) string { return string(event.Kind) }

// ByAsset groups events by their primary asset.
func ByAsset(event model.Event) string { return event.PrimaryAsset() }

// ByActor groups events by their primary actor.
func ByActor(event model.Event) string { return event.PrimaryActor() }

// CountBy counts events per group key. Groups with zero matches are
// absent from the result, and empty input yields an empty map.
func CountBy(events []model.Event, key GroupKey) map[string]int {
	counts := make(map[string]int)
	for _, event := range events {
		k := key(event)
		if k == "" {
			continue
		}
		counts[k]++
	}
	return counts
}

// SumBy sums each event's primary amount per group key using arbitrary
// precision integers. Events with unparsable amounts are skipped.
func SumBy(events []model.Event, key GroupKey) map[string]string {
	sums := make(map[string]*big.Int)
	for _, event := range events {
		k := key(event)
		if k == "" {
			continue
		}
		amount, ok := new(big.Int).SetString(event.PrimaryAmount(), 10)
		if !ok {
			continue
		}
		addTo(sums, k, amount)
	}
	return stringify(sums)
}

// Calculate produces the aggregate statistics for a set of events: counts
// per kind, exact per-asset volume sums over every volume-bearing field,
// the distinct-actor count across all actor fields, a per-protocol
// breakdown, and the first recent events. Empty input yields zero counts
// and empty mappings, not an error.
func Calculate(events []model.Event) model.EventStats {
	stats := model.EventStats{
		TotalEvents:       len(events),
		EventsByType:      make(map[string]int),
		ProtocolBreakdown: make(map[string]int),
		RecentEvents:      recent(events),
	}

	actors := make(map[string]struct{})
	volumes := make(map[string]*big.Int)

	for _, event := range events {
		stats.EventsByType[string(event.Kind)]++
		if event.Protocol != "" {
			stats.ProtocolBreakdown[event.Protocol]++
		}

		for _, actor := range event.Actors() {
			if actor != "" {
				actors[actor] = struct{}{}
			}
		}

		if event.Data == nil {
			continue
		}
		for _, contribution := range event.Data.VolumeContributions() {
			if contribution.Asset == "" {
				continue
			}
			amount, ok := new(big.Int).SetString(contribution.Amount, 10)
			if !ok {
				continue
			}
			addTo(volumes, contribution.Asset, amount)
		}
	}

	stats.UniqueUsers = len(actors)
	stats.TotalVolume = stringify(volumes)
	return stats
}

// VolumeByAsset sums every volume contribution per asset as exact
// big-integer decimal strings.
func VolumeByAsset(events []model.Event) map[string]string {
	volumes := make(map[string]*big.Int)
	for _, event := range events {
		if event.Data == nil {
			continue
		}
		for _, contribution := range event.Data.VolumeContributions() {
			if contribution.Asset == "" {
				continue
			}
			amount, ok := new(big.Int).SetString(contribution.Amount, 10)
			if !ok {
				continue
			}
			addTo(volumes, contribution.Asset, amount)
		}
	}
	return stringify(volumes)
}

// DistributionBy counts events per group and derives each group's share of
// the total as a percentage with one fractional digit. The shares are
// computed with rational arithmetic over group count and total count.
func DistributionBy(events []model.Event, key GroupKey) model.Distribution {
	counts := CountBy(events, key)

	total := 0
	for _, count := range counts {
		total += count
	}

	percentages := make(map[string]string, len(counts))
	for k, count := range counts {
		share := new(big.Rat).SetFrac64(int64(count)*100, int64(total))
		percentages[k] = share.FloatString(1) + "%"
	}

	return model.Distribution{
		Counts:      counts,
		Percentages: percentages,
		Total:       total,
	}
}

// AverageAmountByAsset divides each asset's exact volume sum by its event
// count, scaled down by the asset's fixed-point decimals, with two
// fractional digits. Division uses rational arithmetic; large integers are
// never pushed through binary floating point.
func AverageAmountByAsset(events []model.Event) map[string]string {
	sums := make(map[string]*big.Int)
	counts := make(map[string]int64)

	for _, event := range events {
		asset := event.PrimaryAsset()
		if asset == "" {
			continue
		}
		amount, ok := new(big.Int).SetString(event.PrimaryAmount(), 10)
		if !ok {
			continue
		}
		addTo(sums, asset, amount)
		counts[asset]++
	}

	averages := make(map[string]string, len(sums))
	for asset, sum := range sums {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(AssetDecimals(asset))), nil)
		denom := new(big.Int).Mul(scale, big.NewInt(counts[asset]))
		averages[asset] = new(big.Rat).SetFrac(sum, denom).FloatString(2)
	}
	return averages
}

// AverageUSDSize averages the USD-denominated size over events that carry
// one, rounded to two decimal places. USD figures are decimal strings, not
// fixed-point integers, so they go through decimal arithmetic.
func AverageUSDSize(events []model.Event) (decimal.Decimal, bool) {
	sum := decimal.Zero
	count := int64(0)
	for _, event := range events {
		if event.Data == nil {
			continue
		}
		value, err := decimal.NewFromString(event.Data.PrimaryAmountUSD())
		if err != nil {
			continue
		}
		sum = sum.Add(value)
		count++
	}
	if count == 0 {
		return decimal.Zero, false
	}
	return sum.DivRound(decimal.NewFromInt(count), 2), true
}

func recent(events []model.Event) []model.Event {
	if len(events) <= recentEventCount {
		return append([]model.Event(nil), events...)
	}
	return append([]model.Event(nil), events[:recentEventCount]...)
}

func addTo(sums map[string]*big.Int, key string, amount *big.Int) {
	if existing, ok := sums[key]; ok {
		existing.Add(existing, amount)
		return
	}
	sums[key] = new(big.Int).Set(amount)
}

func stringify(sums map[string]*big.Int) map[string]string {
	out := make(map[string]string, len(sums))
	for k, v := range sums {
		out[k] = v.String()
	}
	return out
}
