package stats

import (
	"math/big"
	"strings"
	"testing"

	"arkivscope/internal/model"
)

func supply(asset, actor, amount string) model.Event {
	return model.Event{
		Kind:     model.KindSupply,
		Protocol: model.ProtocolAaveV3,
		Data:     model.SupplyEventData{Reserve: asset, User: actor, Amount: amount},
	}
}

func withdraw(asset, actor, amount string) model.Event {
	return model.Event{
		Kind:     model.KindWithdraw,
		Protocol: model.ProtocolAaveV3,
		Data:     model.WithdrawEventData{Reserve: asset, User: actor, Amount: amount},
	}
}

func TestCalculateScenario(t *testing.T) {
	events := []model.Event{
		supply("USDC", "0xA", "100"),
		supply("USDC", "0xB", "200"),
		withdraw("USDC", "0xA", "50"),
	}

	stats := Calculate(events)

	if stats.TotalEvents != 3 {
		t.Fatalf("total events: %d", stats.TotalEvents)
	}
	if stats.EventsByType["Supply"] != 2 || stats.EventsByType["Withdraw"] != 1 {
		t.Fatalf("events by type: %+v", stats.EventsByType)
	}
	if stats.TotalVolume["USDC"] != "350" {
		t.Fatalf("volume: %+v", stats.TotalVolume)
	}
	if stats.UniqueUsers != 2 {
		t.Fatalf("unique users: %d", stats.UniqueUsers)
	}
	if stats.ProtocolBreakdown[model.ProtocolAaveV3] != 3 {
		t.Fatalf("protocol breakdown: %+v", stats.ProtocolBreakdown)
	}
	if len(stats.RecentEvents) != 3 {
		t.Fatalf("recent events: %d", len(stats.RecentEvents))
	}
}

func TestCalculateEmptyInput(t *testing.T) {
	stats := Calculate(nil)
	if stats.TotalEvents != 0 || stats.UniqueUsers != 0 {
		t.Fatalf("expected zero counts: %+v", stats)
	}
	if len(stats.EventsByType) != 0 || len(stats.TotalVolume) != 0 {
		t.Fatalf("expected empty mappings: %+v", stats)
	}
}

func TestSumsAreExact(t *testing.T) {
	events := []model.Event{
		supply("WETH", "0xA", "1000000000000000001"),
		supply("WETH", "0xB", "1000000000000000001"),
		supply("WETH", "0xC", "1000000000000000001"),
	}

	volume := VolumeByAsset(events)
	if volume["WETH"] != "3000000000000000003" {
		t.Fatalf("sum not exact: %s", volume["WETH"])
	}
}

func TestSumOfOneEtherTimesN(t *testing.T) {
	const n = 25
	events := make([]model.Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, supply("WETH", "0xA", "1000000000000000000"))
	}

	want := new(big.Int).Mul(
		big.NewInt(n),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
	)
	if got := VolumeByAsset(events)["WETH"]; got != want.String() {
		t.Fatalf("sum mismatch: %s != %s", got, want)
	}
}

func TestLiquidationContributesBothLegs(t *testing.T) {
	events := []model.Event{
		{
			Kind: model.KindLiquidationCall,
			Data: model.LiquidationCallEventData{
				CollateralAsset:            "WETH",
				DebtAsset:                  "USDC",
				User:                       "0xC",
				Liquidator:                 "0xD",
				DebtToCover:                "500",
				LiquidatedCollateralAmount: "250",
			},
		},
	}

	volume := VolumeByAsset(events)
	if volume["WETH"] != "250" || volume["USDC"] != "500" {
		t.Fatalf("liquidation legs: %+v", volume)
	}

	stats := Calculate(events)
	if stats.UniqueUsers != 2 {
		t.Fatalf("liquidator should count as an actor: %d", stats.UniqueUsers)
	}
}

func TestUnparsableAmountSkipped(t *testing.T) {
	events := []model.Event{
		supply("USDC", "0xA", "100"),
		supply("USDC", "0xB", "not-a-number"),
	}

	volume := VolumeByAsset(events)
	if volume["USDC"] != "100" {
		t.Fatalf("bad amount should be skipped: %+v", volume)
	}
}

func TestDistributionPercentagesSumToHundred(t *testing.T) {
	events := []model.Event{
		supply("USDC", "0xA", "1"),
		supply("USDC", "0xA", "1"),
		withdraw("USDC", "0xA", "1"),
	}

	dist := DistributionBy(events, ByKind)
	if dist.Total != 3 {
		t.Fatalf("total: %d", dist.Total)
	}
	if dist.Percentages["Supply"] != "66.7%" {
		t.Fatalf("supply share: %s", dist.Percentages["Supply"])
	}
	if dist.Percentages["Withdraw"] != "33.3%" {
		t.Fatalf("withdraw share: %s", dist.Percentages["Withdraw"])
	}

	sum := new(big.Rat)
	for _, pct := range dist.Percentages {
		value, ok := new(big.Rat).SetString(strings.TrimSuffix(pct, "%"))
		if !ok {
			t.Fatalf("bad percentage: %s", pct)
		}
		sum.Add(sum, value)
	}

	hundred := new(big.Rat).SetInt64(100)
	diff := new(big.Rat).Sub(sum, hundred)
	diff.Abs(diff)
	// One rounding step per group, so at most 0.05 each.
	tolerance := new(big.Rat).SetFrac64(1, 10)
	if diff.Cmp(tolerance) > 0 {
		t.Fatalf("percentages sum %s too far from 100", sum.FloatString(3))
	}
}

func TestDistributionEmptyInput(t *testing.T) {
	dist := DistributionBy(nil, ByKind)
	if dist.Total != 0 || len(dist.Counts) != 0 || len(dist.Percentages) != 0 {
		t.Fatalf("expected empty distribution: %+v", dist)
	}
}

func TestCountByOmitsZeroGroups(t *testing.T) {
	counts := CountBy([]model.Event{supply("USDC", "0xA", "1")}, ByKind)
	if len(counts) != 1 {
		t.Fatalf("zero groups must be absent: %+v", counts)
	}
}

func TestAverageAmountScaledByAssetDecimals(t *testing.T) {
	// USDC has 6 decimals: (1.0 + 2.0) / 2 = 1.50.
	events := []model.Event{
		supply("USDC", "0xA", "1000000"),
		supply("USDC", "0xB", "2000000"),
	}

	averages := AverageAmountByAsset(events)
	if averages["USDC"] != "1.50" {
		t.Fatalf("average: %s", averages["USDC"])
	}
}

func TestAverageUSDSize(t *testing.T) {
	events := []model.Event{
		supply("USDC", "0xA", "1"),
		supply("USDC", "0xB", "1"),
	}
	events[0].Data = model.SupplyEventData{Reserve: "USDC", User: "0xA", Amount: "1", AmountUSD: "10.00"}
	events[1].Data = model.SupplyEventData{Reserve: "USDC", User: "0xB", Amount: "1", AmountUSD: "15.01"}

	avg, ok := AverageUSDSize(events)
	if !ok {
		t.Fatalf("expected an average")
	}
	if avg.String() != "12.51" {
		t.Fatalf("usd average: %s", avg)
	}

	if _, ok := AverageUSDSize(nil); ok {
		t.Fatalf("empty input should report no average")
	}
}
