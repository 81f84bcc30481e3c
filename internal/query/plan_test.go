package query

import (
	"testing"

	"arkivscope/internal/arkiv"
	"arkivscope/internal/model"
)

func TestPlanClausePriority(t *testing.T) {
	cases := []struct {
		name   string
		filter model.Filter
		want   arkiv.Clause
	}{
		{
			name: "tx hash beats everything",
			filter: model.Filter{
				TxHash: "0xabc", Kind: "Supply", Actor: "0xA", Asset: "USDC",
			},
			want: arkiv.Clause{Key: "txHash", Value: "0xabc"},
		},
		{
			name:   "kind beats actor and asset",
			filter: model.Filter{Kind: "Supply", Actor: "0xA", Asset: "USDC"},
			want:   arkiv.Clause{Key: "eventType", Value: "Supply"},
		},
		{
			name:   "actor beats asset",
			filter: model.Filter{Actor: "0xA", Asset: "USDC"},
			want:   arkiv.Clause{Key: "user", Value: "0xA"},
		},
		{
			name:   "asset alone",
			filter: model.Filter{Asset: "USDC"},
			want:   arkiv.Clause{Key: "reserve", Value: "USDC"},
		},
		{
			name:   "protocol alone",
			filter: model.Filter{Protocol: model.ProtocolUniswapV3},
			want:   arkiv.Clause{Key: "protocol", Value: "uniswap-v3"},
		},
		{
			name:   "empty filter defaults to aave",
			filter: model.Filter{},
			want:   arkiv.Clause{Key: "protocol", Value: "aave-v3"},
		},
	}

	for _, tc := range cases {
		if got := PlanClause(tc.filter); got != tc.want {
			t.Fatalf("%s: %+v != %+v", tc.name, got, tc.want)
		}
	}
}
