package model

import (
	"encoding/json"
	"testing"
)

func TestPrimaryFieldResolution(t *testing.T) {
	cases := []struct {
		name   string
		data   EventData
		asset  string
		actor  string
		amount string
	}{
		{
			name:   "supply",
			data:   SupplyEventData{Reserve: "USDC", User: "0xA", Amount: "100"},
			asset:  "USDC",
			actor:  "0xA",
			amount: "100",
		},
		{
			name:   "flash loan",
			data:   FlashLoanEventData{Asset: "WETH", Initiator: "0xB", Amount: "42", Premium: "1"},
			asset:  "WETH",
			actor:  "0xB",
			amount: "42",
		},
		{
			name: "liquidation call",
			data: LiquidationCallEventData{
				CollateralAsset:            "WETH",
				DebtAsset:                  "USDC",
				User:                       "0xC",
				Liquidator:                 "0xD",
				DebtToCover:                "500",
				LiquidatedCollateralAmount: "250",
			},
			asset:  "WETH",
			actor:  "0xC",
			amount: "500",
		},
		{
			name:   "swap",
			data:   SwapEventData{TokenIn: "DAI", TokenOut: "USDT", Sender: "0xE", Recipient: "0xF", AmountIn: "7", AmountOut: "6"},
			asset:  "DAI",
			actor:  "0xE",
			amount: "7",
		},
	}

	for _, tc := range cases {
		if got := tc.data.PrimaryAsset(); got != tc.asset {
			t.Fatalf("%s: primary asset %q != %q", tc.name, got, tc.asset)
		}
		if got := tc.data.PrimaryActor(); got != tc.actor {
			t.Fatalf("%s: primary actor %q != %q", tc.name, got, tc.actor)
		}
		if got := tc.data.PrimaryAmount(); got != tc.amount {
			t.Fatalf("%s: primary amount %q != %q", tc.name, got, tc.amount)
		}
	}
}

func TestLiquidationCrossFieldValues(t *testing.T) {
	data := LiquidationCallEventData{
		CollateralAsset: "WETH",
		DebtAsset:       "USDC",
		User:            "0xC",
		Liquidator:      "0xD",
	}

	assets := data.Assets()
	if len(assets) != 2 || assets[0] != "WETH" || assets[1] != "USDC" {
		t.Fatalf("assets mismatch: %v", assets)
	}

	actors := data.Actors()
	if len(actors) != 2 || actors[0] != "0xC" || actors[1] != "0xD" {
		t.Fatalf("actors mismatch: %v", actors)
	}
}

func TestEventMarshalPreservesUnmodeledFields(t *testing.T) {
	raw := []byte(`{"eventType":"Supply","reserve":"USDC","user":"0xA","amount":"100","customTag":"keep-me"}`)

	event := Event{
		Kind:      KindSupply,
		EntityKey: "entity-1",
		Raw:       raw,
		Data:      SupplyEventData{Reserve: "USDC", User: "0xA", Amount: "100"},
	}

	out, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["customTag"] != "keep-me" {
		t.Fatalf("unmodeled field dropped: %v", decoded)
	}
	if decoded["entityKey"] != "entity-1" {
		t.Fatalf("entity key missing: %v", decoded)
	}
	if decoded["amount"] != "100" {
		t.Fatalf("amount should stay a string: %v", decoded["amount"])
	}
}
