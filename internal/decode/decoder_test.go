package decode

import (
	"errors"
	"testing"
	"time"

	"arkivscope/internal/model"
)

func TestEntityDecodesSupply(t *testing.T) {
	payload := []byte(`{
		"entityType": "protocol_event",
		"eventType": "Supply",
		"protocol": "aave-v3",
		"network": "mainnet",
		"reserve": "USDC",
		"user": "0x1111111111111111111111111111111111111111",
		"amount": "1000000",
		"txHash": "0xabc",
		"blockNumber": 123,
		"timestamp": "2024-05-01T12:00:00Z"
	}`)

	event, err := Entity(model.Envelope{Key: "k1", Payload: payload})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if event.Kind != model.KindSupply {
		t.Fatalf("kind mismatch: %s", event.Kind)
	}
	if event.Protocol != model.ProtocolAaveV3 {
		t.Fatalf("protocol mismatch: %s", event.Protocol)
	}
	if event.EntityKey != "k1" {
		t.Fatalf("entity key mismatch: %s", event.EntityKey)
	}
	if event.BlockNumber != 123 {
		t.Fatalf("block number mismatch: %d", event.BlockNumber)
	}

	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if !event.Timestamp.Equal(want) {
		t.Fatalf("timestamp mismatch: %s", event.Timestamp)
	}

	supply, ok := event.Data.(model.SupplyEventData)
	if !ok {
		t.Fatalf("decoded type mismatch: %T", event.Data)
	}
	if supply.Reserve != "USDC" || supply.Amount != "1000000" {
		t.Fatalf("payload mismatch: %+v", supply)
	}
}

func TestEntityDecodesSwap(t *testing.T) {
	payload := []byte(`{
		"eventType": "Swap",
		"protocol": "uniswap-v3",
		"tokenIn": "WETH",
		"tokenOut": "USDC",
		"sender": "0xA",
		"recipient": "0xB",
		"amountIn": "1000000000000000000",
		"amountOut": "3000000000",
		"txHash": "0xdef"
	}`)

	event, err := Entity(model.Envelope{Key: "k2", Payload: payload})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	swap, ok := event.Data.(model.SwapEventData)
	if !ok {
		t.Fatalf("decoded type mismatch: %T", event.Data)
	}
	if swap.TokenIn != "WETH" || swap.AmountIn != "1000000000000000000" {
		t.Fatalf("payload mismatch: %+v", swap)
	}
	if event.PrimaryActor() != "0xA" {
		t.Fatalf("primary actor mismatch: %s", event.PrimaryActor())
	}
}

func TestEntityRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{"empty payload", nil},
		{"invalid json", []byte(`{not json`)},
		{"missing discriminator", []byte(`{"protocol":"aave-v3","amount":"1"}`)},
		{"unknown kind", []byte(`{"eventType":"Teleport"}`)},
		{"wrong entity type", []byte(`{"entityType":"price_snapshot","eventType":"Supply"}`)},
	}

	for _, tc := range cases {
		_, err := Entity(model.Envelope{Key: "bad", Payload: tc.payload})
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var decodeErr *model.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("%s: expected DecodeError, got %T", tc.name, err)
		}
		if decodeErr.EntityKey != "bad" {
			t.Fatalf("%s: entity key mismatch: %s", tc.name, decodeErr.EntityKey)
		}
	}
}

func TestEntityPreservesRawPayload(t *testing.T) {
	payload := []byte(`{"eventType":"Withdraw","reserve":"DAI","user":"0xA","amount":"5","futureField":true}`)

	event, err := Entity(model.Envelope{Key: "k3", Payload: payload})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(event.Raw) != string(payload) {
		t.Fatalf("raw payload mutated: %s", event.Raw)
	}
}

func TestEntitiesDropsFailuresAndKeepsOrder(t *testing.T) {
	envs := []model.Envelope{
		{Key: "a", Payload: []byte(`{"eventType":"Supply","reserve":"USDC","user":"0xA","amount":"1"}`)},
		{Key: "b", Payload: []byte(`broken`)},
		{Key: "c", Payload: []byte(`{"eventType":"Withdraw","reserve":"USDC","user":"0xB","amount":"2"}`)},
	}

	events, failures := Entities(envs)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EntityKey != "a" || events[1].EntityKey != "c" {
		t.Fatalf("order not preserved: %s, %s", events[0].EntityKey, events[1].EntityKey)
	}
	if len(failures) != 1 || failures[0].EntityKey != "b" {
		t.Fatalf("failures mismatch: %+v", failures)
	}
}

func TestEntityToleratesBadTimestamp(t *testing.T) {
	payload := []byte(`{"eventType":"Supply","reserve":"USDC","user":"0xA","amount":"1","timestamp":"yesterday"}`)

	event, err := Entity(model.Envelope{Key: "k4", Payload: payload})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !event.Timestamp.IsZero() {
		t.Fatalf("expected zero timestamp, got %s", event.Timestamp)
	}
}
