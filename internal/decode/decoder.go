// Package decode turns entity envelopes into typed protocol events.
// Decoding is pure and performs no I/O.
package decode

import (
	"encoding/json"
	"fmt"
	"time"

	"arkivscope/internal/model"
)

// entityTypeProtocolEvent is the only entity type this decoder accepts.
// The service also stores aggregated_metric and price_snapshot entities.
const entityTypeProtocolEvent = "protocol_event"

type header struct {
	EntityType  string `json:"entityType"`
	EventType   string `json:"eventType"`
	Protocol    string `json:"protocol"`
	Network     string `json:"network"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Timestamp   string `json:"timestamp"`
}

// Entity decodes an envelope payload into a typed Event. It fails with a
// *model.DecodeError when the payload is not valid JSON, the discriminator
// is missing, or the discriminator names no known variant. The full payload
// is preserved on the event for forward compatibility.
func Entity(env model.Envelope) (model.Event, error) {
	if len(env.Payload) == 0 {
		return model.Event{}, &model.DecodeError{EntityKey: env.Key, Reason: "empty payload"}
	}

	var head header
	if err := json.Unmarshal(env.Payload, &head); err != nil {
		return model.Event{}, &model.DecodeError{EntityKey: env.Key, Reason: fmt.Sprintf("invalid json: %v", err)}
	}
	if head.EntityType != "" && head.EntityType != entityTypeProtocolEvent {
		return model.Event{}, &model.DecodeError{EntityKey: env.Key, Reason: fmt.Sprintf("unexpected entity type: %s", head.EntityType)}
	}
	if head.EventType == "" {
		return model.Event{}, &model.DecodeError{EntityKey: env.Key, Reason: "missing eventType"}
	}

	data, err := decodeVariant(model.EventKind(head.EventType), env.Payload)
	if err != nil {
		return model.Event{}, &model.DecodeError{EntityKey: env.Key, Reason: err.Error()}
	}

	raw := make(json.RawMessage, len(env.Payload))
	copy(raw, env.Payload)

	return model.Event{
		Kind:        data.Kind(),
		Protocol:    head.Protocol,
		Network:     head.Network,
		TxHash:      head.TxHash,
		BlockNumber: head.BlockNumber,
		Timestamp:   parseTimestamp(head.Timestamp),
		EntityKey:   env.Key,
		Raw:         raw,
		Data:        data,
	}, nil
}

// Entities decodes a batch, dropping entities that fail to decode and
// returning their failures alongside the successes.
func Entities(envs []model.Envelope) ([]model.Event, []model.DecodeError) {
	events := make([]model.Event, 0, len(envs))
	var failures []model.DecodeError
	for _, env := range envs {
		event, err := Entity(env)
		if err != nil {
			if decodeErr, ok := err.(*model.DecodeError); ok {
				failures = append(failures, *decodeErr)
			} else {
				failures = append(failures, model.DecodeError{EntityKey: env.Key, Reason: err.Error()})
			}
			continue
		}
		events = append(events, event)
	}
	return events, failures
}

func decodeVariant(kind model.EventKind, payload []byte) (model.EventData, error) {
	switch kind {
	case model.KindSupply:
		var data model.SupplyEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode supply: %w", err)
		}
		return data, nil
	case model.KindBorrow:
		var data model.BorrowEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode borrow: %w", err)
		}
		return data, nil
	case model.KindWithdraw:
		var data model.WithdrawEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode withdraw: %w", err)
		}
		return data, nil
	case model.KindRepay:
		var data model.RepayEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode repay: %w", err)
		}
		return data, nil
	case model.KindFlashLoan:
		var data model.FlashLoanEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode flash loan: %w", err)
		}
		return data, nil
	case model.KindLiquidationCall:
		var data model.LiquidationCallEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode liquidation call: %w", err)
		}
		return data, nil
	case model.KindSwap:
		var data model.SwapEventData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil, fmt.Errorf("decode swap: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported event type: %s", kind)
	}
}

// parseTimestamp accepts RFC3339 and returns the zero time on failure.
// Time-range filtering treats a zero timestamp as out of range.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
