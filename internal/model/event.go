package model

import (
	"encoding/json"
	"time"
)

// Event is a decoded protocol event enriched with its entity key.
// Raw carries the full original payload so fields that are not modeled
// here survive a round trip unchanged.
type Event struct {
	Kind        EventKind       `json:"eventType"`
	Protocol    string          `json:"protocol"`
	Network     string          `json:"network,omitempty"`
	TxHash      string          `json:"txHash"`
	BlockNumber uint64          `json:"blockNumber"`
	Timestamp   time.Time       `json:"timestamp"`
	EntityKey   string          `json:"entityKey"`
	Raw         json.RawMessage `json:"-"`
	Data        EventData       `json:"-"`
}

// PrimaryAsset resolves the single asset value for the event.
func (e Event) PrimaryAsset() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.PrimaryAsset()
}

// PrimaryActor resolves the single actor value for the event.
func (e Event) PrimaryActor() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.PrimaryActor()
}

// PrimaryAmount resolves the event's primary on-chain amount as a
// decimal string.
func (e Event) PrimaryAmount() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.PrimaryAmount()
}

// Assets lists every asset-bearing value of the event.
func (e Event) Assets() []string {
	if e.Data == nil {
		return nil
	}
	return e.Data.Assets()
}

// Actors lists every actor-bearing value of the event.
func (e Event) Actors() []string {
	if e.Data == nil {
		return nil
	}
	return e.Data.Actors()
}

// MarshalJSON emits the original payload with the entity key spliced in,
// so unmodeled payload fields pass through to API consumers.
func (e Event) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	if len(e.Raw) > 0 {
		if err := json.Unmarshal(e.Raw, &fields); err != nil {
			return nil, err
		}
	}

	key, err := json.Marshal(e.EntityKey)
	if err != nil {
		return nil, err
	}
	fields["entityKey"] = key

	return json.Marshal(fields)
}
