package model

import "fmt"

// DecodeError records a decode failure for a single entity.
type DecodeError struct {
	EntityKey string `json:"entity_key"`
	Reason    string `json:"reason"`
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode entity %s: %s", e.EntityKey, e.Reason)
}
