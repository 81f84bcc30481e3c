package storage

import "arkivscope/internal/model"

// EventSink is a destination for decoded events.
type EventSink interface {
	PutEventBatch(events []model.Event) error
}
