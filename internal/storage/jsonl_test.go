package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"arkivscope/internal/model"
)

func TestPutEventBatchAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "events.jsonl")
	store := NewJsonlStorage(path)

	first := model.Event{
		EntityKey: "e1",
		Raw:       json.RawMessage(`{"eventType":"Supply","amount":"100","referralCode":7}`),
	}
	second := model.Event{
		EntityKey: "e2",
		Raw:       json.RawMessage(`{"eventType":"Withdraw","amount":"50"}`),
	}

	if err := store.PutEventBatch([]model.Event{first}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := store.PutEventBatch([]model.Event{second}); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var fields map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &fields); err != nil {
			t.Fatalf("line %d: %v", len(lines)+1, err)
		}
		lines = append(lines, fields)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["entityKey"] != "e1" || lines[1]["entityKey"] != "e2" {
		t.Fatalf("entity keys not preserved: %v", lines)
	}
	if lines[0]["referralCode"] != float64(7) {
		t.Fatalf("payload field lost: %v", lines[0])
	}
}

func TestPutEventBatchEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	store := NewJsonlStorage(path)

	if err := store.PutEventBatch(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch must not create the file")
	}
}
