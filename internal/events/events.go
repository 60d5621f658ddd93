package events

import (
	"encoding/json"
	"time"
)

const (
	TypeJobCreated  = "job_created"
	TypeRunFinished = "run_finished"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JobCreated formats the notification emitted for every newly stored posting.
func JobCreated(url, title, source string) string {
	return marshal(TypeJobCreated, map[string]string{
		"url":    url,
		"title":  title,
		"source": source,
	})
}

// RunFinished formats the notification emitted after an ingestion pass.
func RunFinished(summary any) string {
	return marshal(TypeRunFinished, summary)
}

func marshal(typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	b, _ := json.Marshal(Event{Type: typ, At: time.Now().UTC(), Data: raw})
	return string(b)
}
