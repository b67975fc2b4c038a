package events

import (
	"encoding/json"
	"time"
)

// Event types published over the SSE stream.
const (
	TypeLeadCreated  = "lead_created"
	TypeLeadTagged   = "lead_tagged"
	TypePollFinished = "poll_finished"
	TypePing         = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent serializes one event for the wire. A payload that fails to
// marshal degrades to an event without data rather than dropping it.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
