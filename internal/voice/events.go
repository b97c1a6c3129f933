package voice

import (
	"encoding/json"
	"fmt"
)

// Events pushed by the voice collaborator over the session channel. The
// transport (websocket) only decodes; the session runner drains typed values
// from a channel instead of registering callbacks.
type EventType string

const (
	EventCallStart   EventType = "call-start"
	EventCallEnd     EventType = "call-end"
	EventTranscript  EventType = "transcript"
	EventSpeechStart EventType = "speech-start"
	EventSpeechEnd   EventType = "speech-end"
	EventError       EventType = "error"
)

type Event struct {
	Type EventType `json:"type"`

	// transcript events
	Role       string `json:"role,omitempty"` // interviewer|candidate
	Transcript string `json:"transcript,omitempty"`
	Final      bool   `json:"final,omitempty"`

	// error events
	Message string `json:"message,omitempty"`
}

func ParseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	switch ev.Type {
	case EventCallStart, EventCallEnd, EventSpeechStart, EventSpeechEnd, EventError:
		return ev, nil
	case EventTranscript:
		if ev.Role == "" || ev.Transcript == "" {
			return Event{}, fmt.Errorf("transcript event missing role or transcript")
		}
		return ev, nil
	default:
		return Event{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
}
