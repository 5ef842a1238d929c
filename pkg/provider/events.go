package provider

// Event is the interface for all stream event types.
type Event interface {
	eventType() EventType
}

// EventType identifies the kind of stream event.
type EventType string

const (
	EventTypeChunk  EventType = "chunk"
	EventTypeResult EventType = "result"
	EventTypeError  EventType = "error"
)

// ChunkEvent carries one fragment of generated text.
type ChunkEvent struct{ Text string }

// ResultEvent is the terminal structured summary; always last.
type ResultEvent struct{ Result Result }

// ErrorEvent signals a mid-stream failure; always last.
type ErrorEvent struct{ Err error }

func (e *ChunkEvent) eventType() EventType  { return EventTypeChunk }
func (e *ResultEvent) eventType() EventType { return EventTypeResult }
func (e *ErrorEvent) eventType() EventType  { return EventTypeError }

// TypeOf returns the EventType of ev.
func TypeOf(ev Event) EventType {
	return ev.eventType()
}
