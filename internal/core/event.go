package core

import "encoding/json"

// EventKind is a notification the relay emits to clients.
type EventKind int

const (
	// EventJoined acknowledges a join to the joining client only.
	EventJoined EventKind = iota
	// EventDrawLine carries a relayed line to board members.
	EventDrawLine
	// EventClearBoard tells board members to reset local state.
	EventClearBoard
	// EventPong answers a latency probe with the server time.
	EventPong
)

// Event is sent to clients to describe what happened on the board.
type Event struct {
	Kind EventKind
	Room string
	Line json.RawMessage
	TS   int64 // unix milliseconds, set for EventPong
}
