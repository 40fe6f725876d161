package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a board.
	CommandJoinRoom CommandKind = iota
	// CommandDrawLine relays a line to the other board members.
	CommandDrawLine
	// CommandClearBoard tells the other board members to reset.
	CommandClearBoard
	// CommandPing asks for a latency probe response.
	CommandPing
)

// Command represents an action requested by a client. Line carries the
// opaque line descriptor for CommandDrawLine; the relay never inspects it.
type Command struct {
	Kind CommandKind
	Room string
	Line json.RawMessage
}
