package core

// Client is a connected whiteboard participant as seen by the relay.
// The rooms set is owned by the hub goroutine and must not be touched
// from transport code.
type Client struct {
	ID     string
	Events chan *Event

	rooms map[string]struct{}
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, 16),
		rooms:  make(map[string]struct{}),
	}
}

// send delivers an event without blocking the hub.
func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
