package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Hub owns room membership and fan-out. All mutation happens on the Run
// goroutine: registration, commands, and unregistration are serialized
// through its channels, which preserves per-sender event order and makes
// disconnect cleanup atomic with respect to broadcasts.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	rooms   map[string]*Room
	clients map[*Client]struct{}
	log     *zerolog.Logger
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub creates a hub with no rooms.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
		rooms:      make(map[string]*Room),
		clients:    make(map[*Client]struct{}),
		log:        logger,
	}
}

// RegisterClient attaches a client to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a client, removing it from every room it
// joined and closing its event channel.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Dispatch submits a command on behalf of a client.
func (h *Hub) Dispatch(c *Client, cmd *Command) {
	h.commands <- clientCommand{client: c, cmd: cmd}
}

// Run processes hub traffic until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug().Str("client_id", c.ID).Msg("client registered")
		case c := <-h.unregister:
			h.removeClient(c)
		case cc := <-h.commands:
			h.handleCommand(cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	if _, known := h.clients[c]; !known {
		return
	}

	switch cmd.Kind {
	case CommandJoinRoom:
		room, ok := h.rooms[cmd.Room]
		if !ok {
			room = NewRoom(cmd.Room)
			h.rooms[cmd.Room] = room
		}
		room.AddClient(c)
		c.rooms[cmd.Room] = struct{}{}
		c.send(&Event{Kind: EventJoined, Room: cmd.Room})
		h.log.Debug().Str("client_id", c.ID).Str("room", cmd.Room).Msg("client joined room")
	case CommandDrawLine:
		if room, ok := h.rooms[cmd.Room]; ok {
			room.BroadcastExcept(c, &Event{Kind: EventDrawLine, Room: cmd.Room, Line: cmd.Line})
		}
	case CommandClearBoard:
		if room, ok := h.rooms[cmd.Room]; ok {
			room.BroadcastExcept(c, &Event{Kind: EventClearBoard, Room: cmd.Room})
		}
	case CommandPing:
		c.send(&Event{Kind: EventPong, TS: time.Now().UnixMilli()})
	}
}

func (h *Hub) removeClient(c *Client) {
	if _, known := h.clients[c]; !known {
		return
	}
	delete(h.clients, c)

	for name := range c.rooms {
		room, ok := h.rooms[name]
		if !ok {
			continue
		}
		room.RemoveClient(c)
		if room.Empty() {
			delete(h.rooms, name)
		}
	}
	c.rooms = make(map[string]struct{})
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")
}
