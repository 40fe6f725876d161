package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom   = "join-room"
	InboundTypeDrawLine   = "draw-line"
	InboundTypeClearBoard = "clear-board"
	InboundTypePingCheck  = "ping-check"

	OutboundTypeJoined     = "joined"
	OutboundTypeDrawLine   = "draw-line"
	OutboundTypeClearBoard = "clear-board"
	OutboundTypePongCheck  = "pong-check"
)

// JoinRoomData requests to join a specific board.
type JoinRoomData struct {
	RoomID string `json:"roomId"`
}

// DrawLineData carries a line to relay. Line is passed through verbatim.
type DrawLineData struct {
	RoomID string          `json:"roomId"`
	Line   json.RawMessage `json:"line"`
}

// ClearBoardData requests a board reset broadcast.
type ClearBoardData struct {
	RoomID string `json:"roomId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// JoinedData acknowledges a join to the sender.
type JoinedData struct {
	RoomID string `json:"roomId"`
}

// LineData is the relayed draw-line payload.
type LineData struct {
	Line json.RawMessage `json:"line"`
}

// PongData answers a ping-check with the server time in unix milliseconds.
type PongData struct {
	TS int64 `json:"ts"`
}
