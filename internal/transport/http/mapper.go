package http

import (
	"encoding/json"

	"github.com/okazakov/boardwire-server/internal/core"
	"github.com/okazakov/boardwire-server/internal/proto"
)

// inboundToCommand maps a wire envelope to a relay command. A nil result
// means the event must be silently dropped: missing roomId, bad payload
// JSON, or an unknown type.
func inboundToCommand(inbound proto.Inbound) *core.Command {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil || join.RoomID == "" {
			return nil
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: join.RoomID}
	case proto.InboundTypeDrawLine:
		var draw proto.DrawLineData
		if err := json.Unmarshal(inbound.Data, &draw); err != nil || draw.RoomID == "" {
			return nil
		}
		return &core.Command{Kind: core.CommandDrawLine, Room: draw.RoomID, Line: draw.Line}
	case proto.InboundTypeClearBoard:
		var clear proto.ClearBoardData
		if err := json.Unmarshal(inbound.Data, &clear); err != nil || clear.RoomID == "" {
			return nil
		}
		return &core.Command{Kind: core.CommandClearBoard, Room: clear.RoomID}
	case proto.InboundTypePingCheck:
		return &core.Command{Kind: core.CommandPing}
	default:
		return nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeJoined,
			Data: proto.JoinedData{RoomID: event.Room},
		}
	case core.EventDrawLine:
		return proto.Outbound{
			Type: proto.OutboundTypeDrawLine,
			Data: proto.LineData{Line: event.Line},
		}
	case core.EventClearBoard:
		return proto.Outbound{Type: proto.OutboundTypeClearBoard}
	case core.EventPong:
		return proto.Outbound{
			Type: proto.OutboundTypePongCheck,
			Data: proto.PongData{TS: event.TS},
		}
	default:
		return proto.Outbound{}
	}
}
