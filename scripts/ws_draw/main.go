// Command ws_draw is a manual smoke client for the whiteboard relay: it
// joins a room, relays stdin lines as draw events, and prints everything
// the server sends back.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/okazakov/boardwire-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_draw: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	room := flag.String("room", "classA", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(eventType string, data any) {
		var payload json.RawMessage
		if data != nil {
			raw, marshalErr := json.Marshal(data)
			if marshalErr != nil {
				log.Printf("marshal %s: %v", eventType, marshalErr)
				return
			}
			payload = raw
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: eventType, Data: payload}); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	send(proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: *room})

	go func() {
		for {
			var outbound proto.Outbound
			if readErr := wsjson.Read(ctx, conn, &outbound); readErr != nil {
				if !errors.Is(readErr, context.Canceled) {
					log.Printf("read: %v", readErr)
				}
				cancel()
				return
			}
			fmt.Printf("<- %s %v\n", outbound.Type, outbound.Data)
		}
	}()

	fmt.Println("commands: <x1> <y1> <x2> <y2> to draw, 'clear', 'ping', ctrl-d to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
		case text == "clear":
			send(proto.InboundTypeClearBoard, proto.ClearBoardData{RoomID: *room})
		case text == "ping":
			send(proto.InboundTypePingCheck, nil)
		default:
			fields := strings.Fields(text)
			if len(fields) != 4 {
				fmt.Println("expected: <x1> <y1> <x2> <y2>")
				continue
			}
			line := map[string]string{
				"x1": fields[0], "y1": fields[1],
				"x2": fields[2], "y2": fields[3],
			}
			raw, marshalErr := json.Marshal(line)
			if marshalErr != nil {
				log.Printf("marshal line: %v", marshalErr)
				continue
			}
			send(proto.InboundTypeDrawLine, proto.DrawLineData{RoomID: *room, Line: raw})
		}
	}
	return scanner.Err()
}
