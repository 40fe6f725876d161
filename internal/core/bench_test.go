package core

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
)

func benchmarkBoardBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	hub.Dispatch(sender, &Command{Kind: CommandJoinRoom, Room: "bench"})

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i))
		hub.RegisterClient(c)
		hub.Dispatch(c, &Command{Kind: CommandJoinRoom, Room: "bench"})
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	line := json.RawMessage(`{"x1":0,"y1":0,"x2":10,"y2":10}`)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		hub.Dispatch(sender, &Command{Kind: CommandDrawLine, Room: "bench", Line: line})
		<-target.Events
	}
}

func BenchmarkBoardBroadcast_10(b *testing.B)  { benchmarkBoardBroadcast(b, 10) }
func BenchmarkBoardBroadcast_100(b *testing.B) { benchmarkBoardBroadcast(b, 100) }
func BenchmarkBoardBroadcast_500(b *testing.B) { benchmarkBoardBroadcast(b, 500) }
