package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestHubJoinAndBroadcast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("a")
	bob := NewClient("b")
	carol := NewClient("c")

	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	hub.RegisterClient(carol)

	hub.Dispatch(alice, &Command{Kind: CommandJoinRoom, Room: "classA"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "classA"})
	hub.Dispatch(carol, &Command{Kind: CommandJoinRoom, Room: "classB"})

	// Each joiner gets its own ack.
	if ev := mustEvent(t, alice.Events, EventJoined); ev.Room != "classA" {
		t.Fatalf("unexpected join ack: %+v", ev)
	}
	if ev := mustEvent(t, bob.Events, EventJoined); ev.Room != "classA" {
		t.Fatalf("unexpected join ack: %+v", ev)
	}
	if ev := mustEvent(t, carol.Events, EventJoined); ev.Room != "classB" {
		t.Fatalf("unexpected join ack: %+v", ev)
	}

	line := json.RawMessage(`{"x1":0,"y1":0,"x2":10,"y2":10}`)
	hub.Dispatch(alice, &Command{Kind: CommandDrawLine, Room: "classA", Line: line})

	ev := mustEvent(t, bob.Events, EventDrawLine)
	if string(ev.Line) != string(line) {
		t.Fatalf("line not relayed verbatim: %s", ev.Line)
	}

	// The sender and members of other rooms see nothing.
	mustNoEvent(t, alice.Events)
	mustNoEvent(t, carol.Events)
}

func TestHubClearBoardExcludesSender(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	hub.Dispatch(alice, &Command{Kind: CommandJoinRoom, Room: "board"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "board"})
	mustEvent(t, alice.Events, EventJoined)
	mustEvent(t, bob.Events, EventJoined)

	hub.Dispatch(bob, &Command{Kind: CommandClearBoard, Room: "board"})

	if ev := mustEvent(t, alice.Events, EventClearBoard); ev.Room != "board" {
		t.Fatalf("unexpected clear event: %+v", ev)
	}
	mustNoEvent(t, bob.Events)
}

func TestHubDisconnectRemovesAllMemberships(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	hub.Dispatch(alice, &Command{Kind: CommandJoinRoom, Room: "r1"})
	hub.Dispatch(alice, &Command{Kind: CommandJoinRoom, Room: "r2"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "r1"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "r2"})
	mustEvent(t, alice.Events, EventJoined)
	mustEvent(t, alice.Events, EventJoined)
	mustEvent(t, bob.Events, EventJoined)
	mustEvent(t, bob.Events, EventJoined)

	hub.UnregisterClient(bob)

	// Bob's event channel is closed on unregister.
	if _, ok := <-bob.Events; ok {
		// Drain any ack that raced ahead of the close.
		for range bob.Events {
		}
	}

	hub.Dispatch(alice, &Command{Kind: CommandDrawLine, Room: "r1", Line: json.RawMessage(`{}`)})
	hub.Dispatch(alice, &Command{Kind: CommandDrawLine, Room: "r2", Line: json.RawMessage(`{}`)})

	// Alice is alone in both rooms now; nothing comes back to her either.
	mustNoEvent(t, alice.Events)
}

func TestHubRejoinIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	hub.Dispatch(alice, &Command{Kind: CommandJoinRoom, Room: "board"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "board"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "board"})

	// The second join is still acknowledged.
	mustEvent(t, bob.Events, EventJoined)
	mustEvent(t, bob.Events, EventJoined)

	hub.Dispatch(alice, &Command{Kind: CommandDrawLine, Room: "board", Line: json.RawMessage(`{"x1":1}`)})

	mustEvent(t, bob.Events, EventDrawLine)
	// A double join must not produce a duplicate delivery.
	mustNoEvent(t, bob.Events)
}

func TestHubPingAnswersSenderOnly(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	hub.Dispatch(alice, &Command{Kind: CommandJoinRoom, Room: "board"})
	hub.Dispatch(bob, &Command{Kind: CommandJoinRoom, Room: "board"})
	mustEvent(t, alice.Events, EventJoined)
	mustEvent(t, bob.Events, EventJoined)

	before := time.Now().UnixMilli()
	hub.Dispatch(alice, &Command{Kind: CommandPing})

	ev := mustEvent(t, alice.Events, EventPong)
	if ev.TS < before {
		t.Fatalf("pong timestamp %d predates the ping", ev.TS)
	}
	mustNoEvent(t, bob.Events)
}

func TestHubDrawToUnknownRoomIsNoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := NewClient("a")
	hub.RegisterClient(alice)

	hub.Dispatch(alice, &Command{Kind: CommandDrawLine, Room: "ghost", Line: json.RawMessage(`{}`)})
	hub.Dispatch(alice, &Command{Kind: CommandClearBoard, Room: "ghost"})

	mustNoEvent(t, alice.Events)
}
