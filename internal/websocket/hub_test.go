package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/chat"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, email string) *Client {
	return NewClient(hub, nil, chat.Identity{ID: uuid.New(), Email: email, Name: email})
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				return out
			}
			out = append(out, payload)
		default:
			return out
		}
	}
}

func TestIdentityUnbound(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	client := NewClient(hub, nil, chat.Identity{})
	_, ok := client.Identity()
	req.False(ok)

	bound := newTestClient(hub, "alice@x.com")
	ident, ok := bound.Identity()
	req.True(ok)
	req.Equal("alice@x.com", ident.Email)
}

func TestJoinRoomIdempotent(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()

	client := newTestClient(hub, "alice@x.com")
	hub.registerClient(client)

	hub.JoinRoom(client, roomID)
	hub.JoinRoom(client, roomID)
	req.True(client.IsInRoom(roomID))

	hub.Deliver(roomID, []byte("one"))
	req.Len(drain(client), 1)
}

func TestJoinRoomRequiresRegisteredSession(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()

	// Never registered: joining is a no-op, nothing is delivered.
	client := newTestClient(hub, "alice@x.com")
	hub.JoinRoom(client, roomID)
	req.False(client.IsInRoom(roomID))

	hub.Deliver(roomID, []byte("lost"))
	req.Empty(drain(client))
}

func TestDeliverFansOutToAllSubscribers(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()
	otherRoom := uuid.New()

	alice := newTestClient(hub, "alice@x.com")
	bob := newTestClient(hub, "bob@x.com")
	carol := newTestClient(hub, "carol@x.com")
	for _, c := range []*Client{alice, bob, carol} {
		hub.registerClient(c)
	}
	hub.JoinRoom(alice, roomID)
	hub.JoinRoom(bob, roomID)
	hub.JoinRoom(carol, otherRoom)

	hub.Deliver(roomID, []byte("hi"))

	// Sender and peer both receive; a session in another room does not.
	req.Len(drain(alice), 1)
	req.Len(drain(bob), 1)
	req.Empty(drain(carol))
}

func TestUnregisterStopsDeliveryToThatSessionOnly(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()

	alice := newTestClient(hub, "alice@x.com")
	bob := newTestClient(hub, "bob@x.com")
	hub.registerClient(alice)
	hub.registerClient(bob)
	hub.JoinRoom(alice, roomID)
	hub.JoinRoom(bob, roomID)

	hub.unregisterClient(bob)

	// Delivery to the departed session is simply dropped, not an error;
	// the remaining session is unaffected.
	hub.Deliver(roomID, []byte("still here"))
	req.Len(drain(alice), 1)

	_, open := <-bob.Send
	req.False(open)

	// Unregistering twice is safe.
	hub.unregisterClient(bob)
}

func TestDeliverPreservesQueueOrder(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()

	alice := newTestClient(hub, "alice@x.com")
	hub.registerClient(alice)
	hub.JoinRoom(alice, roomID)

	hub.Deliver(roomID, []byte("first"))
	hub.Deliver(roomID, []byte("second"))
	hub.Deliver(roomID, []byte("third"))

	got := drain(alice)
	req.Len(got, 3)
	req.Equal("first", string(got[0]))
	req.Equal("second", string(got[1]))
	req.Equal("third", string(got[2]))
}

func TestDeliverSkipsFullQueue(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()

	alice := newTestClient(hub, "alice@x.com")
	bob := newTestClient(hub, "bob@x.com")
	hub.registerClient(alice)
	hub.registerClient(bob)
	hub.JoinRoom(alice, roomID)
	hub.JoinRoom(bob, roomID)

	for i := 0; i < cap(bob.Send); i++ {
		bob.Send <- []byte("filler")
	}

	// Must not block or fail the fan-out for the healthy session.
	hub.Deliver(roomID, []byte("hi"))
	req.Len(drain(alice), 1)
}

func TestRoomUsersDeduplicatesSessionsPerUser(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	roomID := uuid.New()

	ident := chat.Identity{ID: uuid.New(), Email: "alice@x.com", Name: "Alice"}
	first := NewClient(hub, nil, ident)
	second := NewClient(hub, nil, ident)
	bob := newTestClient(hub, "bob@x.com")
	for _, c := range []*Client{first, second, bob} {
		hub.registerClient(c)
		hub.JoinRoom(c, roomID)
	}

	req.Len(hub.RoomUsers(roomID), 2)
	req.Len(hub.OnlineUsers(), 2)

	hub.unregisterClient(first)
	req.Len(hub.RoomUsers(roomID), 2)

	hub.unregisterClient(second)
	req.Len(hub.RoomUsers(roomID), 1)
}
