package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
)

const (
	KindPrivate = "private"
	KindGroup   = "group"
)

// Identity is what the identity provider established for a connection:
// the user's stable id, public identifier and display name.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// Directory answers whether an identifier names a registered user.
// Backed by the users table in production, by a map in tests.
type Directory interface {
	Exists(ctx context.Context, identifier string) (bool, error)
	DisplayName(ctx context.Context, identifier string) (string, error)
}

// NewRoom describes a room to be created. Members are user identifiers
// already validated against the directory.
type NewRoom struct {
	Kind      string
	Name      string
	PairKey   *string
	CreatedBy string
	Members   []string
}

// RoomStore persists rooms and their member sets. CreateRoom must return
// ErrRoomExists when the pair key is already taken, so the resolver can
// settle a creation race by re-reading.
type RoomStore interface {
	CreateRoom(ctx context.Context, room NewRoom) (*models.Room, error)
	RoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	PrivateRoomByPair(ctx context.Context, pairKey string) (*models.Room, error)
}

// MessageLog is the append-only, per-room ordered message store.
type MessageLog interface {
	Append(ctx context.Context, roomID uuid.UUID, sender, senderName, body string) (*models.Message, error)
	History(ctx context.Context, roomID uuid.UUID) ([]models.Message, error)
}

// Session is one live connection's binding to an identity. The second
// return is false when no identity was established at connect time.
type Session interface {
	Identity() (Identity, bool)
}

// Registry delivers a payload to every session currently subscribed to a
// room. Delivery is best-effort per subscriber and never returns an error
// to the sender.
type Registry interface {
	Deliver(roomID uuid.UUID, payload []byte)
}

// PairKey maps an unordered pair of user identifiers to the canonical
// key enforcing at most one private room per pair.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// IsMember reports whether the identifier is in the room's member set.
func IsMember(room *models.Room, identifier string) bool {
	for _, m := range room.Members {
		if m.Email == identifier {
			return true
		}
	}
	return false
}

func normalize(identifier string) string {
	return strings.TrimSpace(identifier)
}
