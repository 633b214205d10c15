package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
)

// Resolver derives or creates the room for a private pair, creates group
// rooms, and gates every join/read/send with Authorize.
type Resolver struct {
	rooms RoomStore
	dir   Directory
}

func NewResolver(rooms RoomStore, dir Directory) *Resolver {
	return &Resolver{rooms: rooms, dir: dir}
}

// ResolvePrivate returns the private room for the unordered pair
// {requester, target}, creating it if none exists. Concurrent calls from
// either direction converge on one room: creation races surface as
// ErrRoomExists from the store and are settled by re-reading the pair key.
func (r *Resolver) ResolvePrivate(ctx context.Context, requester, target string) (*models.Room, error) {
	target = normalize(target)
	if requester == target {
		return nil, ErrSelfChat
	}

	ok, err := r.dir.Exists(ctx, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownUser
	}

	key := PairKey(requester, target)

	room, err := r.rooms.PrivateRoomByPair(ctx, key)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, ErrRoomNotFound) {
		return nil, err
	}

	room, err = r.rooms.CreateRoom(ctx, NewRoom{
		Kind:      KindPrivate,
		PairKey:   &key,
		CreatedBy: requester,
		Members:   []string{requester, target},
	})
	if errors.Is(err, ErrRoomExists) {
		// Lost the race; the winner's room is the room.
		return r.rooms.PrivateRoomByPair(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ResolveGroupCreate validates every supplied member against the
// directory and creates a group room whose member set is the validated
// members plus the requester. Any unresolvable identifier fails the whole
// creation; no partial group is persisted.
func (r *Resolver) ResolveGroupCreate(ctx context.Context, requester, name string, memberIdentifiers []string) (*models.Room, error) {
	var invalid []string
	members := []string{requester}
	seen := map[string]bool{requester: true}

	for _, ident := range memberIdentifiers {
		ident = normalize(ident)
		if ident == "" || seen[ident] {
			continue
		}
		seen[ident] = true

		ok, err := r.dir.Exists(ctx, ident)
		if err != nil {
			return nil, err
		}
		if !ok {
			invalid = append(invalid, ident)
			continue
		}
		members = append(members, ident)
	}

	if len(invalid) > 0 {
		return nil, &InvalidMembersError{Identifiers: invalid}
	}

	return r.rooms.CreateRoom(ctx, NewRoom{
		Kind:      KindGroup,
		Name:      name,
		CreatedBy: requester,
		Members:   members,
	})
}

// Authorize is the gate before join/read/send on any room.
func (r *Resolver) Authorize(ctx context.Context, user string, roomID uuid.UUID) (*models.Room, error) {
	room, err := r.rooms.RoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !IsMember(room, user) {
		return nil, ErrForbidden
	}
	return room, nil
}
