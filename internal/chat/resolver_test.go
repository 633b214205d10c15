package chat

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestResolver(users ...string) (*Resolver, *fakeRoomStore) {
	dir := &fakeDirectory{users: make(map[string]string)}
	for _, u := range users {
		dir.users[u] = u
	}
	store := newFakeRoomStore()
	return NewResolver(store, dir), store
}

func TestResolvePrivateSelfChat(t *testing.T) {
	req := require.New(t)
	resolver, store := newTestResolver("alice@x.com")

	_, err := resolver.ResolvePrivate(context.Background(), "alice@x.com", "alice@x.com")
	req.ErrorIs(err, ErrSelfChat)
	req.Zero(store.roomCount())
}

func TestResolvePrivateUnknownUser(t *testing.T) {
	req := require.New(t)
	resolver, store := newTestResolver("alice@x.com")

	_, err := resolver.ResolvePrivate(context.Background(), "alice@x.com", "nobody@x.com")
	req.ErrorIs(err, ErrUnknownUser)
	req.Zero(store.roomCount())
}

func TestResolvePrivateFindOrCreate(t *testing.T) {
	req := require.New(t)
	resolver, store := newTestResolver("alice@x.com", "bob@x.com")

	created, err := resolver.ResolvePrivate(context.Background(), "alice@x.com", "bob@x.com")
	req.NoError(err)
	req.Equal(KindPrivate, created.Kind)
	req.Len(created.Members, 2)

	// The reverse direction resolves to the very same room.
	found, err := resolver.ResolvePrivate(context.Background(), "bob@x.com", "alice@x.com")
	req.NoError(err)
	req.Equal(created.ID, found.ID)
	req.Equal(1, store.roomCount())
}

func TestResolvePrivateConcurrent(t *testing.T) {
	req := require.New(t)
	resolver, store := newTestResolver("alice@x.com", "bob@x.com")

	const callers = 16
	ids := make([]uuid.UUID, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			requester, target := "alice@x.com", "bob@x.com"
			if i%2 == 1 {
				requester, target = target, requester
			}
			room, err := resolver.ResolvePrivate(context.Background(), requester, target)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = room.ID
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		req.NoError(err)
	}
	req.Equal(1, store.roomCount())
	for _, id := range ids {
		req.Equal(ids[0], id)
	}
}

func TestResolveGroupCreate(t *testing.T) {
	req := require.New(t)
	resolver, _ := newTestResolver("carol@x.com", "dave@x.com", "eve@x.com")

	room, err := resolver.ResolveGroupCreate(context.Background(), "carol@x.com", "weekend plans",
		[]string{"dave@x.com", "eve@x.com"})
	req.NoError(err)
	req.Equal(KindGroup, room.Kind)
	req.Equal("weekend plans", room.Name)
	req.Len(room.Members, 3)
	req.True(IsMember(room, "carol@x.com"))
	req.True(IsMember(room, "dave@x.com"))
	req.True(IsMember(room, "eve@x.com"))
}

func TestResolveGroupCreateInvalidMembers(t *testing.T) {
	req := require.New(t)
	resolver, store := newTestResolver("carol@x.com", "dave@x.com")

	_, err := resolver.ResolveGroupCreate(context.Background(), "carol@x.com", "broken",
		[]string{"dave@x.com", "nobody@x.com", "ghost@x.com"})

	var invalid *InvalidMembersError
	req.ErrorAs(err, &invalid)
	req.ElementsMatch([]string{"nobody@x.com", "ghost@x.com"}, invalid.Identifiers)

	// All-or-nothing: nothing was persisted.
	req.Zero(store.roomCount())
}

func TestResolveGroupCreateBlankAndDuplicateMembers(t *testing.T) {
	req := require.New(t)
	resolver, _ := newTestResolver("carol@x.com", "dave@x.com")

	room, err := resolver.ResolveGroupCreate(context.Background(), "carol@x.com", "dupes",
		[]string{"dave@x.com", "", "  dave@x.com ", "carol@x.com"})
	req.NoError(err)
	req.Len(room.Members, 2)
}

func TestAuthorize(t *testing.T) {
	req := require.New(t)
	resolver, _ := newTestResolver("alice@x.com", "bob@x.com", "mallory@x.com")

	room, err := resolver.ResolvePrivate(context.Background(), "alice@x.com", "bob@x.com")
	req.NoError(err)

	got, err := resolver.Authorize(context.Background(), "alice@x.com", room.ID)
	req.NoError(err)
	req.Equal(room.ID, got.ID)

	_, err = resolver.Authorize(context.Background(), "mallory@x.com", room.ID)
	req.ErrorIs(err, ErrForbidden)

	_, err = resolver.Authorize(context.Background(), "alice@x.com", uuid.New())
	req.ErrorIs(err, ErrRoomNotFound)
}
