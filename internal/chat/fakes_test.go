package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
)

// In-memory stand-ins for the injected dependencies (§9 of the design:
// explicit dependencies make fakes trivial).

type fakeDirectory struct {
	users map[string]string // identifier -> display name
}

func (d *fakeDirectory) Exists(_ context.Context, identifier string) (bool, error) {
	_, ok := d.users[identifier]
	return ok, nil
}

func (d *fakeDirectory) DisplayName(_ context.Context, identifier string) (string, error) {
	name, ok := d.users[identifier]
	if !ok {
		return "", ErrUnknownUser
	}
	return name, nil
}

type fakeRoomStore struct {
	mu     sync.Mutex
	rooms  map[uuid.UUID]*models.Room
	byPair map[string]uuid.UUID
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{
		rooms:  make(map[uuid.UUID]*models.Room),
		byPair: make(map[string]uuid.UUID),
	}
}

func (s *fakeRoomStore) CreateRoom(_ context.Context, nr NewRoom) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nr.PairKey != nil {
		if _, taken := s.byPair[*nr.PairKey]; taken {
			return nil, ErrRoomExists
		}
	}

	room := &models.Room{
		ID:        uuid.New(),
		Kind:      nr.Kind,
		Name:      nr.Name,
		PairKey:   nr.PairKey,
		CreatedBy: nr.CreatedBy,
		CreatedAt: time.Now(),
	}
	for _, m := range nr.Members {
		room.Members = append(room.Members, models.User{ID: uuid.New(), Email: m, Name: m})
	}

	s.rooms[room.ID] = room
	if nr.PairKey != nil {
		s.byPair[*nr.PairKey] = room.ID
	}
	return room, nil
}

func (s *fakeRoomStore) RoomByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *fakeRoomStore) PrivateRoomByPair(_ context.Context, pairKey string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byPair[pairKey]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s.rooms[id], nil
}

func (s *fakeRoomStore) roomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

type fakeLog struct {
	mu   sync.Mutex
	msgs map[uuid.UUID][]models.Message
	fail error
}

func newFakeLog() *fakeLog {
	return &fakeLog{msgs: make(map[uuid.UUID][]models.Message)}
}

func (l *fakeLog) Append(_ context.Context, roomID uuid.UUID, sender, senderName, body string) (*models.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fail != nil {
		return nil, l.fail
	}

	msg := models.Message{
		ID:         uuid.New(),
		RoomID:     roomID,
		Seq:        int64(len(l.msgs[roomID]) + 1),
		Sender:     sender,
		SenderName: senderName,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	l.msgs[roomID] = append(l.msgs[roomID], msg)
	return &msg, nil
}

func (l *fakeLog) History(_ context.Context, roomID uuid.UUID) ([]models.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Message, len(l.msgs[roomID]))
	copy(out, l.msgs[roomID])
	return out, nil
}

type fakeRegistry struct {
	mu       sync.Mutex
	payloads map[uuid.UUID][][]byte
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{payloads: make(map[uuid.UUID][][]byte)}
}

func (r *fakeRegistry) Deliver(roomID uuid.UUID, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads[roomID] = append(r.payloads[roomID], payload)
}

func (r *fakeRegistry) delivered(roomID uuid.UUID) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.payloads[roomID]))
	copy(out, r.payloads[roomID])
	return out
}

type fakeSession struct {
	ident Identity
	bound bool
}

func (s fakeSession) Identity() (Identity, bool) {
	return s.ident, s.bound
}
