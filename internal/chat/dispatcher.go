package chat

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/kyashasri/CHAT-APPLICATION/internal/models"
)

// Dispatcher is the fan-out path: authorize, append to the message log,
// then deliver the persisted message to every subscribed session,
// including the sender's own.
type Dispatcher struct {
	log      MessageLog
	resolver *Resolver
	registry Registry

	// One mutex per room serializes append-then-deliver, so all
	// subscribers observe messages in log order. Rooms are never
	// destroyed, so entries are never reclaimed.
	mu    sync.Mutex
	rooms map[uuid.UUID]*sync.Mutex
}

func NewDispatcher(log MessageLog, resolver *Resolver, registry Registry) *Dispatcher {
	return &Dispatcher{
		log:      log,
		resolver: resolver,
		registry: registry,
		rooms:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// Send persists the message and fans it out. The sender always learns the
// outcome; per-subscriber delivery failures are the registry's to swallow.
func (d *Dispatcher) Send(ctx context.Context, sess Session, roomID uuid.UUID, body string) (*models.Message, error) {
	ident, ok := sess.Identity()
	if !ok {
		return nil, ErrUnauthenticated
	}

	if _, err := d.resolver.Authorize(ctx, ident.Email, roomID); err != nil {
		return nil, err
	}

	senderName := ident.Name
	if senderName == "" {
		// Fall back to the directory for sessions bound without a name.
		if name, err := d.resolver.dir.DisplayName(ctx, ident.Email); err == nil {
			senderName = name
		}
	}

	lock := d.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	msg, err := d.log.Append(ctx, roomID, ident.Email, senderName, body)
	if err != nil {
		return nil, err
	}

	ev, err := NewDeliveredEvent(msg)
	if err != nil {
		// The message is durable; only the fan-out encoding failed.
		return msg, err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return msg, err
	}

	d.registry.Deliver(roomID, payload)
	return msg, nil
}

func (d *Dispatcher) roomLock(roomID uuid.UUID) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.rooms[roomID]
	if !ok {
		lock = &sync.Mutex{}
		d.rooms[roomID] = lock
	}
	return lock
}
