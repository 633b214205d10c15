package chat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated is returned for any operation attempted on a
	// session that never bound an identity. The connection stays open.
	ErrUnauthenticated = errors.New("no authenticated identity bound to session")

	// ErrSelfChat rejects a private chat where requester == target.
	ErrSelfChat = errors.New("cannot open a private chat with yourself")

	// ErrUnknownUser rejects a private chat target absent from the directory.
	ErrUnknownUser = errors.New("user is not registered")

	ErrRoomNotFound = errors.New("room not found")
	ErrForbidden    = errors.New("not a member of this room")

	// ErrRoomExists is how the room store reports a pair-key collision,
	// i.e. another resolver call created the private room first.
	ErrRoomExists = errors.New("private room already exists for this pair")
)

// InvalidMembersError carries every member identifier the directory could
// not resolve during group creation. Creation is all-or-nothing.
type InvalidMembersError struct {
	Identifiers []string
}

func (e *InvalidMembersError) Error() string {
	return "these users are not registered: " + strings.Join(e.Identifiers, ", ")
}

// StorageError wraps a persistence failure. It is fatal to the single
// operation only; the core never retries on its own.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
