package session

import (
	"context"
	"errors"

	"github.com/handora-games/session-api/internal/modules/session/domain"
)

// ErrSessionNotFound is returned by every Store implementation when
// the session id has never been issued.
var ErrSessionNotFound = errors.New("session not found")

// Store is the row-store collaborator behind the session lifecycle.
// The handlers own no state between requests - the store is the sole
// arbiter of consistency, and concurrent writes to the same id are
// last-writer-wins.
type Store interface {
	Insert(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Update(ctx context.Context, session domain.Session) error

	// List returns every session, created_at descending.
	List(ctx context.Context) ([]domain.Session, error)

	// ListByGameKey returns sessions sharing a game key, started_at
	// descending, excluding the given session id.
	ListByGameKey(ctx context.Context, key domain.GameKey, excludeID string) ([]domain.Session, error)

	// AppendEvent appends one gameplay event and returns the event
	// count for the session including the new event.
	AppendEvent(ctx context.Context, event domain.Event) (int, error)
}
