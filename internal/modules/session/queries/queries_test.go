package queries

import (
	"context"
	"testing"
	"time"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func insertTestSession(t *testing.T, store session.Store, gameKey domain.GameKey, startedAt time.Time) string {
	t.Helper()

	newSession := domain.Session{
		ID:        uuid.NewString(),
		GameKey:   gameKey,
		StartedAt: startedAt,
		CreatedAt: startedAt,
	}
	require.NoError(t, store.Insert(context.Background(), newSession))

	return newSession.ID
}

func Test_GetSession_Returns_Persisted_Session(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore()
	sessionID := insertTestSession(t, store, domain.GameKeyPianoTiles, time.Now().UTC())
	handler := NewGetSessionQueryHandler(store)

	// Act
	found, err := handler.Handle(context.Background(), GetSessionQuery{SessionID: sessionID})

	// Assert
	require.NoError(t, err)
	require.Equal(t, sessionID, found.ID)
	require.Equal(t, domain.GameKeyPianoTiles, found.GameKey)
}

func Test_GetSession_Returns_404_For_Unknown_ID(t *testing.T) {
	// Arrange
	handler := NewGetSessionQueryHandler(session.NewMemoryStore())

	// Act
	_, err := handler.Handle(context.Background(), GetSessionQuery{SessionID: "never-issued"})

	// Assert
	require.Error(t, err)

	commandErr, ok := err.(core.CommandError)
	require.True(t, ok)
	require.Equal(t, 404, commandErr.StatusCode)
}

func Test_GetSession_Returns_404_For_Malformed_ID_Against_Postgres_Store(t *testing.T) {
	// Arrange - the store rejects non-uuid ids before querying, so no
	// live database is needed.
	handler := NewGetSessionQueryHandler(session.NewPostgresStore(nil))

	// Act
	_, err := handler.Handle(context.Background(), GetSessionQuery{SessionID: "never-issued"})

	// Assert
	require.Error(t, err)

	commandErr, ok := err.(core.CommandError)
	require.True(t, ok)
	require.Equal(t, 404, commandErr.StatusCode)
}

func Test_GetSessionWithHistory_Returns_Only_Same_GameKey_Newest_First(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore()
	base := time.Now().UTC().Add(-time.Hour)

	oldest := insertTestSession(t, store, domain.GameKeyPianoTiles, base)
	middle := insertTestSession(t, store, domain.GameKeyPianoTiles, base.Add(10*time.Minute))
	insertTestSession(t, store, domain.GameKeyDinosaur, base.Add(20*time.Minute))
	current := insertTestSession(t, store, domain.GameKeyPianoTiles, base.Add(30*time.Minute))

	handler := NewGetSessionWithHistoryQueryHandler(store)

	// Act
	response, err := handler.Handle(
		context.Background(),
		GetSessionWithHistoryQuery{SessionID: current},
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, current, response.Session.ID)

	require.Len(t, response.History, 2)
	require.Equal(t, middle, response.History[0].ID)
	require.Equal(t, oldest, response.History[1].ID)

	for _, entry := range response.History {
		require.Equal(t, domain.GameKeyPianoTiles, entry.GameKey)
		require.NotEqual(t, current, entry.ID)
	}
}

func Test_GetSessionWithHistory_Returns_Empty_History_For_First_Play(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore()
	sessionID := insertTestSession(t, store, domain.GameKeySpaceInvader, time.Now().UTC())
	handler := NewGetSessionWithHistoryQueryHandler(store)

	// Act
	response, err := handler.Handle(
		context.Background(),
		GetSessionWithHistoryQuery{SessionID: sessionID},
	)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, response.History)
	require.Empty(t, response.History)
}

func Test_ListSessions_Returns_All_Sessions_Newest_Created_First(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore()
	base := time.Now().UTC().Add(-time.Hour)

	first := insertTestSession(t, store, domain.GameKeyPianoTiles, base)
	second := insertTestSession(t, store, domain.GameKeyDinosaur, base.Add(10*time.Minute))

	handler := NewListSessionsQueryHandler(store)

	// Act
	sessions, err := handler.Handle(context.Background(), ListSessionsQuery{})

	// Assert
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, second, sessions[0].ID)
	require.Equal(t, first, sessions[1].ID)
}

func Test_ListSessions_Returns_Empty_List_When_Store_Empty(t *testing.T) {
	// Arrange
	handler := NewListSessionsQueryHandler(session.NewMemoryStore())

	// Act
	sessions, err := handler.Handle(context.Background(), ListSessionsQuery{})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, sessions)
	require.Empty(t, sessions)
}
