package commands

import (
	"context"
	"testing"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"

	"github.com/stretchr/testify/require"
)

func Test_ParseFinishPayload_Splits_Known_And_Residual_Fields(t *testing.T) {
	// Arrange
	payload := map[string]interface{}{
		"score":         150.0,
		"accuracy":      0.92,
		"rom_percent":   0.85,
		"reaction_time": 250.0,
		"smoothness":    0.88,
		"fatigue_index": 0.3,
		"device":        "glove-v2",
	}

	// Act
	command, err := ParseFinishPayload("session-id", payload)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 150, *command.Score)
	require.Equal(t, 0.92, *command.Accuracy)
	require.Equal(t, 0.85, *command.RomPercent)
	require.Equal(t, 250.0, *command.ReactionTimeMS)
	require.Equal(t, 0.88, *command.Smoothness)

	require.Len(t, command.ResidualMetrics, 2)
	require.Equal(t, 0.3, command.ResidualMetrics["fatigue_index"])
	require.Equal(t, "glove-v2", command.ResidualMetrics["device"])
}

func Test_ParseFinishPayload_Rejects_Non_Numeric_Metric(t *testing.T) {
	_, err := ParseFinishPayload("session-id", map[string]interface{}{"score": "high"})
	require.Error(t, err)
}

func Test_FinishSessionCommand_Validate_Rejects_Fractions_Outside_Unit_Interval(t *testing.T) {
	for _, accuracy := range []float64{-0.1, 1.1} {
		value := accuracy
		command := FinishSessionCommand{SessionID: "id", Accuracy: &value}
		require.Error(t, command.Validate())
	}
}

func Test_FinishSession_Sets_FinishedAt_And_Metrics(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore()
	sessionID := startTestSession(t, store, "piano_tiles")
	handler := NewFinishSessionCommandHandler(store)

	command, err := ParseFinishPayload(sessionID, map[string]interface{}{
		"score":         150.0,
		"accuracy":      0.92,
		"rom_percent":   0.85,
		"reaction_time": 250.0,
		"smoothness":    0.88,
	})
	require.NoError(t, err)

	// Act
	finished, err := handler.Handle(context.Background(), command)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, finished.FinishedAt)
	require.Equal(t, 150, *finished.Score)
	require.Equal(t, 0.92, *finished.Accuracy)
	require.Equal(t, 0.85, *finished.RomPercent)
	require.Equal(t, 250.0, *finished.ReactionTimeMS)
	require.Equal(t, 0.88, *finished.Smoothness)

	persisted, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, persisted.FinishedAt)
	require.Equal(t, 150, *persisted.Score)
}

func Test_FinishSession_ReFinish_Overwrites_Metrics(t *testing.T) {
	// Arrange
	store := session.NewMemoryStore()
	sessionID := startTestSession(t, store, "piano_tiles")
	handler := NewFinishSessionCommandHandler(store)

	first, err := ParseFinishPayload(sessionID, map[string]interface{}{"score": 100.0})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), first)
	require.NoError(t, err)

	// Act - last writer wins.
	second, err := ParseFinishPayload(sessionID, map[string]interface{}{"score": 200.0})
	require.NoError(t, err)

	finished, err := handler.Handle(context.Background(), second)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 200, *finished.Score)
}

func Test_FinishSession_Returns_404_For_Unknown_Session(t *testing.T) {
	// Arrange
	handler := NewFinishSessionCommandHandler(session.NewMemoryStore())

	// Act
	_, err := handler.Handle(context.Background(), FinishSessionCommand{SessionID: "never-issued"})

	// Assert
	require.Error(t, err)

	commandErr, ok := err.(core.CommandError)
	require.True(t, ok)
	require.Equal(t, 404, commandErr.StatusCode)
}
