package commands

import (
	"context"
	"net/http"
	"time"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type StartSessionCommand struct {
	GameKey string `json:"game_key"`
}

func (c StartSessionCommand) Validate() error {
	_, err := domain.ParseGameKey(c.GameKey)
	return err
}

type StartSessionResponse struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

func HandleStartSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[StartSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[StartSessionCommand, StartSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type StartSessionCommandHandler struct {
	store session.Store
}

func NewStartSessionCommandHandler(store session.Store) *StartSessionCommandHandler {
	return &StartSessionCommandHandler{store}
}

func (h *StartSessionCommandHandler) Handle(
	ctx context.Context,
	request StartSessionCommand,
) (StartSessionResponse, error) {
	// Validation already ran as a pipeline behavior.
	gameKey, err := domain.ParseGameKey(request.GameKey)
	if err != nil {
		return StartSessionResponse{}, err
	}

	newSession := domain.Session{
		ID:        uuid.NewString(),
		GameKey:   gameKey,
		StartedAt: time.Now().UTC(),
	}

	if err := h.store.Insert(ctx, newSession); err != nil {
		return StartSessionResponse{}, err
	}

	return StartSessionResponse{
		SessionID: newSession.ID,
		StartedAt: newSession.StartedAt,
	}, nil
}
