package queries

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type GetSessionWithHistoryQuery struct {
	SessionID string
}

func (q GetSessionWithHistoryQuery) Validate() error {
	if q.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID)
	}

	return nil
}

type SessionWithHistory struct {
	Session domain.Session   `json:"session"`
	History []domain.Session `json:"history"`
}

func HandleGetSessionWithHistory(w http.ResponseWriter, r *http.Request) {
	query := GetSessionWithHistoryQuery{SessionID: chi.URLParam(r, "id")}

	response, err := mediator.Send[GetSessionWithHistoryQuery, SessionWithHistory](
		r.Context(),
		query,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

// GetSessionWithHistoryQueryHandler returns a session together with
// every earlier and later play of the same game, newest first. The
// queried session itself stays out of the history list.
type GetSessionWithHistoryQueryHandler struct {
	store session.Store
}

func NewGetSessionWithHistoryQueryHandler(store session.Store) *GetSessionWithHistoryQueryHandler {
	return &GetSessionWithHistoryQueryHandler{store}
}

func (h *GetSessionWithHistoryQueryHandler) Handle(
	ctx context.Context,
	request GetSessionWithHistoryQuery,
) (SessionWithHistory, error) {
	current, err := h.store.Get(ctx, request.SessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return SessionWithHistory{}, core.NewNotFoundError(err)
	case err != nil:
		return SessionWithHistory{}, core.NewCommandError(500, err)
	}

	history, err := h.store.ListByGameKey(ctx, current.GameKey, current.ID)
	if err != nil {
		return SessionWithHistory{}, core.NewCommandError(500, err)
	}

	if history == nil {
		history = []domain.Session{}
	}

	return SessionWithHistory{Session: current, History: history}, nil
}
