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

type GetSessionQuery struct {
	SessionID string
}

func (q GetSessionQuery) Validate() error {
	if q.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID)
	}

	return nil
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	query := GetSessionQuery{SessionID: chi.URLParam(r, "id")}

	response, err := mediator.Send[GetSessionQuery, domain.Session](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionQueryHandler struct {
	store session.Store
}

func NewGetSessionQueryHandler(store session.Store) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{store}
}

func (h *GetSessionQueryHandler) Handle(
	ctx context.Context,
	request GetSessionQuery,
) (domain.Session, error) {
	found, err := h.store.Get(ctx, request.SessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return domain.Session{}, core.NewNotFoundError(err)
	case err != nil:
		return domain.Session{}, core.NewCommandError(500, err)
	}

	return found, nil
}
