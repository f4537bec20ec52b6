package queries

import (
	"context"
	"net/http"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
)

type ListSessionsQuery struct{}

func HandleListSessions(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[ListSessionsQuery, []domain.Session](
		r.Context(),
		ListSessionsQuery{},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ListSessionsQueryHandler struct {
	store session.Store
}

func NewListSessionsQueryHandler(store session.Store) *ListSessionsQueryHandler {
	return &ListSessionsQueryHandler{store}
}

func (h *ListSessionsQueryHandler) Handle(
	ctx context.Context,
	request ListSessionsQuery,
) ([]domain.Session, error) {
	sessions, err := h.store.List(ctx)
	if err != nil {
		return nil, core.NewCommandError(500, err)
	}

	if sessions == nil {
		sessions = []domain.Session{}
	}

	return sessions, nil
}
