package commands

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

type SetWarmupBaselineCommand struct {
	SessionID string                  `json:"-"`
	Baseline  domain.BaselineByFinger `json:"baseline_by_finger"`
}

func (c SetWarmupBaselineCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.Baseline == nil {
		return fmt.Errorf("missing baseline_by_finger")
	}

	return c.Baseline.Validate()
}

func HandleSetWarmupBaseline(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[SetWarmupBaselineCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")

	response, err := mediator.Send[SetWarmupBaselineCommand, domain.Session](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

// SetWarmupBaselineCommandHandler stores the per-finger flex-angle
// baseline on an existing session. The write is an idempotent
// overwrite, also after finish - a repeated warmup simply records the
// newest readings.
type SetWarmupBaselineCommandHandler struct {
	store session.Store
}

func NewSetWarmupBaselineCommandHandler(store session.Store) *SetWarmupBaselineCommandHandler {
	return &SetWarmupBaselineCommandHandler{store}
}

func (h *SetWarmupBaselineCommandHandler) Handle(
	ctx context.Context,
	request SetWarmupBaselineCommand,
) (domain.Session, error) {
	existing, err := h.store.Get(ctx, request.SessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return domain.Session{}, core.NewNotFoundError(err)
	case err != nil:
		return domain.Session{}, core.NewCommandError(500, err)
	}

	existing.Baseline = request.Baseline

	if err := h.store.Update(ctx, existing); err != nil {
		return domain.Session{}, core.NewCommandError(500, err)
	}

	return existing, nil
}
