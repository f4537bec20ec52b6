package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

// Finish payload fields with a dedicated session column. Anything
// else the client sends lands in the residual metrics blob.
const (
	fieldScore        = "score"
	fieldAccuracy     = "accuracy"
	fieldRomPercent   = "rom_percent"
	fieldReactionTime = "reaction_time"
	fieldSmoothness   = "smoothness"
)

type FinishSessionCommand struct {
	SessionID string

	Score          *int
	Accuracy       *float64
	RomPercent     *float64
	ReactionTimeMS *float64
	Smoothness     *float64

	ResidualMetrics domain.Metrics
}

// ParseFinishPayload splits a finish request body into the modeled
// metric fields and the residual remainder.
func ParseFinishPayload(sessionID string, payload map[string]interface{}) (FinishSessionCommand, error) {
	command := FinishSessionCommand{SessionID: sessionID}

	for key, value := range payload {
		number, isNumber := value.(float64)

		switch key {
		case fieldScore:
			if !isNumber {
				return command, fmt.Errorf("invalid %s - %v", key, value)
			}
			score := int(number)
			command.Score = &score
		case fieldAccuracy:
			if !isNumber {
				return command, fmt.Errorf("invalid %s - %v", key, value)
			}
			command.Accuracy = &number
		case fieldRomPercent:
			if !isNumber {
				return command, fmt.Errorf("invalid %s - %v", key, value)
			}
			command.RomPercent = &number
		case fieldReactionTime:
			if !isNumber {
				return command, fmt.Errorf("invalid %s - %v", key, value)
			}
			command.ReactionTimeMS = &number
		case fieldSmoothness:
			if !isNumber {
				return command, fmt.Errorf("invalid %s - %v", key, value)
			}
			command.Smoothness = &number
		default:
			if command.ResidualMetrics == nil {
				command.ResidualMetrics = domain.Metrics{}
			}
			command.ResidualMetrics[key] = value
		}
	}

	return command, nil
}

func HandleFinishSession(w http.ResponseWriter, r *http.Request) {
	payload, err := core.RequestBody[map[string]interface{}](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command, err := ParseFinishPayload(chi.URLParam(r, "id"), payload)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[FinishSessionCommand, domain.Session](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (c FinishSessionCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.Score != nil && *c.Score < 0 {
		return fmt.Errorf("invalid score - %d", *c.Score)
	}

	if c.ReactionTimeMS != nil && *c.ReactionTimeMS < 0 {
		return fmt.Errorf("invalid reaction_time - %v", *c.ReactionTimeMS)
	}

	for name, value := range map[string]*float64{
		fieldAccuracy:   c.Accuracy,
		fieldRomPercent: c.RomPercent,
		fieldSmoothness: c.Smoothness,
	} {
		if value != nil && (*value < 0 || *value > 1) {
			return fmt.Errorf("invalid %s - %v, expected a value in [0, 1]", name, *value)
		}
	}

	return nil
}

// FinishSessionCommandHandler stamps finished_at and stores the
// finish-time metrics. Re-finishing overwrites - last writer wins,
// matching the store's concurrency model.
type FinishSessionCommandHandler struct {
	store session.Store
}

func NewFinishSessionCommandHandler(store session.Store) *FinishSessionCommandHandler {
	return &FinishSessionCommandHandler{store}
}

func (h *FinishSessionCommandHandler) Handle(
	ctx context.Context,
	request FinishSessionCommand,
) (domain.Session, error) {
	existing, err := h.store.Get(ctx, request.SessionID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return domain.Session{}, core.NewNotFoundError(err)
	case err != nil:
		return domain.Session{}, core.NewCommandError(500, err)
	}

	finishedAt := time.Now().UTC()

	existing.Score = request.Score
	existing.Accuracy = request.Accuracy
	existing.RomPercent = request.RomPercent
	existing.ReactionTimeMS = request.ReactionTimeMS
	existing.Smoothness = request.Smoothness
	existing.ResidualMetrics = request.ResidualMetrics
	existing.FinishedAt = &finishedAt

	if err := h.store.Update(ctx, existing); err != nil {
		return domain.Session{}, core.NewCommandError(500, err)
	}

	return existing, nil
}
