package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type RecordEventCommand struct {
	SessionID   string   `json:"-"`
	TimestampMS int64    `json:"timestamp_ms"`
	Hit         bool     `json:"hit"`
	FlexAngle   float64  `json:"flex_angle"`
	Accuracy    *float64 `json:"accuracy"`
	RomPercent  *float64 `json:"rom_percent"`
}

func (c RecordEventCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.TimestampMS < 0 {
		return fmt.Errorf("invalid timestamp_ms - %d", c.TimestampMS)
	}

	if math.IsNaN(c.FlexAngle) || math.IsInf(c.FlexAngle, 0) {
		return fmt.Errorf("invalid flex_angle - %v", c.FlexAngle)
	}

	return nil
}

type RecordEventResponse struct {
	TotalEvents int `json:"total_events"`
}

func HandleRecordEvent(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RecordEventCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")

	response, err := mediator.Send[RecordEventCommand, RecordEventResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

// RecordEventCommandHandler appends one gameplay tick to the
// session's event log. Optional fields outside their expected range
// are dropped rather than failing the whole session.
type RecordEventCommandHandler struct {
	store session.Store
}

func NewRecordEventCommandHandler(store session.Store) *RecordEventCommandHandler {
	return &RecordEventCommandHandler{store}
}

func (h *RecordEventCommandHandler) Handle(
	ctx context.Context,
	request RecordEventCommand,
) (RecordEventResponse, error) {
	if _, err := h.store.Get(ctx, request.SessionID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return RecordEventResponse{}, core.NewNotFoundError(err)
		}
		return RecordEventResponse{}, core.NewCommandError(500, err)
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		SessionID:   request.SessionID,
		TimestampMS: request.TimestampMS,
		Hit:         request.Hit,
		FlexAngle:   request.FlexAngle,
		Accuracy:    sanitizeFraction(request.Accuracy),
		RomPercent:  sanitizeFraction(request.RomPercent),
	}

	total, err := h.store.AppendEvent(ctx, event)
	if err != nil {
		return RecordEventResponse{}, core.NewCommandError(500, err)
	}

	return RecordEventResponse{TotalEvents: total}, nil
}

func sanitizeFraction(value *float64) *float64 {
	if value == nil {
		return nil
	}

	if math.IsNaN(*value) || math.IsInf(*value, 0) || *value < 0 || *value > 1 {
		return nil
	}

	return value
}
