package analysis

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/handora-games/session-api/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
)

type AnalyzeCommand struct {
	Prompt  string                 `json:"prompt"`
	Metrics map[string]interface{} `json:"metrics"`
}

func (c AnalyzeCommand) Validate() error {
	if strings.TrimSpace(c.Prompt) == "" {
		return fmt.Errorf("missing prompt")
	}

	return nil
}

type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[AnalyzeCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[AnalyzeCommand, AnalyzeResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

// BuildPrompt embeds session metrics into the prompt text. Metric
// lines are ordered by key so the same input always produces the
// same prompt.
func BuildPrompt(prompt string, metrics map[string]interface{}) string {
	if len(metrics) == 0 {
		return prompt
	}

	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nSession metrics:\n")
	for _, key := range keys {
		b.WriteString(fmt.Sprintf("- %s: %v\n", key, metrics[key]))
	}

	return b.String()
}

// AnalyzeCommandHandler forwards the prompt and metrics to the
// completion collaborator and returns its text verbatim.
type AnalyzeCommandHandler struct {
	client CompletionClient
}

func NewAnalyzeCommandHandler(client CompletionClient) *AnalyzeCommandHandler {
	return &AnalyzeCommandHandler{client}
}

func (h *AnalyzeCommandHandler) Handle(
	ctx context.Context,
	request AnalyzeCommand,
) (AnalyzeResponse, error) {
	analysis, err := h.client.Complete(ctx, BuildPrompt(request.Prompt, request.Metrics))
	if err != nil {
		return AnalyzeResponse{}, core.NewUpstreamError(err, core.WithReason("completion call failed"))
	}

	return AnalyzeResponse{Analysis: analysis}, nil
}
