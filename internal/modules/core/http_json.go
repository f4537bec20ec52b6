package core

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func RequestBody[TRequest any](r *http.Request) (TRequest, error) {
	var request TRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	return request, err
}

type ResponseOption func(http.ResponseWriter, *http.Request)

func WithHeader(header, value string) ResponseOption {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add(header, value)
	}
}

func WriteOK(w http.ResponseWriter, r *http.Request, body interface{}) {
	WriteResponse(w, r, 200, body)
}

func WriteBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	WriteResponse(w, r, 400, errorBody(err))
}

func WriteNotFound(w http.ResponseWriter, r *http.Request, err error) {
	WriteResponse(w, r, 404, errorBody(err))
}

func WriteInternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	WriteResponse(w, r, 500, errorBody(err))
}

// WriteCommandError maps a handler error to its HTTP response. Errors
// that are not CommandError surface as an opaque 500.
func WriteCommandError(w http.ResponseWriter, r *http.Request, err error) {
	if commandErr, ok := err.(CommandError); ok {
		WriteResponse(w, r, commandErr.StatusCode, commandErr)
		return
	}

	WriteInternalServerError(w, r, err)
}

func WriteResponse(
	w http.ResponseWriter,
	r *http.Request,
	statusCode int,
	body interface{},
	opts ...ResponseOption,
) {
	for _, opt := range opts {
		opt(w, r)
	}

	if body != nil {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(statusCode)
	writeBodyIfPresent(w, body)
}

func errorBody(err error) interface{} {
	if err == nil {
		return nil
	}

	return struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
}

func writeBodyIfPresent(w http.ResponseWriter, body interface{}) {
	if body == nil {
		return
	}

	responseBytes, err := json.Marshal(body)
	if err != nil {
		zap.L().Error("failed to serialize response body", zap.Error(err))
		return
	}

	if _, err := w.Write(responseBytes); err != nil {
		zap.L().Error("failed to write response", zap.Error(err))
	}
}
