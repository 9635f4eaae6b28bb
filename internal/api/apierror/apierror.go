// Package apierror writes the API's structured error responses. Every
// failure surfaces as a {"message": ...} JSON body with a 4xx/5xx status,
// logged through the request-scoped logger.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

type Response struct {
	Message string `json:"message"`
}

// Write sends an error response. message is the client-facing text; err is
// internal detail that is only logged, except in development and test
// environments where it is appended to the message.
func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	body := message
	if err != nil && (env == "development" || env == "test") {
		body = fmt.Sprintf("%s: %v", message, err)
	}

	WriteMessage(w, status, body)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(Response{Message: message})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
