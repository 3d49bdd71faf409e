package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type tasksResponse struct {
	Status string      `json:"status"`
	Tasks  interface{} `json:"tasks"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Datastore string `json:"datastore"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, code int, message string) {
	status := statusSuccess
	if code >= http.StatusBadRequest {
		status = statusError
	}
	writeJSON(w, r, code, messageResponse{Status: status, Message: message})
}
