package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"repair_desk/internal/datastore"
	"repair_desk/internal/repair"
	"repair_desk/internal/web"

	"github.com/rs/zerolog"
)

// Client-facing messages.
const (
	msgUnavailable       = "伺服器初始化失敗，無法連線至 Google Sheets。"
	msgSubmitUnavailable = "伺服器初始化失敗，無法連線至 Google Sheets。請檢查 log 訊息。"
	msgBadJSON           = "請求必須是 JSON 格式。請檢查網頁前端的 Content-Type。"
	msgSubmitOK          = "設備報修資料已成功送出！"
	msgSubmitFailed      = "提交失敗：可能是 Sheets API 限制或連線問題。"
	msgListFailed        = "讀取任務失敗，請檢查 Sheets 權限。"
	msgUpdateOK          = "任務狀態已成功更新為「%s」！"
	msgUpdateFailed      = "更新狀態失敗，請稍後再試。"
)

func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := web.Page(name)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Page not embedded")
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.repairs.Available() {
		writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Datastore: "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Datastore: "available"})
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	if !s.repairs.Available() {
		writeMessage(w, r, http.StatusInternalServerError, msgSubmitUnavailable)
		return
	}

	var req repair.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.repairs.Submit(r.Context(), req); err != nil {
		s.writeFailure(w, r, err, msgSubmitUnavailable, msgSubmitFailed)
		return
	}
	writeMessage(w, r, http.StatusOK, msgSubmitOK)
}

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	if !s.repairs.Available() {
		writeMessage(w, r, http.StatusInternalServerError, msgUnavailable)
		return
	}

	tasks, err := s.repairs.ListTasks(r.Context())
	if err != nil {
		s.writeFailure(w, r, err, msgUnavailable, msgListFailed)
		return
	}
	writeJSON(w, r, http.StatusOK, tasksResponse{Status: statusSuccess, Tasks: tasks})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !s.repairs.Available() {
		writeMessage(w, r, http.StatusInternalServerError, msgUnavailable)
		return
	}

	var req repair.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.repairs.UpdateStatus(r.Context(), req); err != nil {
		s.writeFailure(w, r, err, msgUnavailable, msgUpdateFailed)
		return
	}
	writeMessage(w, r, http.StatusOK, fmt.Sprintf(msgUpdateOK, req.NewStatus))
}

// decodeJSON reads a bounded JSON body into dst. It writes the 400 response
// itself and returns false when the body is not JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Rejecting malformed JSON body")
		writeMessage(w, r, http.StatusBadRequest, msgBadJSON)
		return false
	}
	return true
}

// writeFailure maps a service error onto a response without leaking detail.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error, unavailable, generic string) {
	var verr *repair.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, r, http.StatusBadRequest, verr.Message)
	case errors.Is(err, datastore.ErrUnavailable):
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Datastore unavailable")
		writeMessage(w, r, http.StatusInternalServerError, unavailable)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Datastore operation failed")
		writeMessage(w, r, http.StatusInternalServerError, generic)
	}
}
