package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"grubdash/internal/common/apperr"
	"grubdash/internal/common/logger"
)

type envelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps v as {"data": v}.
func WriteData(w http.ResponseWriter, code int, v any) {
	WriteJSON(w, code, envelope{Data: v})
}

// WriteError shapes err as {"message": ...}. Client errors are logged at
// DEBUG, everything else at ERROR.
func WriteError(lg *logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, msg := apperr.From(err)
	fields := map[string]any{"method": r.Method, "path": r.URL.Path, "status": status}
	if status >= http.StatusInternalServerError {
		lg.Error(RequestID(r), "request_failed", msg, err, fields)
	} else {
		fields["reason"] = msg
		lg.Debug(RequestID(r), "request_rejected", msg, fields)
	}
	WriteJSON(w, status, errorBody{Message: msg})
}

func RequestID(r *http.Request) string { return middleware.GetReqID(r.Context()) }
