package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"uigallery/pkg/apperr"
)

const (
	muxVarItemID   string = "item_id"
	muxVarUserID   string = "user_id"
	muxVarAction   string = "action"
	muxVarSlug     string = "slug"
	muxVarCategory string = "category"
)

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		apperr.WriteHTTP(w, apperr.New(apperr.CodeBadPayload, "invalid Content-Type"))
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		apperr.WriteHTTP(w, apperr.New(apperr.CodeBadPayload, "bad json"))
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	return writeJSONStatus(w, logger, data, http.StatusOK)
}

func writeJSONStatus(w http.ResponseWriter, logger *slog.Logger, data any, status int) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		apperr.WriteHTTP(w, apperr.New(apperr.CodeInternal, "failed json marshal"))
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

// writeAppErr maps any error to the envelope; causes stay in the log.
func writeAppErr(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	appErr := apperr.From(err)
	if appErr.Status() >= http.StatusInternalServerError {
		logger.Error(op, "error", err)
	}
	apperr.WriteHTTP(w, appErr)
}
