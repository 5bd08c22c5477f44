package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a plain error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes a structured application error with its mapped HTTP
// status.
func (h *BaseHandler) HandleError(w http.ResponseWriter, appErr *errors.AppError) {
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps any service-layer error onto the wire: application
// errors keep their own status and shape, everything else becomes a 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.HandleError(w, appErr)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
