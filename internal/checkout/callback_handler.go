package checkout

import (
	"log/slog"
	"net/http"

	errors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/transport"
)

// CallbackHandler receives the gateway's browser-redirect callback. The
// gateway posts an HTML form whose fields are independently encrypted
// sections.
type CallbackHandler struct {
	*transport.BaseHandler
	service ServiceAPI
	logger  *slog.Logger
}

func NewCallbackHandler(baseHandler *transport.BaseHandler, service ServiceAPI, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: baseHandler,
		service:     service,
		logger:      logger,
	}
}

func (h *CallbackHandler) HandlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("invalid payment callback form", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid callback form", errors.ErrCodeValidationFailed))
		return
	}

	result, err := h.service.HandleCallback(r.Context(), r.PostForm)
	if err != nil {
		h.logger.Error("failed to process payment callback", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
