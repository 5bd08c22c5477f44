package checkout

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	errors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
	logger  *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		service:     service,
		logger:      logger,
	}
}

// CreateCheckout handles POST /api/v1/checkout. With ?render=html the
// auto-submit document is served directly so a browser can be pointed at it.
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("CreateCheckout: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	payload, err := h.service.BuildHostedForm(req)
	if err != nil {
		h.logger.Error("CreateCheckout: service error", "error", err, "order_number", req.OrderNumber)
		h.HandleServiceError(w, err)
		return
	}

	if r.URL.Query().Get("render") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(payload.HTML))
		return
	}

	h.WriteJSON(w, http.StatusCreated, payload)
}

// APIPayment handles POST /api/v1/checkout/api, the server-to-server flow.
func (h *Handler) APIPayment(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("APIPayment: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	result, err := h.service.SendAPIPayment(r.Context(), req)
	if err != nil {
		h.logger.Error("APIPayment: service error", "error", err, "order_number", req.OrderNumber)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// CreatePaymentLink handles POST /api/v1/payment-links. The static variant
// targets the static QR endpoint.
func (h *Handler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var req PaymentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("CreatePaymentLink: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}
	req.Static = chi.URLParam(r, "kind") == "static"

	result, err := h.service.CreatePaymentLink(r.Context(), req)
	if err != nil {
		h.logger.Error("CreatePaymentLink: service error", "error", err, "order_id", req.OrderID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// GetOrder handles GET /api/v1/orders/{orderNumber}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		h.HandleError(w, errors.NewValidationError("order number is required", errors.ErrCodeMissingField))
		return
	}

	o, err := h.service.GetOrder(orderNumber)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, o)
}
