package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yagoutpay/gateway/internal/core/events"
)

// EventHandler reacts to payment lifecycle events. The audit log is the only
// consumer for now; notification fan-out would hang off the same
// subscriptions.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandlePaymentCompleted(ctx context.Context, event events.Event) error {
	completed, ok := event.(*events.PaymentCompletedEvent)
	if !ok {
		h.logger.Error("invalid event type for payment completed handler", "event_type", event.EventType())
		return fmt.Errorf("expected PaymentCompletedEvent, got %T", event)
	}

	h.logger.Info("payment completed",
		"order_number", completed.OrderNumber,
		"gateway_transaction_id", completed.GatewayTransactionID,
		"amount", completed.Amount,
		"event_id", completed.EventID())
	return nil
}

func (h *EventHandler) HandlePaymentFailed(ctx context.Context, event events.Event) error {
	failed, ok := event.(*events.PaymentFailedEvent)
	if !ok {
		h.logger.Error("invalid event type for payment failed handler", "event_type", event.EventType())
		return fmt.Errorf("expected PaymentFailedEvent, got %T", event)
	}

	h.logger.Warn("payment failed",
		"order_number", failed.OrderNumber,
		"reason", failed.Reason,
		"event_id", failed.EventID())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePaymentCompleted, h.HandlePaymentCompleted)
	eventBus.Subscribe(events.EventTypePaymentFailed, h.HandlePaymentFailed)

	h.logger.Info("checkout event handlers registered",
		"handlers", []string{events.EventTypePaymentCompleted, events.EventTypePaymentFailed})
}
