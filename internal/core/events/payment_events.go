package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeCheckoutStarted  = "checkout.started"
	EventTypePaymentCompleted = "payment.completed"
	EventTypePaymentFailed    = "payment.failed"
)

type CheckoutStartedEvent struct {
	BaseEvent
	OrderNumber string `json:"order_number"`
	MerchantID  string `json:"merchant_id"`
	Amount      string `json:"amount"`
	Channel     string `json:"channel"`
}

func NewCheckoutStartedEvent(orderNumber, merchantID, amount, channel string) *CheckoutStartedEvent {
	return &CheckoutStartedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCheckoutStarted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_number": orderNumber,
				"merchant_id":  merchantID,
				"amount":       amount,
				"channel":      channel,
			},
		},
		OrderNumber: orderNumber,
		MerchantID:  merchantID,
		Amount:      amount,
		Channel:     channel,
	}
}

type PaymentCompletedEvent struct {
	BaseEvent
	OrderNumber          string `json:"order_number"`
	GatewayTransactionID string `json:"gateway_transaction_id"`
	Amount               string `json:"amount"`
	Status               string `json:"status"`
}

func NewPaymentCompletedEvent(orderNumber, gatewayTransactionID, amount, status string) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_number":           orderNumber,
				"gateway_transaction_id": gatewayTransactionID,
				"amount":                 amount,
				"status":                 status,
			},
		},
		OrderNumber:          orderNumber,
		GatewayTransactionID: gatewayTransactionID,
		Amount:               amount,
		Status:               status,
	}
}

type PaymentFailedEvent struct {
	BaseEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

func NewPaymentFailedEvent(orderNumber, reason string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_number": orderNumber,
				"reason":       reason,
			},
		},
		OrderNumber: orderNumber,
		Reason:      reason,
	}
}
