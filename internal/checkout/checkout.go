package checkout

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/yagoutpay/gateway/internal/core/datamodel/order"
)

// RepositoryAPI persists payment orders and their callback outcomes.
type RepositoryAPI interface {
	Create(o *order.PaymentOrder) error
	GetByOrderNumber(orderNumber string) (*order.PaymentOrder, error)
	UpdateStatus(orderNumber, status string, gatewayTransactionID, statusMessage *string, callbackPayload json.RawMessage) error
}

// ServiceAPI is the checkout surface used by the HTTP handlers.
type ServiceAPI interface {
	BuildHostedForm(req CheckoutRequest) (*FormPayload, error)
	SendAPIPayment(ctx context.Context, req CheckoutRequest) (*APIResult, error)
	HandleCallback(ctx context.Context, values url.Values) (*CallbackResult, error)
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLinkResult, error)
	GetOrder(orderNumber string) (*order.PaymentOrder, error)
}
