package order

import (
	"encoding/json"
	"time"
)

const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusUnknown = "UNKNOWN"
)

// PaymentOrder records one checkout attempt and, once the gateway calls
// back, its outcome. The amount stays a string to preserve the exact
// decimal formatting that was hashed and encrypted.
type PaymentOrder struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`
	MerchantID  string `json:"merchant_id" gorm:"not null"`
	Amount      string `json:"amount" gorm:"not null"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	Channel     string `json:"channel" gorm:"not null"`
	Status      string `json:"status" gorm:"not null;default:PENDING"`

	GatewayTransactionID *string         `json:"gateway_transaction_id,omitempty"`
	StatusMessage        *string         `json:"status_message,omitempty"`
	CallbackPayload      json.RawMessage `json:"callback_payload,omitempty" gorm:"type:jsonb"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}

func (o *PaymentOrder) IsFinal() bool {
	return o.Status == StatusSuccess || o.Status == StatusFailed
}
