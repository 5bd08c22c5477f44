package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/checkout"
	"github.com/yagoutpay/gateway/internal/core/datamodel/order"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) checkout.RepositoryAPI {
	return &OrderRepository{
		db: db,
	}
}

func (r *OrderRepository) Create(o *order.PaymentOrder) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) GetByOrderNumber(orderNumber string) (*order.PaymentOrder, error) {
	var o order.PaymentOrder
	err := r.db.Where("order_number = ?", orderNumber).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) UpdateStatus(orderNumber, status string, gatewayTransactionID, statusMessage *string, callbackPayload json.RawMessage) error {
	updates := map[string]interface{}{
		"status":       status,
		"processed_at": time.Now(),
	}

	if gatewayTransactionID != nil {
		updates["gateway_transaction_id"] = *gatewayTransactionID
	}

	if statusMessage != nil {
		updates["status_message"] = *statusMessage
	}

	if callbackPayload != nil {
		updates["callback_payload"] = callbackPayload
	}

	return r.db.Model(&order.PaymentOrder{}).Where("order_number = ?", orderNumber).Updates(updates).Error
}
