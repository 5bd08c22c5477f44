package postgres_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/checkout"
	checkoutpg "github.com/yagoutpay/gateway/internal/checkout/postgres"
	"github.com/yagoutpay/gateway/internal/core/datamodel/order"
)

func TestOrderRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Order Repository Suite")
}

// PaymentOrderSQLite is a test-specific version with text instead of jsonb
// for SQLite compatibility
type PaymentOrderSQLite struct {
	ID          int64  `gorm:"primaryKey"`
	OrderNumber string `gorm:"column:order_number;uniqueIndex;not null"`
	MerchantID  string `gorm:"column:merchant_id;not null"`
	Amount      string `gorm:"column:amount;not null"`
	Country     string `gorm:"column:country"`
	Currency    string `gorm:"column:currency"`
	Channel     string `gorm:"column:channel;not null"`
	Status      string `gorm:"column:status;default:PENDING"`

	GatewayTransactionID *string `gorm:"column:gateway_transaction_id"`
	StatusMessage        *string `gorm:"column:status_message"`
	CallbackPayload      string  `gorm:"column:callback_payload;type:text"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
}

func (PaymentOrderSQLite) TableName() string {
	return "payment_orders"
}

var _ = ginkgo.Describe("OrderRepository", func() {
	var (
		db   *gorm.DB
		repo checkout.RepositoryAPI
	)

	ginkgo.BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		err = db.AutoMigrate(&PaymentOrderSQLite{})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repo = checkoutpg.NewOrderRepository(db)
	})

	newOrder := func(orderNumber string) *order.PaymentOrder {
		return &order.PaymentOrder{
			OrderNumber: orderNumber,
			MerchantID:  "202508080001",
			Amount:      "10.00",
			Country:     "ETH",
			Currency:    "ETB",
			Channel:     "WEB",
			Status:      order.StatusPending,
		}
	}

	ginkgo.It("creates and retrieves an order by order number", func() {
		gomega.Expect(repo.Create(newOrder("ORDER1"))).To(gomega.Succeed())

		got, err := repo.GetByOrderNumber("ORDER1")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(got.MerchantID).To(gomega.Equal("202508080001"))
		gomega.Expect(got.Amount).To(gomega.Equal("10.00"))
		gomega.Expect(got.Status).To(gomega.Equal(order.StatusPending))
	})

	ginkgo.It("returns the order-not-found error for unknown order numbers", func() {
		_, err := repo.GetByOrderNumber("MISSING")
		gomega.Expect(err).To(gomega.Equal(apperrors.ErrOrderNotFound))
	})

	ginkgo.It("rejects duplicate order numbers", func() {
		gomega.Expect(repo.Create(newOrder("ORDER1"))).To(gomega.Succeed())
		gomega.Expect(repo.Create(newOrder("ORDER1"))).NotTo(gomega.Succeed())
	})

	ginkgo.It("updates status, transaction id and callback payload", func() {
		gomega.Expect(repo.Create(newOrder("ORDER1"))).To(gomega.Succeed())

		txnID := "TXN123"
		msg := "SUCCESS"
		payload := json.RawMessage(`{"status":"SUCCESS"}`)
		err := repo.UpdateStatus("ORDER1", order.StatusSuccess, &txnID, &msg, payload)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		got, err := repo.GetByOrderNumber("ORDER1")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(got.Status).To(gomega.Equal(order.StatusSuccess))
		gomega.Expect(got.GatewayTransactionID).NotTo(gomega.BeNil())
		gomega.Expect(*got.GatewayTransactionID).To(gomega.Equal("TXN123"))
		gomega.Expect(got.ProcessedAt).NotTo(gomega.BeNil())
	})

	ginkgo.It("leaves optional fields untouched when nil", func() {
		gomega.Expect(repo.Create(newOrder("ORDER1"))).To(gomega.Succeed())

		err := repo.UpdateStatus("ORDER1", order.StatusFailed, nil, nil, nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		got, err := repo.GetByOrderNumber("ORDER1")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(got.Status).To(gomega.Equal(order.StatusFailed))
		gomega.Expect(got.GatewayTransactionID).To(gomega.BeNil())
	})
})
