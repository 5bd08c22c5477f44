package checkout

import (
	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
	"github.com/yagoutpay/gateway/internal/response"
)

// CheckoutRequest is the inbound JSON shape for both the hosted-form and
// direct-API flows. Merchant identity comes from service configuration, not
// from the caller.
type CheckoutRequest struct {
	OrderNumber string `json:"order_number,omitempty"`
	Amount      string `json:"amount"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	Channel     string `json:"channel,omitempty"`
	SuccessURL  string `json:"success_url,omitempty"`
	FailureURL  string `json:"failure_url,omitempty"`

	CustomerName   string `json:"customer_name,omitempty"`
	CustomerEmail  string `json:"customer_email,omitempty"`
	CustomerMobile string `json:"customer_mobile,omitempty"`
	UniqueID       string `json:"unique_id,omitempty"`
	IsLoggedIn     string `json:"is_logged_in,omitempty"`

	PgID       string `json:"pg_id,omitempty"`
	Paymode    string `json:"paymode,omitempty"`
	SchemeID   string `json:"scheme_id,omitempty"`
	WalletType string `json:"wallet_type,omitempty"`

	BillAddress string `json:"bill_address,omitempty"`
	BillCity    string `json:"bill_city,omitempty"`
	BillState   string `json:"bill_state,omitempty"`
	BillCountry string `json:"bill_country,omitempty"`
	BillZip     string `json:"bill_zip,omitempty"`

	ItemCount    string `json:"item_count,omitempty"`
	ItemValue    string `json:"item_value,omitempty"`
	ItemCategory string `json:"item_category,omitempty"`

	UDF1 string `json:"udf1,omitempty"`
	UDF2 string `json:"udf2,omitempty"`
	UDF3 string `json:"udf3,omitempty"`
	UDF4 string `json:"udf4,omitempty"`
	UDF5 string `json:"udf5,omitempty"`
	UDF6 string `json:"udf6,omitempty"`
	UDF7 string `json:"udf7,omitempty"`
}

func (r CheckoutRequest) toRecord(aggregatorID, merchantID string) transaction.Record {
	channel := transaction.Channel(r.Channel)
	if channel == "" {
		channel = transaction.ChannelWeb
	}
	return transaction.Record{
		AggregatorID:    aggregatorID,
		MerchantID:      merchantID,
		OrderNumber:     r.OrderNumber,
		Amount:          r.Amount,
		Country:         r.Country,
		Currency:        r.Currency,
		TransactionType: transaction.TypeSale,
		SuccessURL:      r.SuccessURL,
		FailureURL:      r.FailureURL,
		Channel:         channel,

		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerMobile: r.CustomerMobile,
		UniqueID:       r.UniqueID,
		IsLoggedIn:     r.IsLoggedIn,

		PgID:       r.PgID,
		Paymode:    r.Paymode,
		SchemeID:   r.SchemeID,
		WalletType: r.WalletType,

		BillAddress: r.BillAddress,
		BillCity:    r.BillCity,
		BillState:   r.BillState,
		BillCountry: r.BillCountry,
		BillZip:     r.BillZip,

		ItemCount:    r.ItemCount,
		ItemValue:    r.ItemValue,
		ItemCategory: r.ItemCategory,

		UDF1: r.UDF1,
		UDF2: r.UDF2,
		UDF3: r.UDF3,
		UDF4: r.UDF4,
		UDF5: r.UDF5,
		UDF6: r.UDF6,
		UDF7: r.UDF7,
	}
}

// FormPayload is everything a merchant page needs to redirect the customer:
// the three form fields, the target URL, and a ready auto-submit document.
type FormPayload struct {
	OrderNumber     string `json:"order_number"`
	MeID            string `json:"me_id"`
	MerchantRequest string `json:"merchant_request"`
	Hash            string `json:"hash"`
	ActionURL       string `json:"action_url"`
	HTML            string `json:"html"`
}

// APIResult carries the gateway's API response plus the decrypted and
// parsed payload when decryption was possible.
type APIResult struct {
	OrderNumber   string           `json:"order_number"`
	Status        string           `json:"status"`
	StatusMessage string           `json:"status_message"`
	Decrypted     *response.Parsed `json:"decrypted,omitempty"`
}

// CallbackResult summarizes a processed gateway callback.
type CallbackResult struct {
	OrderNumber          string            `json:"order_number"`
	Status               string            `json:"status"`
	GatewayTransactionID string            `json:"gateway_transaction_id,omitempty"`
	Sections             map[string]string `json:"sections"`
}

// PaymentLinkRequest is the payment-by-link plain body before encryption.
// Field names follow the gateway's link schema.
type PaymentLinkRequest struct {
	ReqUserID     string   `json:"req_user_id"`
	MeID          string   `json:"me_id,omitempty"`
	Amount        string   `json:"amount"`
	OrderID       string   `json:"order_id"`
	Product       string   `json:"product"`
	CustomerEmail string   `json:"customer_email,omitempty"`
	MobileNo      string   `json:"mobile_no,omitempty"`
	ExpiryDate    string   `json:"expiry_date,omitempty"`
	MediaType     []string `json:"media_type,omitempty"`
	FirstName     string   `json:"first_name,omitempty"`
	LastName      string   `json:"last_name,omitempty"`
	DialCode      string   `json:"dial_code,omitempty"`
	SuccessURL    string   `json:"success_url,omitempty"`
	FailureURL    string   `json:"failure_url,omitempty"`
	Country       string   `json:"country,omitempty"`
	Currency      string   `json:"currency,omitempty"`

	// Static routes the request to the static QR endpoint instead of the
	// payment-by-link one. Not part of the encrypted body.
	Static bool `json:"-"`
}

// PaymentLinkResult returns whatever the link endpoint produced: the raw
// body, and the decrypted nested payload when one was present.
type PaymentLinkResult struct {
	Raw       string           `json:"raw"`
	Decrypted *response.Parsed `json:"decrypted,omitempty"`
}
