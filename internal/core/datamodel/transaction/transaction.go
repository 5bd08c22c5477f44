package transaction

import "strings"

// Channel is the initiation mode of a transaction: hosted redirect form,
// mobile, or direct server-to-server API.
type Channel string

const (
	ChannelWeb    Channel = "WEB"
	ChannelMobile Channel = "MOBILE"
	ChannelAPI    Channel = "API"
)

// TransactionType currently only supports SALE.
const TypeSale = "SALE"

// Record is the canonical transaction input used to build both the hosted
// form and the direct API payloads. All values are strings because the
// gateway consumes positional pipe-delimited text; amount keeps its exact
// decimal formatting.
//
// A Record is treated as immutable once validated: every assembly run is a
// pure function of the record plus the merchant key.
type Record struct {
	AggregatorID    string
	MerchantID      string
	OrderNumber     string
	Amount          string
	Country         string
	Currency        string
	TransactionType string
	SuccessURL      string
	FailureURL      string
	Channel         Channel

	CustomerName   string
	CustomerEmail  string
	CustomerMobile string
	UniqueID       string
	IsLoggedIn     string

	PgID       string
	Paymode    string
	SchemeID   string
	WalletType string

	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
	CardName    string

	BillAddress string
	BillCity    string
	BillState   string
	BillCountry string
	BillZip     string

	ShipAddress  string
	ShipCity     string
	ShipState    string
	ShipCountry  string
	ShipZip      string
	ShipDays     string
	AddressCount string

	ItemCount    string
	ItemValue    string
	ItemCategory string

	UDF1 string
	UDF2 string
	UDF3 string
	UDF4 string
	UDF5 string
	UDF6 string
	UDF7 string
}

// WithDefaults returns a copy of the record with surrounding whitespace
// trimmed and shared optional-field defaults applied. Both renderers run
// over the normalized copy so defaulting logic lives in exactly one place.
func (r Record) WithDefaults() Record {
	out := r

	out.AggregatorID = strings.TrimSpace(r.AggregatorID)
	out.MerchantID = strings.TrimSpace(r.MerchantID)
	out.OrderNumber = strings.TrimSpace(r.OrderNumber)
	out.Amount = strings.TrimSpace(r.Amount)
	out.Country = strings.TrimSpace(r.Country)
	out.Currency = strings.TrimSpace(r.Currency)
	out.TransactionType = strings.TrimSpace(r.TransactionType)
	out.SuccessURL = strings.TrimSpace(r.SuccessURL)
	out.FailureURL = strings.TrimSpace(r.FailureURL)
	out.CustomerName = strings.TrimSpace(r.CustomerName)
	out.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
	out.CustomerMobile = strings.TrimSpace(r.CustomerMobile)
	out.UniqueID = strings.TrimSpace(r.UniqueID)
	out.IsLoggedIn = strings.TrimSpace(r.IsLoggedIn)

	if out.IsLoggedIn == "" {
		out.IsLoggedIn = "Y"
	}

	return out
}

// BuiltPayload is the assembled hosted-form artifact. The plaintext request,
// hash input and hash hex are kept for debugging and round-trip tests; they
// must never be sent to the gateway.
type BuiltPayload struct {
	MerchantID      string
	MerchantRequest string
	Hash            string

	RequestPlain string
	HashInput    string
	HashHex      string

	ActionURL string
}

// APIPayload is the assembled direct-API artifact. Hash fields are populated
// only when the deployment is configured to send a hash alongside the body.
type APIPayload struct {
	MerchantID      string
	MerchantRequest string

	RequestPlain string
	Hash         string
	HashHex      string
	HashInput    string
}
