// Package gateway holds the fixed per-environment endpoint constants and
// the HTTP transport used to talk to the payment gateway.
package gateway

// Environment selects the gateway deployment.
type Environment string

const (
	EnvUAT  Environment = "uat"
	EnvProd Environment = "prod"
)

const (
	actionURLUAT  = "https://uatcheckout.yagoutpay.com/ms-transaction-core-1-0/paymentRedirection/checksumGatewayPage"
	actionURLProd = "https://checkout.yagoutpay.com/ms-transaction-core-1-0/paymentRedirection/checksumGatewayPage"

	apiURLUAT  = "https://uatcheckout.yagoutpay.com/ms-transaction-core-1-0/apiRedirection/apiIntegration"
	apiURLProd = "https://checkout.yagoutpay.com/ms-transaction-core-1-0/apiRedirection/apiIntegration"

	staticLinkURLUAT  = "https://uatcheckout.yagoutpay.com/ms-transaction-core-1-0/sdk/staticQRPaymentResponse"
	staticLinkURLProd = "https://checkout.yagoutpay.com/ms-transaction-core-1-0/sdk/staticQRPaymentResponse"

	dynamicLinkURLUAT  = "https://uatcheckout.yagoutpay.com/ms-transaction-core-1-0/sdk/paymentByLinkResponse"
	dynamicLinkURLProd = "https://checkout.yagoutpay.com/ms-transaction-core-1-0/sdk/paymentByLinkResponse"
)

// ActionURL returns the hosted-form redirect target. Unknown environments
// fall back to UAT, the documented default.
func ActionURL(env Environment) string {
	if env == EnvProd {
		return actionURLProd
	}
	return actionURLUAT
}

// APIURL returns the direct API integration endpoint.
func APIURL(env Environment) string {
	if env == EnvProd {
		return apiURLProd
	}
	return apiURLUAT
}

// StaticLinkURL returns the static QR payment-link endpoint.
func StaticLinkURL(env Environment) string {
	if env == EnvProd {
		return staticLinkURLProd
	}
	return staticLinkURLUAT
}

// DynamicLinkURL returns the payment-by-link endpoint.
func DynamicLinkURL(env Environment) string {
	if env == EnvProd {
		return dynamicLinkURLProd
	}
	return dynamicLinkURLUAT
}

// APIDefaults is the documented fallback payment-method selector used when
// a direct API call does not specify one.
type APIDefaults struct {
	PgID       string
	Paymode    string
	SchemeID   string
	WalletType string
}

// DefaultSelector matches the gateway's published Telebirr wallet option.
var DefaultSelector = APIDefaults{
	PgID:       "67ee846571e740418d688c3f",
	Paymode:    "WA",
	SchemeID:   "7",
	WalletType: "telebirr",
}
