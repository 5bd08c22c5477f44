// Package validation holds the channel-aware field checks that every
// transaction record must pass before serialization. Required fields are
// declared as an explicit per-channel policy table so each channel's rule
// set is auditable and testable on its own.
package validation

import (
	"fmt"
	"net/url"
	"regexp"

	errors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
)

type field struct {
	name string
	get  func(transaction.Record) string
}

var identityFields = []field{
	{"aggregatorId", func(r transaction.Record) string { return r.AggregatorID }},
	{"merchantId", func(r transaction.Record) string { return r.MerchantID }},
	{"orderNumber", func(r transaction.Record) string { return r.OrderNumber }},
	{"amount", func(r transaction.Record) string { return r.Amount }},
	{"country", func(r transaction.Record) string { return r.Country }},
	{"currency", func(r transaction.Record) string { return r.Currency }},
	{"transactionType", func(r transaction.Record) string { return r.TransactionType }},
	{"channel", func(r transaction.Record) string { return string(r.Channel) }},
}

var redirectFields = []field{
	{"successUrl", func(r transaction.Record) string { return r.SuccessURL }},
	{"failureUrl", func(r transaction.Record) string { return r.FailureURL }},
}

var directAPIFields = []field{
	{"customerMobile", func(r transaction.Record) string { return r.CustomerMobile }},
	{"pgId", func(r transaction.Record) string { return r.PgID }},
	{"paymode", func(r transaction.Record) string { return r.Paymode }},
	{"schemeId", func(r transaction.Record) string { return r.SchemeID }},
	{"walletType", func(r transaction.Record) string { return r.WalletType }},
}

// requiredPolicy maps a channel to its full required-field set. The identity
// fields are required for every channel; WEB and MOBILE add the redirect
// URLs; API adds the customer mobile and the payment-method selector.
var requiredPolicy = map[transaction.Channel][]field{
	transaction.ChannelWeb:    join(identityFields, redirectFields),
	transaction.ChannelMobile: join(identityFields, redirectFields),
	transaction.ChannelAPI:    join(identityFields, directAPIFields),
}

func join(sets ...[]field) []field {
	var out []field
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

var (
	reAmount  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	reAlpha3  = regexp.MustCompile(`^[A-Z]{3}$`)
	reChannel = regexp.MustCompile(`^(WEB|MOBILE|API)$`)
)

// Validate checks the record against the required-field policy for its
// channel, then the per-field format rules. The first failing rule is
// returned; required checks always run before format checks so a missing
// field reports "required" rather than "malformed".
func Validate(rec transaction.Record) *errors.AppError {
	required, known := requiredPolicy[rec.Channel]
	if !known {
		// Unknown channel still gets the identity checks so the caller
		// sees a missing merchantId before an invalid channel.
		required = identityFields
	}

	for _, f := range required {
		if f.get(rec) == "" {
			return errors.NewValidationFieldError(f.name,
				fmt.Sprintf("%s is required", f.name), errors.ErrCodeMissingField)
		}
	}

	if !reAmount.MatchString(rec.Amount) {
		return errors.NewValidationFieldError("amount",
			"amount must be a numeric string with up to 2 decimals", errors.ErrCodeInvalidAmount)
	}
	if !reAlpha3.MatchString(rec.Country) {
		return errors.NewValidationFieldError("country",
			"country must be a 3-letter uppercase code", errors.ErrCodeMalformedField)
	}
	if !reAlpha3.MatchString(rec.Currency) {
		return errors.NewValidationFieldError("currency",
			"currency must be a 3-letter uppercase code", errors.ErrCodeMalformedField)
	}
	if rec.TransactionType != transaction.TypeSale {
		return errors.NewValidationFieldError("transactionType",
			"transactionType must be one of: SALE", errors.ErrCodeMalformedField)
	}
	if !reChannel.MatchString(string(rec.Channel)) {
		return errors.NewValidationFieldError("channel",
			"channel must be WEB, MOBILE or API", errors.ErrCodeInvalidChannel)
	}

	if rec.Channel == transaction.ChannelWeb || rec.Channel == transaction.ChannelMobile {
		if err := checkURL("successUrl", rec.SuccessURL); err != nil {
			return err
		}
		if err := checkURL("failureUrl", rec.FailureURL); err != nil {
			return err
		}
	}

	return nil
}

func checkURL(name, raw string) *errors.AppError {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return errors.NewValidationFieldError(name,
			fmt.Sprintf("%s must be a valid URL", name), errors.ErrCodeInvalidURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewValidationFieldError(name,
			fmt.Sprintf("%s must use http or https", name), errors.ErrCodeInvalidURL)
	}
	return nil
}

// RequiredFieldNames exposes the policy table for documentation and tests.
func RequiredFieldNames(ch transaction.Channel) []string {
	fields, ok := requiredPolicy[ch]
	if !ok {
		fields = identityFields
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}
