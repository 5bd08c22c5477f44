// Package serializer renders a validated transaction record into the two
// plaintext shapes the gateway accepts: the pipe/tilde flat string for the
// hosted form, and the nested JSON body for the direct API. Both renderers
// are pure functions over a normalized record.
package serializer

import (
	"strings"

	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
)

// SectionCount is the fixed number of tilde-joined sections in the flat
// rendering. The remote parser splits positionally, so sections are never
// omitted even when entirely empty.
const SectionCount = 9

func joinPipe(fields ...string) string {
	return strings.Join(fields, "|")
}

// RenderFlat produces the sectioned merchant_request plaintext. Section
// field counts are fixed: missing optional values render as empty strings.
// The eighth section is a reserved protocol placeholder and stays empty.
func RenderFlat(rec transaction.Record) string {
	rec = rec.WithDefaults()

	txnDetails := joinPipe(
		rec.AggregatorID,
		rec.MerchantID,
		rec.OrderNumber,
		rec.Amount,
		rec.Country,
		rec.Currency,
		rec.TransactionType,
		rec.SuccessURL,
		rec.FailureURL,
		string(rec.Channel),
	)

	pgDetails := joinPipe(rec.PgID, rec.Paymode, rec.SchemeID, rec.WalletType)

	cardDetails := joinPipe(rec.CardNumber, rec.ExpiryMonth, rec.ExpiryYear, rec.CVV, rec.CardName)

	custDetails := joinPipe(rec.CustomerName, rec.CustomerEmail, rec.CustomerMobile, rec.UniqueID, rec.IsLoggedIn)

	billDetails := joinPipe(rec.BillAddress, rec.BillCity, rec.BillState, rec.BillCountry, rec.BillZip)

	shipDetails := joinPipe(
		rec.ShipAddress,
		rec.ShipCity,
		rec.ShipState,
		rec.ShipCountry,
		rec.ShipZip,
		rec.ShipDays,
		rec.AddressCount,
	)

	itemDetails := joinPipe(rec.ItemCount, rec.ItemValue, rec.ItemCategory)

	// Reserved placeholder between item_details and udf_details.
	const reserved = ""

	var udfDetails string
	if rec.Channel == transaction.ChannelAPI {
		udfDetails = joinPipe(rec.UDF1, rec.UDF2, rec.UDF3, rec.UDF4, rec.UDF5, rec.UDF6, rec.UDF7)
	} else {
		udfDetails = joinPipe(rec.UDF1, rec.UDF2, rec.UDF3, rec.UDF4, rec.UDF5)
	}

	return strings.Join([]string{
		txnDetails,
		pgDetails,
		cardDetails,
		custDetails,
		billDetails,
		shipDetails,
		itemDetails,
		reserved,
		udfDetails,
	}, "~")
}
