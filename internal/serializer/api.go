package serializer

import (
	"encoding/json"

	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
)

// The nested API payload uses the gateway's own field names, which are
// renamed from the flat record rather than mirrored 1:1. Struct field order
// fixes the emitted key order.
//
// "sucessUrl" is the gateway's spelling, observed across its revisions.
// Do not correct it; the remote parser matches by key name.

type apiCardDetails struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
	CardName    string `json:"cardName"`
}

type apiOtherDetails struct {
	UDF1 string `json:"udf1"`
	UDF2 string `json:"udf2"`
	UDF3 string `json:"udf3"`
	UDF4 string `json:"udf4"`
	UDF5 string `json:"udf5"`
	UDF6 string `json:"udf6"`
	UDF7 string `json:"udf7"`
}

type apiShipDetails struct {
	ShipAddress  string `json:"shipAddress"`
	ShipCity     string `json:"shipCity"`
	ShipState    string `json:"shipState"`
	ShipCountry  string `json:"shipCountry"`
	ShipZip      string `json:"shipZip"`
	ShipDays     string `json:"shipDays"`
	AddressCount string `json:"addressCount"`
}

type apiTxnDetails struct {
	AgID            string `json:"agId"`
	MeID            string `json:"meId"`
	OrderNo         string `json:"orderNo"`
	Amount          string `json:"amount"`
	Country         string `json:"country"`
	Currency        string `json:"currency"`
	TransactionType string `json:"transactionType"`
	SucessURL       string `json:"sucessUrl"`
	FailureURL      string `json:"failureUrl"`
	Channel         string `json:"channel"`
}

type apiItemDetails struct {
	ItemCount    string `json:"itemCount"`
	ItemValue    string `json:"itemValue"`
	ItemCategory string `json:"itemCategory"`
}

type apiCustDetails struct {
	CustomerName string `json:"customerName"`
	EmailID      string `json:"emailId"`
	MobileNumber string `json:"mobileNumber"`
	UniqueID     string `json:"uniqueId"`
	IsLoggedIn   string `json:"isLoggedIn"`
}

type apiPgDetails struct {
	PgID       string `json:"pg_Id"`
	Paymode    string `json:"paymode"`
	SchemeID   string `json:"scheme_Id"`
	WalletType string `json:"wallet_type"`
}

type apiBillDetails struct {
	BillAddress string `json:"billAddress"`
	BillCity    string `json:"billCity"`
	BillState   string `json:"billState"`
	BillCountry string `json:"billCountry"`
	BillZip     string `json:"billZip"`
}

type apiRequest struct {
	CardDetails  apiCardDetails  `json:"card_details"`
	OtherDetails apiOtherDetails `json:"other_details"`
	ShipDetails  apiShipDetails  `json:"ship_details"`
	TxnDetails   apiTxnDetails   `json:"txn_details"`
	ItemDetails  apiItemDetails  `json:"item_details"`
	CustDetails  apiCustDetails  `json:"cust_details"`
	PgDetails    apiPgDetails    `json:"pg_details"`
	BillDetails  apiBillDetails  `json:"bill_details"`
}

// RenderAPI produces the compact JSON merchantRequest plaintext for the
// direct API channel. The channel key is always emitted as "API".
func RenderAPI(rec transaction.Record) (string, error) {
	rec = rec.WithDefaults()

	payload := apiRequest{
		CardDetails: apiCardDetails{
			CardNumber:  rec.CardNumber,
			ExpiryMonth: rec.ExpiryMonth,
			ExpiryYear:  rec.ExpiryYear,
			CVV:         rec.CVV,
			CardName:    rec.CardName,
		},
		OtherDetails: apiOtherDetails{
			UDF1: rec.UDF1,
			UDF2: rec.UDF2,
			UDF3: rec.UDF3,
			UDF4: rec.UDF4,
			UDF5: rec.UDF5,
			UDF6: rec.UDF6,
			UDF7: rec.UDF7,
		},
		ShipDetails: apiShipDetails{
			ShipAddress:  rec.ShipAddress,
			ShipCity:     rec.ShipCity,
			ShipState:    rec.ShipState,
			ShipCountry:  rec.ShipCountry,
			ShipZip:      rec.ShipZip,
			ShipDays:     rec.ShipDays,
			AddressCount: rec.AddressCount,
		},
		TxnDetails: apiTxnDetails{
			AgID:            rec.AggregatorID,
			MeID:            rec.MerchantID,
			OrderNo:         rec.OrderNumber,
			Amount:          rec.Amount,
			Country:         rec.Country,
			Currency:        rec.Currency,
			TransactionType: rec.TransactionType,
			SucessURL:       rec.SuccessURL,
			FailureURL:      rec.FailureURL,
			Channel:         string(transaction.ChannelAPI),
		},
		ItemDetails: apiItemDetails{
			ItemCount:    rec.ItemCount,
			ItemValue:    rec.ItemValue,
			ItemCategory: rec.ItemCategory,
		},
		CustDetails: apiCustDetails{
			CustomerName: rec.CustomerName,
			EmailID:      rec.CustomerEmail,
			MobileNumber: rec.CustomerMobile,
			UniqueID:     rec.UniqueID,
			IsLoggedIn:   rec.IsLoggedIn,
		},
		PgDetails: apiPgDetails{
			PgID:       rec.PgID,
			Paymode:    rec.Paymode,
			SchemeID:   rec.SchemeID,
			WalletType: rec.WalletType,
		},
		BillDetails: apiBillDetails{
			BillAddress: rec.BillAddress,
			BillCity:    rec.BillCity,
			BillState:   rec.BillState,
			BillCountry: rec.BillCountry,
			BillZip:     rec.BillZip,
		},
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
