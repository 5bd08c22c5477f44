// Package response decodes what the gateway sends back: encrypted callback
// sections on the redirect path, and encrypted response bodies on the API
// path. Decoding is best-effort by design; one undecryptable section never
// hides the others.
package response

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/yagoutpay/gateway/internal/crypto"
)

// KnownSections are the callback field names the gateway encrypts
// independently.
var KnownSections = []string{
	"txn_response",
	"pg_details",
	"txn_details",
	"other_details",
	"fraud_details",
	"card_details",
	"cust_details",
	"bill_details",
	"ship_details",
}

// Undecryptable is substituted for a section that is present but cannot be
// decrypted, so callers still see every other section.
const Undecryptable = "[undecryptable]"

// DecryptKnownSections decrypts each known section that is present and
// non-empty. Unknown fields pass through untouched.
func DecryptKnownSections(fields map[string]string, key []byte) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	for _, name := range KnownSections {
		value, ok := fields[name]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		plain, err := crypto.Decrypt(value, key)
		if err != nil {
			out[name] = Undecryptable
			continue
		}
		out[name] = string(plain)
	}
	return out
}

// DecryptValues adapts DecryptKnownSections to an HTTP form callback.
func DecryptValues(values url.Values, key []byte) map[string]string {
	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}
	return DecryptKnownSections(fields, key)
}

// Parsed is the result of the multi-format parse. Exactly one of the As*
// fields is set on success; all empty means only the raw text survived.
type Parsed struct {
	Raw        string
	AsJSON     interface{}
	AsQuery    map[string]string
	AsSections []string
}

// ParseDecrypted attempts, in order: JSON, key=value query string (only if
// the text contains both '=' and '&'), then tilde sectioning (only if the
// text contains '~'). It never fails; exhausting every strategy leaves just
// the raw text.
func ParseDecrypted(text string) Parsed {
	out := Parsed{Raw: text}

	var decoded interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err == nil {
		out.AsJSON = decoded
		return out
	}

	if strings.Contains(text, "=") && strings.Contains(text, "&") {
		if values, err := url.ParseQuery(text); err == nil {
			query := make(map[string]string, len(values))
			for k := range values {
				query[k] = values.Get(k)
			}
			out.AsQuery = query
			return out
		}
	}

	if strings.Contains(text, "~") {
		out.AsSections = strings.Split(text, "~")
	}

	return out
}

// txnResponseFields is the positional layout of a decrypted txn_response
// section.
var txnResponseFields = []string{
	"ag_id",
	"me_id",
	"order_no",
	"amount",
	"country",
	"currency",
	"date",
	"time",
	"transaction_id",
	"ag_ref",
	"status",
	"static_qr_id",
	"payment_link_receipt",
	"final_amount",
}

// ParseTxnResponse maps the pipe-separated txn_response section into named
// fields. Short payloads simply yield fewer fields; "null" tokens are
// treated as absent.
func ParseTxnResponse(decrypted string) map[string]string {
	tokens := strings.Split(decrypted, "|")
	out := make(map[string]string)
	for i, name := range txnResponseFields {
		if i >= len(tokens) {
			break
		}
		v := strings.TrimSpace(tokens[i])
		if v == "" || strings.EqualFold(v, "null") {
			continue
		}
		out[name] = v
	}
	return out
}
