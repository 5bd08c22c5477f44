package checkout

import (
	"fmt"
	"html"

	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
)

// renderAutoSubmitForm produces a self-submitting HTML document posting the
// three gateway fields. Values are HTML-escaped; the base64 payloads are
// otherwise embedded as-is.
func renderAutoSubmitForm(p *transaction.BuiltPayload) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Redirecting to payment...</title></head>
<body onload="document.forms[0].submit()">
<p>Redirecting to the payment gateway...</p>
<form method="post" action="%s">
<input type="hidden" name="me_id" value="%s">
<input type="hidden" name="merchant_request" value="%s">
<input type="hidden" name="hash" value="%s">
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>`,
		html.EscapeString(p.ActionURL),
		html.EscapeString(p.MerchantID),
		html.EscapeString(p.MerchantRequest),
		html.EscapeString(p.Hash))
}
