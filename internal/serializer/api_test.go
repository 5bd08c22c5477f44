package serializer_test

import (
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
	"github.com/yagoutpay/gateway/internal/serializer"
)

func minimalAPIRecord() transaction.Record {
	rec := minimalWebRecord()
	rec.Channel = transaction.ChannelAPI
	rec.CustomerMobile = "0912345678"
	rec.PgID = "67ee846571e740418d688c3f"
	rec.Paymode = "WA"
	rec.SchemeID = "7"
	rec.WalletType = "telebirr"
	return rec
}

var _ = Describe("RenderAPI", func() {
	var (
		out     string
		decoded map[string]map[string]interface{}
	)

	BeforeEach(func() {
		var err error
		out, err = serializer.RenderAPI(minimalAPIRecord())
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal([]byte(out), &decoded)).To(Succeed())
	})

	It("emits the eight top-level sections", func() {
		for _, section := range []string{
			"card_details", "other_details", "ship_details", "txn_details",
			"item_details", "cust_details", "pg_details", "bill_details",
		} {
			Expect(decoded).To(HaveKey(section))
		}
	})

	It("emits sections in the gateway's fixed order", func() {
		order := []string{
			"card_details", "other_details", "ship_details", "txn_details",
			"item_details", "cust_details", "pg_details", "bill_details",
		}
		last := -1
		for _, section := range order {
			idx := strings.Index(out, `"`+section+`"`)
			Expect(idx).To(BeNumerically(">", last), "section %s out of order", section)
			last = idx
		}
	})

	It("preserves the gateway's sucessUrl spelling", func() {
		Expect(decoded["txn_details"]).To(HaveKey("sucessUrl"))
		Expect(decoded["txn_details"]).NotTo(HaveKey("successUrl"))
	})

	It("always emits the channel as API", func() {
		rec := minimalAPIRecord()
		rec.Channel = transaction.ChannelWeb
		out, err := serializer.RenderAPI(rec)
		Expect(err).NotTo(HaveOccurred())

		var d map[string]map[string]interface{}
		Expect(json.Unmarshal([]byte(out), &d)).To(Succeed())
		Expect(d["txn_details"]["channel"]).To(Equal("API"))
	})

	It("maps the wallet selector into pg_details with the gateway key names", func() {
		pg := decoded["pg_details"]
		Expect(pg["pg_Id"]).To(Equal("67ee846571e740418d688c3f"))
		Expect(pg["paymode"]).To(Equal("WA"))
		Expect(pg["scheme_Id"]).To(Equal("7"))
		Expect(pg["wallet_type"]).To(Equal("telebirr"))
	})

	It("maps customer contact fields to emailId and mobileNumber", func() {
		cust := decoded["cust_details"]
		Expect(cust["mobileNumber"]).To(Equal("0912345678"))
		Expect(cust).To(HaveKey("emailId"))
		Expect(cust["isLoggedIn"]).To(Equal("Y"))
	})

	It("emits empty strings rather than omitting absent fields", func() {
		card := decoded["card_details"]
		Expect(card["cardNumber"]).To(Equal(""))
		Expect(card["cvv"]).To(Equal(""))
	})
})
