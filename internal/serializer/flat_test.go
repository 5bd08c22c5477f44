package serializer_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
	"github.com/yagoutpay/gateway/internal/serializer"
)

func TestSerializer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Serializer Suite")
}

func minimalWebRecord() transaction.Record {
	return transaction.Record{
		AggregatorID:    "yagout",
		MerchantID:      "M1",
		OrderNumber:     "ORDER1",
		Amount:          "10.00",
		Country:         "ETH",
		Currency:        "ETB",
		TransactionType: transaction.TypeSale,
		SuccessURL:      "https://x/s",
		FailureURL:      "https://x/f",
		Channel:         transaction.ChannelWeb,
	}
}

var _ = Describe("RenderFlat", func() {
	It("renders exactly nine tilde sections", func() {
		out := serializer.RenderFlat(minimalWebRecord())
		Expect(strings.Split(out, "~")).To(HaveLen(serializer.SectionCount))
	})

	It("renders the txn section positionally", func() {
		out := serializer.RenderFlat(minimalWebRecord())
		sections := strings.Split(out, "~")
		Expect(sections[0]).To(Equal("yagout|M1|ORDER1|10.00|ETH|ETB|SALE|https://x/s|https://x/f|WEB"))
	})

	It("keeps empty optional sections with their full field count", func() {
		out := serializer.RenderFlat(minimalWebRecord())
		sections := strings.Split(out, "~")

		Expect(sections[1]).To(Equal("|||"), "pg_details has 4 fields")
		Expect(sections[2]).To(Equal("||||"), "card_details has 5 fields")
		Expect(sections[3]).To(Equal("||||Y"), "cust_details defaults isLoggedIn to Y")
		Expect(sections[4]).To(Equal("||||"), "bill_details has 5 fields")
		Expect(sections[5]).To(Equal("||||||"), "ship_details has 7 fields")
		Expect(sections[6]).To(Equal("||"), "item_details has 3 fields")
	})

	It("keeps the reserved eighth section empty", func() {
		out := serializer.RenderFlat(minimalWebRecord())
		sections := strings.Split(out, "~")
		Expect(sections[7]).To(BeEmpty())
	})

	It("never trims trailing empty sections", func() {
		out := serializer.RenderFlat(minimalWebRecord())
		Expect(strings.Count(out, "~")).To(Equal(serializer.SectionCount - 1))
		Expect(strings.HasSuffix(out, "~||||")).To(BeTrue(), "udf tail stays in place")
	})

	It("renders five UDF fields for WEB and seven for API", func() {
		rec := minimalWebRecord()
		rec.UDF1 = "a"
		rec.UDF7 = "g"

		webSections := strings.Split(serializer.RenderFlat(rec), "~")
		Expect(webSections[8]).To(Equal("a||||"), "WEB drops udf6 and udf7")

		rec.Channel = transaction.ChannelAPI
		apiSections := strings.Split(serializer.RenderFlat(rec), "~")
		Expect(apiSections[8]).To(Equal("a||||||g"))
	})

	It("keeps customer values in the cust section", func() {
		rec := minimalWebRecord()
		rec.CustomerName = "Abebe"
		rec.CustomerEmail = "abebe@example.com"
		rec.CustomerMobile = "0912345678"
		rec.IsLoggedIn = "N"

		sections := strings.Split(serializer.RenderFlat(rec), "~")
		Expect(sections[3]).To(Equal("Abebe|abebe@example.com|0912345678||N"))
	})

	It("trims surrounding whitespace from identity fields", func() {
		rec := minimalWebRecord()
		rec.MerchantID = "  M1  "
		rec.Amount = " 10.00 "

		sections := strings.Split(serializer.RenderFlat(rec), "~")
		Expect(sections[0]).To(Equal("yagout|M1|ORDER1|10.00|ETH|ETB|SALE|https://x/s|https://x/f|WEB"))
	})
})
