package redact_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yagoutpay/gateway/internal/core/common/redact"
)

func TestRedact(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Redact Suite")
}

var _ = Describe("MaskTail", func() {
	It("keeps only the requested tail visible", func() {
		Expect(redact.MaskTail("4111111111111111", 4)).To(Equal("************1111"))
	})

	It("returns short values unchanged", func() {
		Expect(redact.MaskTail("123", 4)).To(Equal("123"))
	})
})

var _ = Describe("Map", func() {
	It("masks known sensitive keys and passes others through", func() {
		out := redact.Map(map[string]string{
			"cardNumber": "4111111111111111",
			"order_no":   "ORDER1",
		})
		Expect(out["cardNumber"]).To(Equal("************1111"))
		Expect(out["order_no"]).To(Equal("ORDER1"))
	})
})

var _ = Describe("PreviewBase64", func() {
	It("shortens long values keeping both ends", func() {
		long := "AAAABBBBCCCCDDDDEEEEFFFF"
		preview := redact.PreviewBase64(long)
		Expect(preview).To(HavePrefix("AAAABBBB"))
		Expect(preview).To(HaveSuffix("EEEEFFFF"))
		Expect(preview).To(ContainSubstring("..."))
	})

	It("returns short values unchanged", func() {
		Expect(redact.PreviewBase64("short")).To(Equal("short"))
	})
})
