package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/gateway"
)

func TestGateway(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gateway Suite")
}

var _ = Describe("Endpoints", func() {
	It("targets UAT hosts by default and production when asked", func() {
		Expect(gateway.ActionURL(gateway.EnvUAT)).To(ContainSubstring("uatcheckout.yagoutpay.com"))
		Expect(gateway.ActionURL(gateway.EnvProd)).To(ContainSubstring("https://checkout.yagoutpay.com"))
		Expect(gateway.APIURL(gateway.EnvUAT)).To(ContainSubstring("apiRedirection/apiIntegration"))
		Expect(gateway.DynamicLinkURL(gateway.EnvProd)).To(ContainSubstring("sdk/paymentByLinkResponse"))
	})

	It("falls back to UAT for unknown environments", func() {
		Expect(gateway.ActionURL("staging")).To(Equal(gateway.ActionURL(gateway.EnvUAT)))
	})
})

var _ = Describe("Client", func() {
	var (
		client *gateway.Client
		server *httptest.Server
	)

	newLogger := func() *slog.Logger {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	Describe("SendAPI", func() {
		It("posts the request body and decodes the response envelope", func() {
			var received gateway.APIRequestBody
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
				body, _ := io.ReadAll(r.Body)
				Expect(json.Unmarshal(body, &received)).To(Succeed())

				json.NewEncoder(w).Encode(gateway.APIResponse{
					MerchantID:    received.MerchantID,
					Status:        "Success",
					StatusMessage: "No Error",
					Response:      "ZW5jcnlwdGVk",
				})
			}))

			client = gateway.NewClient(gateway.Config{Timeout: 5 * time.Second}, newLogger())

			resp, err := client.SendAPI(context.Background(), server.URL, gateway.APIRequestBody{
				MerchantID:      "M1",
				MerchantRequest: "payload",
				Hash:            "hash",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(received.MerchantID).To(Equal("M1"))
			Expect(resp.Status).To(Equal("Success"))
			Expect(resp.Response).To(Equal("ZW5jcnlwdGVk"))
		})

		It("omits the hash key when the hash is empty", func() {
			var raw map[string]interface{}
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				Expect(json.Unmarshal(body, &raw)).To(Succeed())
				json.NewEncoder(w).Encode(gateway.APIResponse{Status: "Success"})
			}))

			client = gateway.NewClient(gateway.Config{}, newLogger())
			_, err := client.SendAPI(context.Background(), server.URL, gateway.APIRequestBody{
				MerchantID:      "M1",
				MerchantRequest: "payload",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).NotTo(HaveKey("hash"))
		})

		It("returns a transport error with the raw body on non-2xx", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream broken"))
			}))

			client = gateway.NewClient(gateway.Config{}, newLogger())
			_, err := client.SendAPI(context.Background(), server.URL, gateway.APIRequestBody{})
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeExternal))
			Expect(appErr.Details).To(HaveKeyWithValue("gateway_body", "upstream broken"))
		})

		It("fails when the body is not the expected envelope", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("plain text, not json"))
			}))

			client = gateway.NewClient(gateway.Config{}, newLogger())
			_, err := client.SendAPI(context.Background(), server.URL, gateway.APIRequestBody{})
			Expect(err).To(HaveOccurred())
		})

		It("honors context cancellation", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))

			client = gateway.NewClient(gateway.Config{}, newLogger())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			_, err := client.SendAPI(ctx, server.URL, gateway.APIRequestBody{})
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeExternal))
		})
	})

	Describe("SendLink", func() {
		It("sends the merchant id as a header and wraps the encrypted body", func() {
			var gotHeader string
			var raw map[string]string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("me_id")
				body, _ := io.ReadAll(r.Body)
				Expect(json.Unmarshal(body, &raw)).To(Succeed())
				json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			}))

			client = gateway.NewClient(gateway.Config{}, newLogger())
			resp, err := client.SendLink(context.Background(), server.URL, "M1", "ZW5j")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotHeader).To(Equal("M1"))
			Expect(raw).To(HaveKeyWithValue("request", "ZW5j"))
			Expect(resp.Fields).To(HaveKeyWithValue("status", "ok"))
		})

		It("keeps a non-JSON body as raw text", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("created"))
			}))

			client = gateway.NewClient(gateway.Config{}, newLogger())
			resp, err := client.SendLink(context.Background(), server.URL, "M1", "ZW5j")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Raw).To(Equal("created"))
			Expect(resp.Fields).To(BeNil())
		})

		It("surfaces the nested encrypted field under any known key", func() {
			for _, key := range []string{"response", "data", "payload", "responseData"} {
				resp := &gateway.LinkResponse{Fields: map[string]interface{}{key: "ZW5j"}}
				value, ok := resp.EncryptedField()
				Expect(ok).To(BeTrue(), "key %s", key)
				Expect(value).To(Equal("ZW5j"))
			}
		})

		It("reports no encrypted field for other shapes", func() {
			resp := &gateway.LinkResponse{Fields: map[string]interface{}{"response": 42}}
			_, ok := resp.EncryptedField()
			Expect(ok).To(BeFalse())

			resp = &gateway.LinkResponse{}
			_, ok = resp.EncryptedField()
			Expect(ok).To(BeFalse())
		})
	})
})
