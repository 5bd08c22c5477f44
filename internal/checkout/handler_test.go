package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/checkout"
	"github.com/yagoutpay/gateway/internal/core/datamodel/order"
	"github.com/yagoutpay/gateway/internal/transport"
)

// mockCheckoutService lets handler tests script each service call.
type mockCheckoutService struct {
	formPayload  *checkout.FormPayload
	formErr      error
	apiResult    *checkout.APIResult
	apiErr       error
	callbackRes  *checkout.CallbackResult
	callbackErr  error
	linkResult   *checkout.PaymentLinkResult
	linkErr      error
	storedOrder  *order.PaymentOrder
	getOrderErr  error
	lastCallback url.Values
}

func (m *mockCheckoutService) BuildHostedForm(req checkout.CheckoutRequest) (*checkout.FormPayload, error) {
	return m.formPayload, m.formErr
}

func (m *mockCheckoutService) SendAPIPayment(ctx context.Context, req checkout.CheckoutRequest) (*checkout.APIResult, error) {
	return m.apiResult, m.apiErr
}

func (m *mockCheckoutService) HandleCallback(ctx context.Context, values url.Values) (*checkout.CallbackResult, error) {
	m.lastCallback = values
	return m.callbackRes, m.callbackErr
}

func (m *mockCheckoutService) CreatePaymentLink(ctx context.Context, req checkout.PaymentLinkRequest) (*checkout.PaymentLinkResult, error) {
	return m.linkResult, m.linkErr
}

func (m *mockCheckoutService) GetOrder(orderNumber string) (*order.PaymentOrder, error) {
	return m.storedOrder, m.getOrderErr
}

// orderRequest builds a GET request carrying the chi URL parameter the
// handler reads.
func orderRequest(orderNumber string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderNumber, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderNumber", orderNumber)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("CheckoutHandler", func() {
	var (
		mockService *mockCheckoutService
		handler     *checkout.Handler
	)

	BeforeEach(func() {
		mockService = &mockCheckoutService{}
		handler = checkout.NewHandler(transport.NewBaseHandler(quietLogger()), mockService, quietLogger())
	})

	Describe("CreateCheckout", func() {
		It("returns the form payload as JSON", func() {
			mockService.formPayload = &checkout.FormPayload{
				OrderNumber: "ORDER1",
				MeID:        "M1",
				ActionURL:   "https://uat.example/pay",
				HTML:        "<form></form>",
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"amount":"10.00"}`))
			rec := httptest.NewRecorder()
			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			var payload checkout.FormPayload
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.OrderNumber).To(Equal("ORDER1"))
		})

		It("serves the auto-submit document when render=html", func() {
			mockService.formPayload = &checkout.FormPayload{HTML: "<form>auto</form>"}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout?render=html", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/html"))
			Expect(rec.Body.String()).To(Equal("<form>auto</form>"))
		})

		It("rejects a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader("{not json"))
			rec := httptest.NewRecorder()
			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps validation failures to 400 with the structured error", func() {
			mockService.formErr = apperrors.NewValidationFieldError("successUrl", "successUrl is required", apperrors.ErrCodeMissingField)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("MISSING_FIELD"))
		})
	})

	Describe("APIPayment", func() {
		It("returns the gateway result", func() {
			mockService.apiResult = &checkout.APIResult{
				OrderNumber: "ORDER1",
				Status:      "Success",
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/api", strings.NewReader(`{"amount":"10.00"}`))
			rec := httptest.NewRecorder()
			handler.APIPayment(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"status":"Success"`))
		})

		It("maps gateway rejection to 502", func() {
			mockService.apiErr = apperrors.NewTransportError("gateway returned status 500", 500, "boom")

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/api", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			handler.APIPayment(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("GetOrder", func() {
		It("returns the stored order", func() {
			mockService.storedOrder = &order.PaymentOrder{OrderNumber: "ORDER1", Amount: "10.00"}

			req := orderRequest("ORDER1")
			rec := httptest.NewRecorder()
			handler.GetOrder(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("ORDER1"))
		})

		It("maps the not-found error to 404", func() {
			mockService.getOrderErr = apperrors.ErrOrderNotFound

			req := orderRequest("MISSING")
			rec := httptest.NewRecorder()
			handler.GetOrder(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})

var _ = Describe("CallbackHandler", func() {
	var (
		mockService *mockCheckoutService
		handler     *checkout.CallbackHandler
	)

	BeforeEach(func() {
		mockService = &mockCheckoutService{}
		handler = checkout.NewCallbackHandler(transport.NewBaseHandler(quietLogger()), mockService, quietLogger())
	})

	It("parses the form post and returns the callback result", func() {
		mockService.callbackRes = &checkout.CallbackResult{
			OrderNumber: "ORDER1",
			Status:      order.StatusSuccess,
		}

		form := url.Values{}
		form.Set("txn_response", "ZW5j")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/callback", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.HandlePaymentCallback(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(mockService.lastCallback.Get("txn_response")).To(Equal("ZW5j"))
		Expect(rec.Body.String()).To(ContainSubstring("ORDER1"))
	})

	It("maps processing failures to the error response", func() {
		mockService.callbackErr = apperrors.NewInternalError("update failed", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/callback", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.HandlePaymentCallback(rec, req)

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	})
})
