package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	errors "github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/assembler"
	"github.com/yagoutpay/gateway/internal/core/common/redact"
	"github.com/yagoutpay/gateway/internal/core/datamodel/order"
	"github.com/yagoutpay/gateway/internal/core/events"
	"github.com/yagoutpay/gateway/internal/crypto"
	"github.com/yagoutpay/gateway/internal/gateway"
	"github.com/yagoutpay/gateway/internal/response"
)

// Config carries the merchant credentials and deployment knobs the service
// needs to assemble and send payloads.
type Config struct {
	MerchantID     string
	AggregatorID   string
	EncryptionKey  string
	Environment    gateway.Environment
	IncludeAPIHash bool
	CallTimeout    time.Duration

	// Overrides for the fixed per-environment endpoints, used by local
	// gateway simulators.
	APIURLOverride  string
	LinkURLOverride string
}

type Service struct {
	repo     RepositoryAPI
	client   *gateway.Client
	eventBus *events.EventBus
	logger   *slog.Logger
	cfg      Config
}

func NewService(repo RepositoryAPI, client *gateway.Client, eventBus *events.EventBus, logger *slog.Logger, cfg Config) *Service {
	if cfg.AggregatorID == "" {
		cfg.AggregatorID = "yagout"
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	return &Service{
		repo:     repo,
		client:   client,
		eventBus: eventBus,
		logger:   logger,
		cfg:      cfg,
	}
}

func (s *Service) apiURL() string {
	if s.cfg.APIURLOverride != "" {
		return s.cfg.APIURLOverride
	}
	return gateway.APIURL(s.cfg.Environment)
}

func (s *Service) linkURL(static bool) string {
	if s.cfg.LinkURLOverride != "" {
		return s.cfg.LinkURLOverride
	}
	if static {
		return gateway.StaticLinkURL(s.cfg.Environment)
	}
	return gateway.DynamicLinkURL(s.cfg.Environment)
}

func (s *Service) assemblerConfig() assembler.Config {
	return assembler.Config{
		Environment:    s.cfg.Environment,
		IncludeAPIHash: s.cfg.IncludeAPIHash,
	}
}

// BuildHostedForm assembles the hosted-form payload, persists a PENDING
// order, and returns the form fields plus an auto-submit document.
func (s *Service) BuildHostedForm(req CheckoutRequest) (*FormPayload, error) {
	if req.OrderNumber == "" {
		req.OrderNumber = generateOrderNumber()
	}

	rec := req.toRecord(s.cfg.AggregatorID, s.cfg.MerchantID)
	built, err := assembler.AssembleForm(rec, s.cfg.EncryptionKey, s.assemblerConfig())
	if err != nil {
		s.logger.Warn("hosted form assembly failed",
			"order_number", req.OrderNumber,
			"error", err)
		return nil, err
	}

	if err := s.createPendingOrder(req, string(rec.Channel)); err != nil {
		return nil, err
	}

	s.eventBus.Publish(context.Background(),
		events.NewCheckoutStartedEvent(req.OrderNumber, s.cfg.MerchantID, req.Amount, string(rec.Channel)))

	s.logger.Info("hosted form built",
		"order_number", req.OrderNumber,
		"action_url", built.ActionURL,
		"merchant_request", redact.PreviewBase64(built.MerchantRequest))

	return &FormPayload{
		OrderNumber:     req.OrderNumber,
		MeID:            built.MerchantID,
		MerchantRequest: built.MerchantRequest,
		Hash:            built.Hash,
		ActionURL:       built.ActionURL,
		HTML:            renderAutoSubmitForm(built),
	}, nil
}

// SendAPIPayment assembles the direct API payload, posts it to the gateway,
// and records the outcome. The response's encrypted field is decrypted and
// parsed when present.
func (s *Service) SendAPIPayment(ctx context.Context, req CheckoutRequest) (*APIResult, error) {
	if req.OrderNumber == "" {
		req.OrderNumber = generateOrderNumber()
	}
	req.Channel = "API"

	rec := req.toRecord(s.cfg.AggregatorID, s.cfg.MerchantID)
	payload, err := assembler.AssembleAPI(rec, s.cfg.EncryptionKey, s.assemblerConfig())
	if err != nil {
		return nil, err
	}

	if err := s.createPendingOrder(req, string(rec.Channel)); err != nil {
		return nil, err
	}
	s.eventBus.Publish(context.Background(),
		events.NewCheckoutStartedEvent(req.OrderNumber, s.cfg.MerchantID, req.Amount, "API"))

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	resp, err := s.client.SendAPI(callCtx, s.apiURL(), gateway.APIRequestBody{
		MerchantID:      payload.MerchantID,
		MerchantRequest: payload.MerchantRequest,
		Hash:            payload.Hash,
	})
	if err != nil {
		s.markFailed(ctx, req.OrderNumber, err.Error(), nil)
		return nil, err
	}

	result := &APIResult{
		OrderNumber:   req.OrderNumber,
		Status:        resp.Status,
		StatusMessage: resp.StatusMessage,
	}
	if resp.Response != "" {
		if parsed, ok := s.decryptAndParse(resp.Response); ok {
			result.Decrypted = parsed
		}
	}

	s.recordAPIOutcome(ctx, req.OrderNumber, resp)
	return result, nil
}

// HandleCallback decrypts the gateway's form callback, resolves the order's
// final status from the txn_response section, and updates the stored order.
func (s *Service) HandleCallback(ctx context.Context, values url.Values) (*CallbackResult, error) {
	key, err := crypto.ParseKey(s.cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}

	sections := response.DecryptValues(values, key)

	txn := map[string]string{}
	if raw, ok := sections["txn_response"]; ok && raw != response.Undecryptable {
		txn = response.ParseTxnResponse(raw)
	}

	orderNumber := txn["order_no"]
	status := normalizeStatus(txn["status"])
	gatewayTxnID := txn["transaction_id"]

	result := &CallbackResult{
		OrderNumber:          orderNumber,
		Status:               status,
		GatewayTransactionID: gatewayTxnID,
		Sections:             sections,
	}

	s.logger.Info("gateway callback received",
		"order_number", orderNumber,
		"status", status,
		"sections", len(sections))

	if orderNumber == "" {
		// Nothing to correlate against; the decrypted sections still go back
		// to the caller.
		return result, nil
	}

	payload, _ := json.Marshal(redact.Map(sections))
	var txnIDPtr *string
	if gatewayTxnID != "" {
		txnIDPtr = &gatewayTxnID
	}
	var msgPtr *string
	if m := txn["status"]; m != "" {
		msgPtr = &m
	}

	if err := s.repo.UpdateStatus(orderNumber, status, txnIDPtr, msgPtr, payload); err != nil {
		s.logger.Error("callback order update failed",
			"order_number", orderNumber,
			"error", err)
		return nil, err
	}

	switch status {
	case order.StatusSuccess:
		s.eventBus.Publish(ctx, events.NewPaymentCompletedEvent(orderNumber, gatewayTxnID, txn["amount"], status))
	case order.StatusFailed:
		s.eventBus.Publish(ctx, events.NewPaymentFailedEvent(orderNumber, txn["status"]))
	}

	return result, nil
}

// CreatePaymentLink encrypts the link request as a whole and posts it to the
// payment-by-link endpoint, decrypting any nested encrypted field in the
// reply.
func (s *Service) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLinkResult, error) {
	if req.Amount == "" {
		return nil, errors.NewValidationFieldError("amount", "amount is required", errors.ErrCodeMissingField)
	}
	if req.OrderID == "" {
		return nil, errors.NewValidationFieldError("order_id", "order_id is required", errors.ErrCodeMissingField)
	}
	if req.ReqUserID == "" {
		req.ReqUserID = "yagou381"
	}
	req.MeID = s.cfg.MerchantID

	key, err := crypto.ParseKey(s.cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}

	plain, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewInternalError("marshal payment link request", err)
	}
	encrypted, err := crypto.Encrypt(plain, key)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	resp, err := s.client.SendLink(callCtx, s.linkURL(req.Static), s.cfg.MerchantID, encrypted)
	if err != nil {
		return nil, err
	}

	result := &PaymentLinkResult{Raw: resp.Raw}
	if enc, ok := resp.EncryptedField(); ok {
		if parsed, ok := s.decryptAndParse(enc); ok {
			result.Decrypted = parsed
		}
	}
	return result, nil
}

func (s *Service) GetOrder(orderNumber string) (*order.PaymentOrder, error) {
	return s.repo.GetByOrderNumber(orderNumber)
}

func (s *Service) createPendingOrder(req CheckoutRequest, channel string) error {
	o := &order.PaymentOrder{
		OrderNumber: req.OrderNumber,
		MerchantID:  s.cfg.MerchantID,
		Amount:      req.Amount,
		Country:     req.Country,
		Currency:    req.Currency,
		Channel:     channel,
		Status:      order.StatusPending,
	}
	if err := s.repo.Create(o); err != nil {
		s.logger.Error("create payment order failed",
			"order_number", req.OrderNumber,
			"error", err)
		return errors.NewInternalError("create payment order", err)
	}
	return nil
}

func (s *Service) recordAPIOutcome(ctx context.Context, orderNumber string, resp *gateway.APIResponse) {
	status := normalizeStatus(resp.Status)
	var msgPtr *string
	if resp.StatusMessage != "" {
		m := resp.StatusMessage
		msgPtr = &m
	}

	payload, _ := json.Marshal(map[string]string{
		"status":         resp.Status,
		"status_message": resp.StatusMessage,
	})

	if err := s.repo.UpdateStatus(orderNumber, status, nil, msgPtr, payload); err != nil {
		s.logger.Error("api outcome update failed",
			"order_number", orderNumber,
			"error", err)
		return
	}

	switch status {
	case order.StatusSuccess:
		s.eventBus.Publish(ctx, events.NewPaymentCompletedEvent(orderNumber, "", "", status))
	case order.StatusFailed:
		s.eventBus.Publish(ctx, events.NewPaymentFailedEvent(orderNumber, resp.StatusMessage))
	}
}

func (s *Service) markFailed(ctx context.Context, orderNumber, reason string, payload json.RawMessage) {
	msg := reason
	if err := s.repo.UpdateStatus(orderNumber, order.StatusFailed, nil, &msg, payload); err != nil {
		s.logger.Error("mark order failed errored",
			"order_number", orderNumber,
			"error", err)
	}
	s.eventBus.Publish(ctx, events.NewPaymentFailedEvent(orderNumber, reason))
}

func (s *Service) decryptAndParse(encrypted string) (*response.Parsed, bool) {
	key, err := crypto.ParseKey(s.cfg.EncryptionKey)
	if err != nil {
		return nil, false
	}
	plain, err := crypto.Decrypt(encrypted, key)
	if err != nil {
		s.logger.Warn("response payload not decryptable",
			"payload", redact.PreviewBase64(encrypted))
		return nil, false
	}
	parsed := response.ParseDecrypted(string(plain))
	return &parsed, true
}

// normalizeStatus folds the gateway's status vocabulary into the stored
// order states.
func normalizeStatus(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS", "SUCCESSFUL", "OK":
		return order.StatusSuccess
	case "FAILED", "FAILURE", "DECLINED", "ERROR":
		return order.StatusFailed
	case "":
		return order.StatusUnknown
	default:
		return order.StatusUnknown
	}
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16])
}
