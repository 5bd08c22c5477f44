// Package assembler orchestrates validation, serialization, hashing and
// encryption into the final submittable artifacts. Each call is a pure
// function of the record plus the merchant key; nothing is cached.
package assembler

import (
	"github.com/yagoutpay/gateway/internal/core/common/validation"
	"github.com/yagoutpay/gateway/internal/core/datamodel/transaction"
	"github.com/yagoutpay/gateway/internal/crypto"
	"github.com/yagoutpay/gateway/internal/gateway"
	"github.com/yagoutpay/gateway/internal/serializer"
)

// Config carries the deployment-specific knobs: which environment's
// endpoints to target and whether the direct API body includes a hash.
// Hash inclusion varies across gateway deployments, so it is configuration
// rather than protocol.
type Config struct {
	Environment       gateway.Environment
	IncludeAPIHash    bool
	ActionURLOverride string
}

// AssembleForm validates the record, renders the flat plaintext, encrypts
// it, and packages it with the encrypted digest for the hosted form flow.
func AssembleForm(rec transaction.Record, keyB64 string, cfg Config) (*transaction.BuiltPayload, error) {
	rec = rec.WithDefaults()

	if err := validation.Validate(rec); err != nil {
		return nil, err
	}

	key, err := crypto.ParseKey(keyB64)
	if err != nil {
		return nil, err
	}

	plain := serializer.RenderFlat(rec)
	encrypted, err := crypto.Encrypt([]byte(plain), key)
	if err != nil {
		return nil, err
	}

	hashInput := crypto.DigestInput(rec.MerchantID, rec.OrderNumber, rec.Amount, rec.Country, rec.Currency)
	hashHex := crypto.Digest(rec.MerchantID, rec.OrderNumber, rec.Amount, rec.Country, rec.Currency)
	encryptedHash, err := crypto.Encrypt([]byte(hashHex), key)
	if err != nil {
		return nil, err
	}

	actionURL := cfg.ActionURLOverride
	if actionURL == "" {
		actionURL = gateway.ActionURL(cfg.Environment)
	}

	return &transaction.BuiltPayload{
		MerchantID:      rec.MerchantID,
		MerchantRequest: encrypted,
		Hash:            encryptedHash,
		RequestPlain:    plain,
		HashInput:       hashInput,
		HashHex:         hashHex,
		ActionURL:       actionURL,
	}, nil
}

// AssembleAPI validates the record under the API channel rules, applying
// the documented payment-method selector defaults when absent, then renders
// and encrypts the nested JSON body. The hash fields are populated only
// when the configuration asks for them.
func AssembleAPI(rec transaction.Record, keyB64 string, cfg Config) (*transaction.APIPayload, error) {
	rec = withAPIDefaults(rec.WithDefaults())

	if err := validation.Validate(rec); err != nil {
		return nil, err
	}

	key, err := crypto.ParseKey(keyB64)
	if err != nil {
		return nil, err
	}

	plain, err := serializer.RenderAPI(rec)
	if err != nil {
		return nil, err
	}
	encrypted, err := crypto.Encrypt([]byte(plain), key)
	if err != nil {
		return nil, err
	}

	payload := &transaction.APIPayload{
		MerchantID:      rec.MerchantID,
		MerchantRequest: encrypted,
		RequestPlain:    plain,
	}

	if cfg.IncludeAPIHash {
		payload.HashInput = crypto.DigestInput(rec.MerchantID, rec.OrderNumber, rec.Amount, rec.Country, rec.Currency)
		payload.HashHex = crypto.Digest(rec.MerchantID, rec.OrderNumber, rec.Amount, rec.Country, rec.Currency)
		payload.Hash, err = crypto.Encrypt([]byte(payload.HashHex), key)
		if err != nil {
			return nil, err
		}
	}

	return payload, nil
}

func withAPIDefaults(rec transaction.Record) transaction.Record {
	rec.Channel = transaction.ChannelAPI
	if rec.PgID == "" {
		rec.PgID = gateway.DefaultSelector.PgID
	}
	if rec.Paymode == "" {
		rec.Paymode = gateway.DefaultSelector.Paymode
	}
	if rec.SchemeID == "" {
		rec.SchemeID = gateway.DefaultSelector.SchemeID
	}
	if rec.WalletType == "" {
		rec.WalletType = gateway.DefaultSelector.WalletType
	}
	return rec
}
