package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventosguau/training-club/internal/config"
)

func testSigner() *Signer {
	return NewSigner(config.Redsys{
		SecretKey:   "sq7HjrUOBfKmC576ILgskD5srU870gJ7",
		MerchantURL: "https://club.example.com/api/v1/payment/webhook",
		URLOk:       "https://club.example.com/pago-ok",
		URLKo:       "https://club.example.com/pago-ko",
	})
}

func validRequest() SignRequest {
	return SignRequest{
		Amount:       "2999",
		Order:        "123456789012",
		MerchantCode: "999008881",
		Terminal:     "001",
		Currency:     "978",
	}
}

func TestSign(t *testing.T) {
	signer := testSigner()

	res, err := signer.Sign(validRequest())
	require.NoError(t, err)
	assert.Equal(t, SignatureVersion, res.SignatureVersion)

	// блок параметров — это base64 от JSON с полями DS_MERCHANT_*
	raw, err := base64.StdEncoding.DecodeString(res.MerchantParameters)
	require.NoError(t, err)

	var params map[string]string
	require.NoError(t, json.Unmarshal(raw, &params))
	assert.Equal(t, "2999", params["DS_MERCHANT_AMOUNT"])
	assert.Equal(t, "123456789012", params["DS_MERCHANT_ORDER"])
	assert.Equal(t, "999008881", params["DS_MERCHANT_MERCHANTCODE"])
	assert.Equal(t, "978", params["DS_MERCHANT_CURRENCY"])
	assert.Equal(t, "0", params["DS_MERCHANT_TRANSACTIONTYPE"])
	assert.Equal(t, "001", params["DS_MERCHANT_TERMINAL"])
	assert.Equal(t, "https://club.example.com/pago-ok", params["DS_MERCHANT_URLOK"])

	// подпись — HMAC-SHA256 поверх base64-строки параметров
	mac := hmac.New(sha256.New, []byte("sq7HjrUOBfKmC576ILgskD5srU870gJ7"))
	mac.Write([]byte(res.MerchantParameters))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	assert.Equal(t, expected, res.Signature)
}

func TestSignDeterministic(t *testing.T) {
	signer := testSigner()

	first, err := signer.Sign(validRequest())
	require.NoError(t, err)
	second, err := signer.Sign(validRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Signature, second.Signature)
	assert.Equal(t, first.MerchantParameters, second.MerchantParameters)
}

func TestSignMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignRequest)
	}{
		{name: "нет суммы", mutate: func(r *SignRequest) { r.Amount = "" }},
		{name: "нет номера заказа", mutate: func(r *SignRequest) { r.Order = "" }},
		{name: "нет кода торговца", mutate: func(r *SignRequest) { r.MerchantCode = "" }},
		{name: "нет терминала", mutate: func(r *SignRequest) { r.Terminal = "" }},
		{name: "нет валюты", mutate: func(r *SignRequest) { r.Currency = "" }},
	}

	signer := testSigner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			res, err := signer.Sign(req)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Nil(t, res)
		})
	}
}
