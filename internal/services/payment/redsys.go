// Package payment реализует подпись платежных запросов для перенаправления
// браузера на платежную страницу Redsys.
//
// Операция чистая и одношаговая: по сумме и идентификаторам торговца
// формируется base64-блок параметров и подпись HMAC-SHA256 поверх него.
// Секретный ключ хранится только на сервере; наружу уходит лишь
// закодированный блок и подпись.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eventosguau/training-club/internal/config"
)

// SignatureVersion тег версии подписи, ожидаемый платежным шлюзом.
const SignatureVersion = "HMAC_SHA256_V1"

// ErrMissingField возвращается, если в запросе подписи отсутствует
// обязательное поле.
var ErrMissingField = errors.New("missing required field")

// SignRequest параметры платежа. Сумма — целое в минорных единицах валюты.
type SignRequest struct {
	Amount       string `json:"amount" validate:"required,numeric"`
	Order        string `json:"order" validate:"required"`
	MerchantCode string `json:"merchantCode" validate:"required"`
	Terminal     string `json:"terminal" validate:"required"`
	Currency     string `json:"currency" validate:"required,numeric"`
}

// SignResult подписанный результат: параметры и подпись в base64 плюс
// версия подписи. Только эти значения пересекают границу браузера.
type SignResult struct {
	MerchantParameters string `json:"Ds_MerchantParameters"`
	Signature          string `json:"Ds_Signature"`
	SignatureVersion   string `json:"Ds_SignatureVersion"`
}

// Signer подписывает платежные запросы серверным секретом.
type Signer struct {
	cfg config.Redsys
}

// NewSigner создает новый Signer с параметрами торговца.
func NewSigner(cfg config.Redsys) *Signer {
	return &Signer{cfg: cfg}
}

// Sign проверяет наличие всех полей и возвращает подписанный блок параметров.
func (s *Signer) Sign(req SignRequest) (*SignResult, error) {
	const op = "payment.Sign"
	for name, v := range map[string]string{
		"amount":       req.Amount,
		"order":        req.Order,
		"merchantCode": req.MerchantCode,
		"terminal":     req.Terminal,
		"currency":     req.Currency,
	} {
		if v == "" {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrMissingField, name)
		}
	}

	merchantParameters := map[string]string{
		"DS_MERCHANT_AMOUNT":          req.Amount,
		"DS_MERCHANT_ORDER":           req.Order,
		"DS_MERCHANT_MERCHANTCODE":    req.MerchantCode,
		"DS_MERCHANT_CURRENCY":        req.Currency,
		"DS_MERCHANT_TRANSACTIONTYPE": "0", // покупка
		"DS_MERCHANT_TERMINAL":        req.Terminal,
		"DS_MERCHANT_MERCHANTURL":     s.cfg.MerchantURL,
		"DS_MERCHANT_URLOK":           s.cfg.URLOk,
		"DS_MERCHANT_URLKO":           s.cfg.URLKo,
	}

	paramsJSON, err := json.Marshal(merchantParameters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	paramsBase64 := base64.StdEncoding.EncodeToString(paramsJSON)

	mac := hmac.New(sha256.New, []byte(s.cfg.SecretKey))
	mac.Write([]byte(paramsBase64))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return &SignResult{
		MerchantParameters: paramsBase64,
		Signature:          signature,
		SignatureVersion:   SignatureVersion,
	}, nil
}
