package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSignature indica um signed request malformado ou com assinatura
// que não confere; os handlers respondem 400 quando o encontram
var ErrInvalidSignature = errors.New("assinatura do signed request inválida")

// SignedRequestPayload é o corpo de um webhook de desautorização assinado
// enviado pelo canal (formato "assinatura.payload" em base64url)
type SignedRequestPayload struct {
	UserID    string `json:"user_id"`
	Algorithm string `json:"algorithm"`
	IssuedAt  int64  `json:"issued_at"`
}

// ParseSignedRequest valida a assinatura HMAC-SHA256 de um signed request e
// retorna o payload decodificado. Assinatura inválida é rejeição dura: nenhum
// payload é retornado e nenhum estado deve ser alterado pelo chamador.
func ParseSignedRequest(signedRequest, appSecret string) (*SignedRequestPayload, error) {
	parts := strings.SplitN(signedRequest, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: esperado formato assinatura.payload", ErrInvalidSignature)
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao decodificar assinatura", ErrInvalidSignature)
	}

	payloadRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao decodificar payload", ErrInvalidSignature)
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(parts[1]))
	expected := mac.Sum(nil)

	if !hmac.Equal(signature, expected) {
		return nil, fmt.Errorf("%w: HMAC não confere", ErrInvalidSignature)
	}

	payload := &SignedRequestPayload{}
	if err := json.Unmarshal(payloadRaw, payload); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON do payload: %w", err)
	}

	if payload.Algorithm != "" && !strings.EqualFold(payload.Algorithm, "HMAC-SHA256") {
		return nil, fmt.Errorf("algoritmo de assinatura não suportado: %s", payload.Algorithm)
	}

	return payload, nil
}

// SignRequest monta um signed request válido; usado nos testes e em
// ferramentas locais de simulação de webhook
func SignRequest(payload *SignedRequestPayload, appSecret string) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(raw)

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(encodedPayload))
	signature := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return signature + "." + encodedPayload, nil
}
