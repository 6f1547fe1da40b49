package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestCipher_EncryptDecrypt(t *testing.T) {
	cipher, err := NewCipher(testKey())
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "token curto", plaintext: "abc123"},
		{name: "token longo de acesso", plaintext: "EAABsbCS1iHgBAKZCZBvQZBZB8ZD0123456789abcdefghijklmnopqrstuvwxyz"},
		{name: "texto vazio", plaintext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encrypted, err := cipher.Encrypt(tt.plaintext)
			require.NoError(t, err)
			assert.NotEqual(t, tt.plaintext, encrypted)

			decrypted, err := cipher.Decrypt(encrypted)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestCipher_DecryptCorrompido(t *testing.T) {
	cipher, err := NewCipher(testKey())
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("token-valido")
	require.NoError(t, err)

	// Corromper o último byte do texto cifrado
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	corrupted := base64.StdEncoding.EncodeToString(raw)

	_, err = cipher.Decrypt(corrupted)
	assert.Error(t, err)
}

func TestCipher_DecryptComOutraChave(t *testing.T) {
	cipher1, err := NewCipher(testKey())
	require.NoError(t, err)

	otherKey := make([]byte, 32)
	for i := range otherKey {
		otherKey[i] = byte(255 - i)
	}
	cipher2, err := NewCipher(base64.StdEncoding.EncodeToString(otherKey))
	require.NoError(t, err)

	encrypted, err := cipher1.Encrypt("token-valido")
	require.NoError(t, err)

	_, err = cipher2.Decrypt(encrypted)
	assert.Error(t, err)
}

func TestNewCipher_ChaveInvalida(t *testing.T) {
	_, err := NewCipher("nao-e-base64!!!")
	assert.Error(t, err)

	_, err = NewCipher(base64.StdEncoding.EncodeToString([]byte("curta")))
	assert.Error(t, err)
}

func TestParseSignedRequest(t *testing.T) {
	const secret = "app-secret"

	payload := &SignedRequestPayload{
		UserID:    "10203040",
		Algorithm: "HMAC-SHA256",
		IssuedAt:  1700000000,
	}

	signed, err := SignRequest(payload, secret)
	require.NoError(t, err)

	t.Run("assinatura válida retorna o payload", func(t *testing.T) {
		parsed, err := ParseSignedRequest(signed, secret)
		require.NoError(t, err)
		assert.Equal(t, "10203040", parsed.UserID)
		assert.Equal(t, int64(1700000000), parsed.IssuedAt)
	})

	t.Run("assinatura adulterada é rejeitada", func(t *testing.T) {
		tampered := "x" + signed[1:]
		_, err := ParseSignedRequest(tampered, secret)
		assert.Error(t, err)
	})

	t.Run("payload adulterado é rejeitado", func(t *testing.T) {
		otherPayload := &SignedRequestPayload{UserID: "999", Algorithm: "HMAC-SHA256"}
		otherSigned, err := SignRequest(otherPayload, secret)
		require.NoError(t, err)

		// Assinatura de um payload com o corpo de outro
		sigPart := strings.SplitN(signed, ".", 2)[0]
		bodyPart := strings.SplitN(otherSigned, ".", 2)[1]
		_, err = ParseSignedRequest(sigPart+"."+bodyPart, secret)
		assert.Error(t, err)
	})

	t.Run("segredo errado é rejeitado", func(t *testing.T) {
		_, err := ParseSignedRequest(signed, "outro-segredo")
		assert.Error(t, err)
	})

	t.Run("formato sem separador é rejeitado", func(t *testing.T) {
		_, err := ParseSignedRequest("semseparador", secret)
		assert.Error(t, err)
	})
}
