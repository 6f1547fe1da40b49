package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher criptografa e descriptografa tokens OAuth em repouso usando
// XChaCha20-Poly1305. O texto cifrado é armazenado como base64(nonce || selo).
type Cipher struct {
	key []byte
}

// NewCipher cria o cifrador a partir da chave em base64 (32 bytes decodificados)
func NewCipher(secretKeyBase64 string) (*Cipher, error) {
	key, err := base64.StdEncoding.DecodeString(secretKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar a chave de criptografia: %w", err)
	}

	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("chave de criptografia deve ter %d bytes, recebeu %d", chacha20poly1305.KeySize, len(key))
	}

	return &Cipher{key: key}, nil
}

// Encrypt criptografa o texto e retorna base64(nonce || texto cifrado)
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("erro ao inicializar o cifrador: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverte o Encrypt. Um texto corrompido ou cifrado com outra chave
// retorna erro; o chamador decide a transição de status da integração.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("erro ao decodificar token criptografado: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("erro ao inicializar o cifrador: %w", err)
	}

	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("token criptografado menor que o nonce esperado")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("erro ao descriptografar token: %w", err)
	}

	return string(plaintext), nil
}
