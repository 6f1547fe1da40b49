package integrator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	maxAttempts    = 3
	initialBackoff = 1 * time.Second

	// DefaultHTTPTimeout limita cada chamada individual às APIs dos canais
	DefaultHTTPTimeout = 30 * time.Second
)

// APIError é a resposta não-2xx de uma API de canal, com o corpo preservado
// para a classificação de erros de autenticação
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API do canal retornou status %d: %s", e.StatusCode, e.Body)
}

// Transient indica se vale repetir a chamada: rate limit ou falha do servidor
func (e *APIError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// BuildRequestFunc monta a requisição a cada tentativa. Recriar a requisição é
// necessário porque o corpo de uma http.Request não pode ser reenviado.
type BuildRequestFunc func(ctx context.Context) (*http.Request, error)

// DoRequest executa a requisição com retry e backoff exponencial em erros
// transientes (429/5xx e falhas de rede). Respostas 4xx não transientes são
// devolvidas imediatamente como *APIError para classificação pelo chamador.
func DoRequest(ctx context.Context, client *http.Client, build BuildRequestFunc) ([]byte, error) {
	var lastErr error

	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			logrus.WithFields(logrus.Fields{
				"attempt": attempt,
				"backoff": backoff.String(),
			}).Warn("Repetindo chamada à API do canal após erro transiente")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("erro ao montar requisição: %w", err)
		}

		body, err := doOnce(client, req)
		if err == nil {
			return body, nil
		}

		lastErr = err

		if apiErr, ok := err.(*APIError); ok && !apiErr.Transient() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("chamada à API do canal esgotou as tentativas: %w", lastErr)
}

func doOnce(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de rede na chamada à API do canal: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da API do canal: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
