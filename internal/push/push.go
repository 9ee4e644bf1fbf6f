package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Sender entrega notificações push para os dispositivos dos moradores.
// As falhas são de melhor esforço: quem chama registra e segue em frente.
type Sender interface {
	Send(ctx context.Context, target, title, body string, data map[string]string) error
}

// WebhookSender repassa a notificação para um gateway HTTP externo
// (o serviço que fala com FCM/APNs fica fora deste processo).
type WebhookSender struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookSender(webhookURL string) *WebhookSender {
	if webhookURL == "" {
		return nil
	}
	return &WebhookSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (w *WebhookSender) Send(ctx context.Context, target, title, body string, data map[string]string) error {
	if w == nil || w.webhookURL == "" {
		return errors.New("push webhook não configurado")
	}

	payload := map[string]any{
		"target": target,
		"title":  title,
		"body":   body,
		"data":   data,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewBuffer(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.New("gateway de push recusou a notificação")
	}
	return nil
}

// NoopSender descarta notificações. Usado quando não há gateway configurado.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, target, title, body string, data map[string]string) error {
	return nil
}
