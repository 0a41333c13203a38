package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Webhook envia cada evento por POST JSON para uma URL configurada.
type Webhook struct {
	URL     string
	Cliente *http.Client
}

// NovoWebhook cria o sink de webhook com timeout curto.
func NovoWebhook(url string) *Webhook {
	return &Webhook{
		URL:     url,
		Cliente: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *Webhook) Emitir(ctx context.Context, ev Evento) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notificacao: erro ao serializar evento %s: %v", ev.Tipo, err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(body))
	if err != nil {
		log.Printf("notificacao: erro ao montar webhook: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Cliente.Do(req)
	if err != nil {
		log.Printf("notificacao: erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("notificacao: webhook respondeu %d para evento %s", resp.StatusCode, ev.Tipo)
	}
}
