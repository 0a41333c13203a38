package notificacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookEnviaEventoComoJSON(t *testing.T) {
	var recebido Evento
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&recebido); err != nil {
			t.Errorf("decodificar corpo: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NovoWebhook(srv.URL)
	ev := NovoEvento(TipoNegociacaoAberta, map[string]interface{}{"negociacaoId": float64(7)})
	sink.Emitir(context.Background(), ev)

	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if recebido.ID != ev.ID || recebido.Tipo != TipoNegociacaoAberta {
		t.Errorf("evento recebido = %+v", recebido)
	}
	if recebido.Payload["negociacaoId"] != float64(7) {
		t.Errorf("payload = %+v", recebido.Payload)
	}
}

func TestWebhookDestinoForaDoArNaoFalha(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := NovoWebhook(url)
	sink.Emitir(context.Background(), NovoEvento(TipoContratacaoCriada, nil))
}

func TestMultiReplicaParaTodos(t *testing.T) {
	var a, b int
	srvA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { a++ }))
	defer srvA.Close()
	srvB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { b++ }))
	defer srvB.Close()

	m := Multi{NovoWebhook(srvA.URL), nil, NovoWebhook(srvB.URL)}
	m.Emitir(context.Background(), NovoEvento(TipoContratacaoStatus, nil))

	if a != 1 || b != 1 {
		t.Errorf("entregas = (%d, %d), quer (1, 1)", a, b)
	}
}
