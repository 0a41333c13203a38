// internal/notificacao/sink.go
package notificacao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tipos de evento emitidos pelo núcleo.
const (
	TipoContratacaoCriada   = "contratacao-criada"
	TipoContratacaoStatus   = "contratacao-status"
	TipoNegociacaoAberta    = "negociacao-aberta"
	TipoNegociacaoProposta  = "negociacao-proposta"
	TipoNegociacaoResolvida = "negociacao-resolvida"
	TipoAvaliacaoRecebida   = "avaliacao-recebida"
)

// Evento é a notificação fire-and-forget enviada aos interessados.
type Evento struct {
	ID       string                 `json:"id"`
	Tipo     string                 `json:"tipo"`
	Payload  map[string]interface{} `json:"payload"`
	CriadoEm time.Time              `json:"criadoEm"`
}

// NovoEvento monta um Evento com ID e carimbo de criação.
func NovoEvento(tipo string, payload map[string]interface{}) Evento {
	return Evento{
		ID:       uuid.NewString(),
		Tipo:     tipo,
		Payload:  payload,
		CriadoEm: time.Now(),
	}
}

// Sink entrega eventos. A entrega nunca falha o chamador: implementações
// registram o erro em log e seguem em frente.
type Sink interface {
	Emitir(ctx context.Context, ev Evento)
}

// Multi replica cada evento para vários sinks.
type Multi []Sink

func (m Multi) Emitir(ctx context.Context, ev Evento) {
	for _, s := range m {
		if s != nil {
			s.Emitir(ctx, ev)
		}
	}
}
