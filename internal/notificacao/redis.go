package notificacao

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamPadrao = "notificacoes"

// RedisStream publica eventos em um stream Redis via XADD; consumidores
// externos (e-mail, push) drenam o stream no próprio ritmo.
type RedisStream struct {
	cliente *redis.Client
	stream  string
}

// NovoRedisStream cria o sink apontando para addr. stream vazio usa o padrão.
func NovoRedisStream(addr, senha, stream string) *RedisStream {
	if stream == "" {
		stream = streamPadrao
	}
	return &RedisStream{
		cliente: redis.NewClient(&redis.Options{Addr: addr, Password: senha}),
		stream:  stream,
	}
}

func (s *RedisStream) Emitir(ctx context.Context, ev Evento) {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		log.Printf("notificacao: erro ao serializar payload de %s: %v", ev.Tipo, err)
		return
	}
	err = s.cliente.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"id":      ev.ID,
			"tipo":    ev.Tipo,
			"payload": string(payload),
		},
	}).Err()
	if err != nil {
		log.Printf("notificacao: erro ao publicar no stream %s: %v", s.stream, err)
	}
}

// Fechar encerra a conexão com o Redis.
func (s *RedisStream) Fechar() error {
	return s.cliente.Close()
}
