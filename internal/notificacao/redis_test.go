package notificacao

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisStreamPublicaEvento(t *testing.T) {
	mr := miniredis.RunT(t)
	sink := NovoRedisStream(mr.Addr(), "", "eventos-teste")
	defer sink.Fechar()

	ctx := context.Background()
	ev := NovoEvento(TipoContratacaoCriada, map[string]interface{}{"contratacaoId": 1})
	sink.Emitir(ctx, ev)

	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cli.Close()

	msgs, err := cli.XRange(ctx, "eventos-teste", "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("mensagens no stream = %d, quer 1", len(msgs))
	}
	if msgs[0].Values["tipo"] != TipoContratacaoCriada {
		t.Errorf("tipo = %v", msgs[0].Values["tipo"])
	}
	if msgs[0].Values["id"] != ev.ID {
		t.Errorf("id = %v, quer %s", msgs[0].Values["id"], ev.ID)
	}
}

func TestRedisStreamUsaStreamPadrao(t *testing.T) {
	mr := miniredis.RunT(t)
	sink := NovoRedisStream(mr.Addr(), "", "")
	defer sink.Fechar()

	ctx := context.Background()
	sink.Emitir(ctx, NovoEvento(TipoAvaliacaoRecebida, map[string]interface{}{"nota": 5}))

	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cli.Close()

	n, err := cli.XLen(ctx, "notificacoes").Result()
	if err != nil {
		t.Fatalf("XLen: %v", err)
	}
	if n != 1 {
		t.Errorf("stream padrão tem %d mensagens, quer 1", n)
	}
}

func TestRedisStreamIndisponivelNaoFalha(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	sink := NovoRedisStream(addr, "", "")
	defer sink.Fechar()

	// a entrega é fire-and-forget: erro vai para o log, não para o chamador
	sink.Emitir(context.Background(), NovoEvento(TipoContratacaoStatus, nil))
}
