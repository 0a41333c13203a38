package erros

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusHTTP(t *testing.T) {
	casos := []struct {
		err  error
		quer int
	}{
		{NaoEncontrado("x"), http.StatusNotFound},
		{Proibido("x"), http.StatusForbidden},
		{ArgumentoInvalido("x"), http.StatusBadRequest},
		{EstadoInvalido("x"), http.StatusUnprocessableEntity},
		{TransicaoInvalida("pendente", "concluida"), http.StatusUnprocessableEntity},
		{Conflito("x"), http.StatusConflict},
		{NaoESuaVez("x"), http.StatusConflict},
		{EstadoDesatualizado("x"), http.StatusPreconditionFailed},
		{Interno(errors.New("falha no banco")), http.StatusInternalServerError},
		{errors.New("erro cru"), http.StatusInternalServerError},
	}
	for _, c := range casos {
		if got := StatusHTTP(c.err); got != c.quer {
			t.Errorf("StatusHTTP(%v) = %d, quer %d", c.err, got, c.quer)
		}
	}
}

func TestETipoAtravessaEmbrulhos(t *testing.T) {
	base := Conflito("já existe")
	embrulhado := fmt.Errorf("ao salvar: %w", base)

	if !ETipo(embrulhado, TipoConflito) {
		t.Error("ETipo não atravessou o embrulho")
	}
	if ETipo(embrulhado, TipoNaoEncontrado) {
		t.Error("ETipo casou com tipo errado")
	}
	if TipoDe(errors.New("cru")) != TipoInterno {
		t.Error("erro não tipado deve contar como interno")
	}
}

func TestResponderNaoVazaCausaInterna(t *testing.T) {
	rec := httptest.NewRecorder()
	Responder(rec, Interno(errors.New("pq: connection refused")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var corpo struct {
		Codigo   string `json:"codigo"`
		Mensagem string `json:"mensagem"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &corpo); err != nil {
		t.Fatalf("corpo inválido: %v", err)
	}
	if corpo.Mensagem != "erro interno" {
		t.Errorf("mensagem = %q vaza detalhe interno", corpo.Mensagem)
	}
	if corpo.Codigo != string(TipoInterno) {
		t.Errorf("codigo = %q", corpo.Codigo)
	}
}

func TestResponderErroDeNegocio(t *testing.T) {
	rec := httptest.NewRecorder()
	Responder(rec, NaoESuaVez("aguarde a resposta do outro participante"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, quer 409", rec.Code)
	}
	var corpo struct {
		Codigo   string `json:"codigo"`
		Mensagem string `json:"mensagem"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &corpo); err != nil {
		t.Fatalf("corpo inválido: %v", err)
	}
	if corpo.Codigo != string(TipoNaoESuaVez) || corpo.Mensagem == "" {
		t.Errorf("corpo = %+v", corpo)
	}
}
