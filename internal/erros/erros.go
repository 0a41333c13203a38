// internal/erros/erros.go
package erros

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Tipo classifica os erros de negócio retornados pelos serviços.
type Tipo string

const (
	TipoNaoEncontrado       Tipo = "NAO_ENCONTRADO"
	TipoProibido            Tipo = "PROIBIDO"
	TipoEstadoInvalido      Tipo = "ESTADO_INVALIDO"
	TipoTransicaoInvalida   Tipo = "TRANSICAO_INVALIDA"
	TipoArgumentoInvalido   Tipo = "ARGUMENTO_INVALIDO"
	TipoConflito            Tipo = "CONFLITO"
	TipoNaoESuaVez          Tipo = "NAO_E_SUA_VEZ"
	TipoEstadoDesatualizado Tipo = "ESTADO_DESATUALIZADO"
	TipoInterno             Tipo = "ERRO_INTERNO"
)

// Erro é o erro tipado que os serviços devolvem aos handlers.
// Causa carrega o erro de origem (ex.: falha do banco) sem expô-lo ao cliente.
type Erro struct {
	Tipo     Tipo
	Mensagem string
	Causa    error
}

func (e *Erro) Error() string {
	if e.Causa != nil {
		return fmt.Sprintf("%s: %s: %v", e.Tipo, e.Mensagem, e.Causa)
	}
	return fmt.Sprintf("%s: %s", e.Tipo, e.Mensagem)
}

func (e *Erro) Unwrap() error { return e.Causa }

func NaoEncontrado(mensagem string) error {
	return &Erro{Tipo: TipoNaoEncontrado, Mensagem: mensagem}
}

func Proibido(mensagem string) error {
	return &Erro{Tipo: TipoProibido, Mensagem: mensagem}
}

func EstadoInvalido(mensagem string) error {
	return &Erro{Tipo: TipoEstadoInvalido, Mensagem: mensagem}
}

// TransicaoInvalida nomeia o status atual e o pedido, como o cliente precisa ver.
func TransicaoInvalida(de, para string) error {
	return &Erro{
		Tipo:     TipoTransicaoInvalida,
		Mensagem: fmt.Sprintf("transição de %q para %q não é permitida", de, para),
	}
}

func ArgumentoInvalido(mensagem string) error {
	return &Erro{Tipo: TipoArgumentoInvalido, Mensagem: mensagem}
}

func Conflito(mensagem string) error {
	return &Erro{Tipo: TipoConflito, Mensagem: mensagem}
}

func NaoESuaVez(mensagem string) error {
	return &Erro{Tipo: TipoNaoESuaVez, Mensagem: mensagem}
}

// EstadoDesatualizado sinaliza derrota na escrita condicional; o chamador
// deve recarregar a entidade e repetir a operação.
func EstadoDesatualizado(mensagem string) error {
	return &Erro{Tipo: TipoEstadoDesatualizado, Mensagem: mensagem}
}

func Interno(causa error) error {
	return &Erro{Tipo: TipoInterno, Mensagem: "erro interno", Causa: causa}
}

// TipoDe extrai o Tipo de um erro qualquer; erros não tipados contam como internos.
func TipoDe(err error) Tipo {
	var e *Erro
	if errors.As(err, &e) {
		return e.Tipo
	}
	return TipoInterno
}

// ETipo informa se err é um *Erro do tipo dado.
func ETipo(err error, t Tipo) bool {
	var e *Erro
	return errors.As(err, &e) && e.Tipo == t
}

// StatusHTTP mapeia cada tipo para o status usado na borda HTTP.
func StatusHTTP(err error) int {
	switch TipoDe(err) {
	case TipoNaoEncontrado:
		return http.StatusNotFound
	case TipoProibido:
		return http.StatusForbidden
	case TipoArgumentoInvalido:
		return http.StatusBadRequest
	case TipoEstadoInvalido, TipoTransicaoInvalida:
		return http.StatusUnprocessableEntity
	case TipoConflito, TipoNaoESuaVez:
		return http.StatusConflict
	case TipoEstadoDesatualizado:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

type respostaErro struct {
	Codigo   Tipo   `json:"codigo"`
	Mensagem string `json:"mensagem"`
}

// Responder escreve o erro no formato JSON padrão da API.
func Responder(w http.ResponseWriter, err error) {
	var e *Erro
	if !errors.As(err, &e) {
		e = &Erro{Tipo: TipoInterno, Mensagem: "erro interno", Causa: err}
	}
	msg := e.Mensagem
	if e.Tipo == TipoInterno {
		// nunca vaza o erro de armazenamento para o cliente
		msg = "erro interno"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusHTTP(e))
	_ = json.NewEncoder(w).Encode(respostaErro{Codigo: e.Tipo, Mensagem: msg})
}
