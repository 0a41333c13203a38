// internal/negociacao/handler.go
package negociacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/gorilla/mux"
)

// Handler expõe as rotas de negociações.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo handler de negociações.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type propostaRequest struct {
	Valor     float64 `json:"valor"`
	Condicoes string  `json:"condicoes"`
}

// Abrir trata POST /contratacoes/{id}/negociacoes
func (h *Handler) Abrir(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	contratacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req propostaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Service.Abrir(r.Context(), ator, uint(contratacaoID), req.Valor, req.Condicoes)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(n)
}

// Propor trata POST /negociacoes/{id}/propostas
func (h *Handler) Propor(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req propostaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Service.Propor(r.Context(), ator, uint(id), req.Valor, req.Condicoes)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

// Aceitar trata POST /negociacoes/{id}/aceite
func (h *Handler) Aceitar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	n, err := h.Service.Aceitar(r.Context(), ator, uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

// Recusar trata POST /negociacoes/{id}/recusa
func (h *Handler) Recusar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	n, err := h.Service.Recusar(r.Context(), ator, uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

// BuscarPorID trata GET /negociacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	n, err := h.Service.Buscar(ator, uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

// ListarPorContratacao trata GET /contratacoes/{id}/negociacoes
func (h *Handler) ListarPorContratacao(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	contratacaoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	list, err := h.Service.ListarPorContratacao(ator, uint(contratacaoID))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
