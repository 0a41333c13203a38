// internal/avaliacao/handler.go
package avaliacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/gorilla/mux"
)

// Handler expõe as rotas de avaliações.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo handler de avaliações.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type avaliacaoRequest struct {
	Nota       int    `json:"nota"`
	Comentario string `json:"comentario"`
}

// Enviar trata POST /contratacoes/{id}/avaliacoes
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
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

	var req avaliacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Service.Enviar(r.Context(), ator, uint(contratacaoID), req.Nota, req.Comentario)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// Editar trata PUT /avaliacoes/{id}
func (h *Handler) Editar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req avaliacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Service.Editar(ator, uint(id), req.Nota, req.Comentario)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// ListarPorReceptor trata GET /usuarios/{id}/avaliacoes
func (h *Handler) ListarPorReceptor(w http.ResponseWriter, r *http.Request) {
	receptorID, _ := strconv.Atoi(mux.Vars(r)["id"])

	list, err := h.Service.ListarPorReceptor(uint(receptorID))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	media, total, err := h.Service.ResumoReceptor(uint(receptorID))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"media":      media,
		"total":      total,
		"avaliacoes": list,
	})
}
