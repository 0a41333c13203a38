// internal/contratacao/handler.go
package contratacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/gorilla/mux"
)

// Handler expõe as rotas de contratações.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo handler de contratações.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type contratarRequest struct {
	OfertaID uint `json:"ofertaId"`
}

type transicaoRequest struct {
	Status string `json:"status"`
}

// Contratar trata POST /contratacoes
func (h *Handler) Contratar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var req contratarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Service.Contratar(r.Context(), ator, req.OfertaID)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Transicionar trata PATCH /contratacoes/{id}/status
func (h *Handler) Transicionar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req transicaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Service.Transicionar(r.Context(), ator, uint(id), req.Status)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// BuscarPorID trata GET /contratacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Service.Buscar(ator, uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// ListarMinhas trata GET /contratacoes — painel do usuário autenticado.
func (h *Handler) ListarMinhas(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	list, err := h.Service.ListarDoUsuario(ator.ID)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(paraResumos(list, ator.ID))
}
