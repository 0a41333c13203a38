// internal/oferta/handler.go
package oferta

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler expõe as rotas do catálogo de ofertas.
type Handler struct {
	Repository Repository
}

// NewHandler cria um novo handler de ofertas.
func NewHandler(repository Repository) *Handler {
	return &Handler{Repository: repository}
}

type criarOfertaRequest struct {
	Titulo    string  `json:"titulo"`
	Descricao string  `json:"descricao"`
	Valor     float64 `json:"valor"`
}

// Criar trata POST /ofertas — só prestadores publicam.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	if ator.Perfil != auth.PerfilPrestador {
		erros.Responder(w, erros.Proibido("apenas prestadores publicam ofertas"))
		return
	}

	var req criarOfertaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Titulo == "" {
		http.Error(w, "O campo 'titulo' é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Valor < 0 {
		erros.Responder(w, erros.ArgumentoInvalido("valor não pode ser negativo"))
		return
	}

	o := Oferta{
		PrestadorID: ator.ID,
		Titulo:      req.Titulo,
		Descricao:   req.Descricao,
		Valor:       req.Valor,
		Ativa:       true,
	}
	if err := h.Repository.Criar(&o); err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(o)
}

// BuscarPorID trata GET /ofertas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	o, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			erros.Responder(w, erros.NaoEncontrado("oferta não encontrada"))
			return
		}
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// Listar trata GET /ofertas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	limite := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limite")); err == nil && v > 0 && v <= 100 {
		limite = v
	}
	deslocamento := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("deslocamento")); err == nil && v >= 0 {
		deslocamento = v
	}

	list, err := h.Repository.ListarAtivas(limite, deslocamento)
	if err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListarPorPrestador trata GET /usuarios/{id}/ofertas
func (h *Handler) ListarPorPrestador(w http.ResponseWriter, r *http.Request) {
	prestadorID, _ := strconv.Atoi(mux.Vars(r)["id"])

	list, err := h.Repository.ListarPorPrestador(uint(prestadorID))
	if err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Desativar trata POST /ofertas/{id}/desativar — dono ou admin.
func (h *Handler) Desativar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	o, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			erros.Responder(w, erros.NaoEncontrado("oferta não encontrada"))
			return
		}
		erros.Responder(w, erros.Interno(err))
		return
	}
	if o.PrestadorID != ator.ID && !ator.Admin() {
		erros.Responder(w, erros.Proibido("apenas o dono ou um admin pode desativar a oferta"))
		return
	}

	o.Ativa = false
	if err := h.Repository.Atualizar(o); err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
