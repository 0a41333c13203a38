// internal/publicacao/handler.go
package publicacao

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

// Handler expõe as rotas de publicações.
type Handler struct {
	Repository Repository
}

// NewHandler cria um novo handler de publicações.
func NewHandler(repository Repository) *Handler {
	return &Handler{Repository: repository}
}

type criarPublicacaoRequest struct {
	Titulo   string `json:"titulo"`
	Conteudo string `json:"conteudo"`
}

// Criar trata POST /publicacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var req criarPublicacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Titulo == "" {
		http.Error(w, "O campo 'titulo' é obrigatório", http.StatusBadRequest)
		return
	}

	p := Publicacao{
		AutorID:  ator.ID,
		Titulo:   req.Titulo,
		Conteudo: req.Conteudo,
		Status:   StatusAtiva,
	}
	if err := h.Repository.Criar(&p); err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// BuscarPorID trata GET /publicacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			erros.Responder(w, erros.NaoEncontrado("publicação não encontrada"))
			return
		}
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Listar trata GET /publicacoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	limite, deslocamento := paginacao(r)
	list, err := h.Repository.Listar(limite, deslocamento)
	if err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Arquivar trata POST /publicacoes/{id}/arquivar — autor ou admin.
func (h *Handler) Arquivar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			erros.Responder(w, erros.NaoEncontrado("publicação não encontrada"))
			return
		}
		erros.Responder(w, erros.Interno(err))
		return
	}
	if p.AutorID != ator.ID && !ator.Admin() {
		erros.Responder(w, erros.Proibido("apenas o autor ou um admin pode arquivar"))
		return
	}

	if err := h.Repository.AtualizarStatus(p.ID, StatusArquivada); err != nil {
		erros.Responder(w, erros.Interno(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func paginacao(r *http.Request) (limite, deslocamento int) {
	limite = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limite")); err == nil && v > 0 && v <= 100 {
		limite = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("deslocamento")); err == nil && v >= 0 {
		deslocamento = v
	}
	return limite, deslocamento
}
