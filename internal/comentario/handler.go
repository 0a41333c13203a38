// internal/comentario/handler.go
package comentario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/gorilla/mux"
)

// Handler expõe as rotas de comentários.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo handler de comentários.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type criarComentarioRequest struct {
	Conteudo string `json:"conteudo"`
	ParentID *uint  `json:"parentId,omitempty"`
}

type editarComentarioRequest struct {
	Conteudo string `json:"conteudo"`
}

type moderarRequest struct {
	Ocultar bool `json:"ocultar"`
}

// Criar trata POST /publicacoes/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	publicacaoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de publicação inválido", http.StatusBadRequest)
		return
	}

	var req criarComentarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Service.Criar(ator, uint(publicacaoID), req.Conteudo, req.ParentID)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Remover trata DELETE /comentarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	removidos, err := h.Service.Remover(ator, uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"removidos": removidos})
}

// Editar trata PUT /comentarios/{id}
func (h *Handler) Editar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req editarComentarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Service.Editar(ator, uint(id), req.Conteudo)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Moderar trata PATCH /comentarios/{id}/moderacao — admin.
func (h *Handler) Moderar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req moderarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Service.Moderar(ator, uint(id), req.Ocultar)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Curtir trata POST /comentarios/{id}/curtidas
func (h *Handler) Curtir(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Service.Curtir(ator, uint(id)); err != nil {
		erros.Responder(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Descurtir trata DELETE /comentarios/{id}/curtidas
func (h *Handler) Descurtir(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Service.Descurtir(ator, uint(id)); err != nil {
		erros.Responder(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListarPorPublicacao trata GET /publicacoes/{id}/comentarios
func (h *Handler) ListarPorPublicacao(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.AtorDoContexto(r.Context())

	publicacaoID, _ := strconv.Atoi(mux.Vars(r)["id"])
	limite, deslocamento := paginacao(r)

	list, err := h.Service.ListarTopo(ator, uint(publicacaoID), limite, deslocamento)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListarRespostas trata GET /comentarios/{id}/respostas
func (h *Handler) ListarRespostas(w http.ResponseWriter, r *http.Request) {
	ator, _ := auth.AtorDoContexto(r.Context())

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	list, err := h.Service.ListarRespostas(ator, uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
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
