// internal/usuario/handler.go
package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/gorilla/mux"
)

// Handler expõe as rotas de usuários.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo handler de usuários.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type registrarRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
	Senha     string `json:"senha"`
	Perfil    string `json:"perfil"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type atualizarRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
}

// Registrar trata POST /usuarios
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req registrarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Service.Registrar(req.Nome, req.Sobrenome, req.Email, req.Telefone, req.Foto, req.Senha, req.Perfil)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// Login trata POST /login e devolve o JWT
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Service.Autenticar(req.Email, req.Senha)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(u.ID, u.Perfil)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// BuscarPorID trata GET /usuarios/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	u, err := h.Service.Buscar(uint(id))
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Listar trata GET /usuarios (admin)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Service.Listar()
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(usuarios)
}

// Atualizar trata PUT /usuarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req atualizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Service.Atualizar(ator, uint(id), req.Nome, req.Sobrenome, req.Telefone, req.Foto)
	if err != nil {
		erros.Responder(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Remover trata DELETE /usuarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	ator, ok := auth.AtorDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Service.Remover(ator, uint(id)); err != nil {
		erros.Responder(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
