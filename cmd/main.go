package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/avaliacao"
	"github.com/ConectaServicos/api-marketplace/internal/comentario"
	"github.com/ConectaServicos/api-marketplace/internal/contratacao"
	"github.com/ConectaServicos/api-marketplace/internal/middleware/ratelimit"
	"github.com/ConectaServicos/api-marketplace/internal/negociacao"
	"github.com/ConectaServicos/api-marketplace/internal/notificacao"
	"github.com/ConectaServicos/api-marketplace/internal/oferta"
	"github.com/ConectaServicos/api-marketplace/internal/publicacao"
	"github.com/ConectaServicos/api-marketplace/internal/usuario"
	"github.com/ConectaServicos/api-marketplace/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	database, err := db.Conectar()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&oferta.Oferta{},
		&contratacao.Contratacao{},
		&negociacao.Negociacao{},
		&avaliacao.Avaliacao{},
		&publicacao.Publicacao{},
		&comentario.Comentario{},
		&comentario.Curtida{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Repositórios
	usuarioRepo := usuario.NewRepository(database)
	ofertaRepo := oferta.NewRepository(database)
	contratacaoRepo := contratacao.NewRepository(database)
	negociacaoRepo := negociacao.NewRepository(database)
	avaliacaoRepo := avaliacao.NewRepository(database)
	publicacaoRepo := publicacao.NewRepository(database)
	comentarioRepo := comentario.NewRepository(database)

	// Sink de notificações: webhook e/ou stream Redis, conforme configuração
	var sinks notificacao.Multi
	if url := os.Getenv("WEBHOOK_NOTIFICACAO_URL"); url != "" {
		sinks = append(sinks, notificacao.NovoWebhook(url))
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		sinks = append(sinks, notificacao.NovoRedisStream(addr, os.Getenv("REDIS_PASSWORD"), os.Getenv("REDIS_STREAM")))
	}

	// Serviços
	usuarioService := usuario.NewService(usuarioRepo, contratacaoRepo)
	contratacaoService := contratacao.NewService(contratacaoRepo, oferta.NovoCatalogo(ofertaRepo), sinks)
	negociacaoService := negociacao.NewService(negociacaoRepo, contratacaoRepo, sinks)
	avaliacaoService := avaliacao.NewService(avaliacaoRepo, contratacaoRepo, sinks, prazoEdicaoAvaliacao())
	comentarioService := comentario.NewService(comentarioRepo, publicacaoRepo)

	// Handlers
	usuarioHandler := usuario.NewHandler(usuarioService)
	ofertaHandler := oferta.NewHandler(ofertaRepo)
	contratacaoHandler := contratacao.NewHandler(contratacaoService)
	negociacaoHandler := negociacao.NewHandler(negociacaoService)
	avaliacaoHandler := avaliacao.NewHandler(avaliacaoService)
	publicacaoHandler := publicacao.NewHandler(publicacaoRepo)
	comentarioHandler := comentario.NewHandler(comentarioService)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/usuarios", usuarioHandler.Registrar).Methods("POST")
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/ofertas", ofertaHandler.Listar).Methods("GET")
	r.HandleFunc("/ofertas/{id}", ofertaHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/publicacoes", publicacaoHandler.Listar).Methods("GET")
	r.HandleFunc("/publicacoes/{id}", publicacaoHandler.BuscarPorID).Methods("GET")
	r.HandleFunc("/publicacoes/{id}/comentarios", comentarioHandler.ListarPorPublicacao).Methods("GET")
	r.HandleFunc("/comentarios/{id}/respostas", comentarioHandler.ListarRespostas).Methods("GET")
	r.HandleFunc("/usuarios/{id}/avaliacoes", avaliacaoHandler.ListarPorReceptor).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Usuários
	api.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Listar))).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Remover).Methods("DELETE")
	api.HandleFunc("/usuarios/{id}/ofertas", ofertaHandler.ListarPorPrestador).Methods("GET")

	// Ofertas
	api.HandleFunc("/ofertas", ofertaHandler.Criar).Methods("POST")
	api.HandleFunc("/ofertas/{id}/desativar", ofertaHandler.Desativar).Methods("POST")

	// Contratações
	api.HandleFunc("/contratacoes", contratacaoHandler.Contratar).Methods("POST")
	api.HandleFunc("/contratacoes", contratacaoHandler.ListarMinhas).Methods("GET")
	api.HandleFunc("/contratacoes/{id}", contratacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contratacoes/{id}/status", contratacaoHandler.Transicionar).Methods("PATCH")

	// Negociações
	api.HandleFunc("/contratacoes/{id}/negociacoes", negociacaoHandler.Abrir).Methods("POST")
	api.HandleFunc("/contratacoes/{id}/negociacoes", negociacaoHandler.ListarPorContratacao).Methods("GET")
	api.HandleFunc("/negociacoes/{id}", negociacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/negociacoes/{id}/propostas", negociacaoHandler.Propor).Methods("POST")
	api.HandleFunc("/negociacoes/{id}/aceite", negociacaoHandler.Aceitar).Methods("POST")
	api.HandleFunc("/negociacoes/{id}/recusa", negociacaoHandler.Recusar).Methods("POST")

	// Avaliações
	api.HandleFunc("/contratacoes/{id}/avaliacoes", avaliacaoHandler.Enviar).Methods("POST")
	api.HandleFunc("/avaliacoes/{id}", avaliacaoHandler.Editar).Methods("PUT")

	// Publicações e comentários
	api.HandleFunc("/publicacoes", publicacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/publicacoes/{id}/arquivar", publicacaoHandler.Arquivar).Methods("POST")
	api.HandleFunc("/publicacoes/{id}/comentarios", comentarioHandler.Criar).Methods("POST")
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Editar).Methods("PUT")
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Remover).Methods("DELETE")
	api.Handle("/comentarios/{id}/moderacao", auth.RequireAdmin(http.HandlerFunc(comentarioHandler.Moderar))).Methods("PATCH")
	api.HandleFunc("/comentarios/{id}/curtidas", comentarioHandler.Curtir).Methods("POST")
	api.HandleFunc("/comentarios/{id}/curtidas", comentarioHandler.Descurtir).Methods("DELETE")

	// Middlewares externos: CORS e limite de requisições por cliente
	rps, burst := limiteRPS()
	limitador := ratelimit.New(rps, burst)
	handler := cors.AllowAll().Handler(limitador.Middleware(r))

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}

// prazoEdicaoAvaliacao lê PRAZO_EDICAO_AVALIACAO_HORAS; 0 ou ausente = sem limite.
func prazoEdicaoAvaliacao() time.Duration {
	horas, err := strconv.Atoi(os.Getenv("PRAZO_EDICAO_AVALIACAO_HORAS"))
	if err != nil || horas <= 0 {
		return 0
	}
	return time.Duration(horas) * time.Hour
}

func limiteRPS() (float64, int) {
	rps := 10.0
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		rps = v
	}
	burst := 20
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
		burst = v
	}
	return rps, burst
}
