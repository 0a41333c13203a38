// internal/avaliacao/service.go
package avaliacao

import (
	"context"
	"errors"
	"time"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/contratacao"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/ConectaServicos/api-marketplace/internal/notificacao"
	"gorm.io/gorm"
)

// Contratacoes é a fatia do repositório de contratações que a avaliação
// consome.
type Contratacoes interface {
	BuscarPorID(id uint) (*contratacao.Contratacao, error)
}

// Service aplica as regras do livro de avaliações.
type Service struct {
	Repo         Repository
	Contratacoes Contratacoes
	Notificador  notificacao.Sink

	// PrazoEdicao limita a janela de edição pelo autor. Zero desliga o
	// limite (ponto de configuração: PRAZO_EDICAO_AVALIACAO_HORAS).
	PrazoEdicao time.Duration
}

// NewService monta o serviço de avaliações.
func NewService(repo Repository, contratacoes Contratacoes, notificador notificacao.Sink, prazoEdicao time.Duration) *Service {
	return &Service{Repo: repo, Contratacoes: contratacoes, Notificador: notificador, PrazoEdicao: prazoEdicao}
}

// Enviar registra a avaliação do autor sobre o outro participante de uma
// contratação concluída. O receptor é deduzido: é sempre "o outro lado".
func (s *Service) Enviar(ctx context.Context, ator auth.Ator, contratacaoID uint, nota int, comentario string) (*Avaliacao, error) {
	if !NotaValida(nota) {
		return nil, erros.ArgumentoInvalido("nota deve estar entre 1 e 5")
	}

	c, err := s.Contratacoes.BuscarPorID(contratacaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("contratação não encontrada")
		}
		return nil, erros.Interno(err)
	}
	if c.Status != contratacao.StatusConcluida {
		return nil, erros.EstadoInvalido("avaliação só é permitida com a contratação concluída")
	}

	var receptorID uint
	switch ator.ID {
	case c.CompradorID:
		receptorID = c.PrestadorID
	case c.PrestadorID:
		receptorID = c.CompradorID
	default:
		return nil, erros.Proibido("ator não participa desta contratação")
	}

	existe, err := s.Repo.Existe(ator.ID, receptorID, contratacaoID)
	if err != nil {
		return nil, erros.Interno(err)
	}
	if existe {
		return nil, erros.Conflito("já existe avaliação deste autor para esta contratação")
	}

	a := &Avaliacao{
		ContratacaoID: contratacaoID,
		AutorID:       ator.ID,
		ReceptorID:    receptorID,
		Nota:          nota,
		Comentario:    comentario,
	}
	if err := s.Repo.Criar(a); err != nil {
		// corrida entre o pré-check e o insert: o índice único decide
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, erros.Conflito("já existe avaliação deste autor para esta contratação")
		}
		return nil, erros.Interno(err)
	}

	if s.Notificador != nil {
		s.Notificador.Emitir(ctx, notificacao.NovoEvento(notificacao.TipoAvaliacaoRecebida, map[string]interface{}{
			"avaliacaoId":   a.ID,
			"contratacaoId": contratacaoID,
			"nota":          nota,
			"destinatario":  receptorID,
		}))
	}
	return a, nil
}

// Editar permite ao autor revisar nota e comentário. Autor, receptor e
// contratação são imutáveis.
func (s *Service) Editar(ator auth.Ator, avaliacaoID uint, nota int, comentario string) (*Avaliacao, error) {
	a, err := s.carregar(avaliacaoID)
	if err != nil {
		return nil, err
	}
	if a.AutorID != ator.ID {
		return nil, erros.Proibido("apenas o autor pode editar a avaliação")
	}
	if !NotaValida(nota) {
		return nil, erros.ArgumentoInvalido("nota deve estar entre 1 e 5")
	}
	if s.PrazoEdicao > 0 && time.Since(a.CreatedAt) > s.PrazoEdicao {
		return nil, erros.EstadoInvalido("prazo de edição da avaliação expirou")
	}

	if err := s.Repo.AtualizarNotaComentario(a.ID, nota, comentario); err != nil {
		return nil, erros.Interno(err)
	}
	return s.carregar(avaliacaoID)
}

// Buscar retorna uma avaliação pelo ID.
func (s *Service) Buscar(avaliacaoID uint) (*Avaliacao, error) {
	return s.carregar(avaliacaoID)
}

// ResumoReceptor devolve média e total de avaliações recebidas, para o
// perfil público do usuário.
func (s *Service) ResumoReceptor(receptorID uint) (media float64, total int64, err error) {
	media, total, err = s.Repo.MediaPorReceptor(receptorID)
	if err != nil {
		return 0, 0, erros.Interno(err)
	}
	return media, total, nil
}

// ListarPorReceptor devolve as avaliações recebidas pelo usuário.
func (s *Service) ListarPorReceptor(receptorID uint) ([]Avaliacao, error) {
	list, err := s.Repo.ListarPorReceptor(receptorID)
	if err != nil {
		return nil, erros.Interno(err)
	}
	return list, nil
}

func (s *Service) carregar(id uint) (*Avaliacao, error) {
	a, err := s.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("avaliação não encontrada")
		}
		return nil, erros.Interno(err)
	}
	return a, nil
}
