// internal/contratacao/service.go
package contratacao

import (
	"context"
	"errors"
	"time"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/ConectaServicos/api-marketplace/internal/notificacao"
	"gorm.io/gorm"
)

// OfertaResumo é o que o núcleo precisa saber de uma oferta do catálogo.
type OfertaResumo struct {
	ID          uint
	PrestadorID uint
	Valor       float64
}

// Catalogo resolve ofertas; implementado pelo pacote oferta.
type Catalogo interface {
	ResolverOferta(id uint) (*OfertaResumo, error)
}

// Service aplica as regras de negócio do ciclo de vida da contratação.
type Service struct {
	Repo        Repository
	Catalogo    Catalogo
	Notificador notificacao.Sink
}

// NewService monta o serviço de contratações.
func NewService(repo Repository, catalogo Catalogo, notificador notificacao.Sink) *Service {
	return &Service{Repo: repo, Catalogo: catalogo, Notificador: notificador}
}

// Contratar cria uma contratação pendente da oferta em nome do comprador.
// O valor acordado inicial é o preço de catálogo; a negociação pode revisá-lo
// antes do aceite.
func (s *Service) Contratar(ctx context.Context, ator auth.Ator, ofertaID uint) (*Contratacao, error) {
	if ator.Perfil != auth.PerfilComprador {
		return nil, erros.Proibido("apenas compradores podem contratar uma oferta")
	}

	oferta, err := s.Catalogo.ResolverOferta(ofertaID)
	if err != nil {
		return nil, err
	}
	if oferta.PrestadorID == ator.ID {
		return nil, erros.ArgumentoInvalido("comprador e prestador devem ser usuários distintos")
	}
	if oferta.Valor < 0 {
		return nil, erros.ArgumentoInvalido("valor da oferta não pode ser negativo")
	}

	c := &Contratacao{
		CompradorID:   ator.ID,
		PrestadorID:   oferta.PrestadorID,
		OfertaID:      oferta.ID,
		Status:        StatusPendente,
		ValorAcordado: oferta.Valor,
	}
	if err := s.Repo.Criar(c); err != nil {
		return nil, erros.Interno(err)
	}

	s.notificar(ctx, notificacao.TipoContratacaoCriada, map[string]interface{}{
		"contratacaoId": c.ID,
		"ofertaId":      c.OfertaID,
		"destinatario":  c.PrestadorID,
	})
	return c, nil
}

// Transicionar leva a contratação ao status pedido, se a tupla
// (status atual, papel do ator, status pedido) estiver na tabela da máquina.
// A escrita é condicional ao status lido; quem perde a corrida recebe
// EstadoDesatualizado e deve recarregar.
func (s *Service) Transicionar(ctx context.Context, ator auth.Ator, id uint, statusPedido string) (*Contratacao, error) {
	c, err := s.carregar(id)
	if err != nil {
		return nil, err
	}

	papel := PapelDoAtor(c, ator)
	if papel == "" {
		return nil, erros.Proibido("ator não participa desta contratação")
	}
	if !TransicaoPermitida(c.Status, papel, statusPedido) {
		return nil, erros.TransicaoInvalida(c.Status, statusPedido)
	}

	extras := map[string]interface{}{}
	agora := time.Now()
	switch statusPedido {
	case StatusEmAndamento:
		extras["inicio_servico"] = &agora
	case StatusConcluida:
		extras["fim_servico"] = &agora
	}

	ok, err := s.Repo.AtualizarStatusCondicional(c.ID, c.Status, statusPedido, extras)
	if err != nil {
		return nil, erros.Interno(err)
	}
	if !ok {
		// a escrita condicional não casou: ou a linha sumiu, ou outro pedido
		// mudou o status primeiro
		if _, err := s.carregar(id); err != nil {
			return nil, err
		}
		return nil, erros.EstadoDesatualizado("status da contratação mudou; recarregue e tente novamente")
	}

	atualizada, err := s.carregar(id)
	if err != nil {
		return nil, err
	}

	s.notificar(ctx, notificacao.TipoContratacaoStatus, map[string]interface{}{
		"contratacaoId": atualizada.ID,
		"de":            c.Status,
		"para":          atualizada.Status,
		"destinatario":  contraparte(atualizada, ator.ID),
	})
	return atualizada, nil
}

// Buscar retorna a contratação para um participante ou admin.
func (s *Service) Buscar(ator auth.Ator, id uint) (*Contratacao, error) {
	c, err := s.carregar(id)
	if err != nil {
		return nil, err
	}
	if PapelDoAtor(c, ator) == "" {
		return nil, erros.Proibido("ator não participa desta contratação")
	}
	return c, nil
}

// ListarDoUsuario retorna as contratações em que o usuário é comprador ou
// prestador, mais recentes primeiro.
func (s *Service) ListarDoUsuario(usuarioID uint) ([]Contratacao, error) {
	list, err := s.Repo.ListarPorParticipante(usuarioID)
	if err != nil {
		return nil, erros.Interno(err)
	}
	return list, nil
}

func (s *Service) carregar(id uint) (*Contratacao, error) {
	c, err := s.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("contratação não encontrada")
		}
		return nil, erros.Interno(err)
	}
	return c, nil
}

func (s *Service) notificar(ctx context.Context, tipo string, payload map[string]interface{}) {
	if s.Notificador == nil {
		return
	}
	s.Notificador.Emitir(ctx, notificacao.NovoEvento(tipo, payload))
}

// contraparte devolve o outro lado da contratação em relação a quem agiu;
// para um admin resolvendo disputa, notifica o comprador.
func contraparte(c *Contratacao, atorID uint) uint {
	if atorID == c.CompradorID {
		return c.PrestadorID
	}
	return c.CompradorID
}
