// internal/negociacao/service.go
package negociacao

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

// Contratacoes é a fatia do repositório de contratações que a negociação
// consome para resolver participantes e estado.
type Contratacoes interface {
	BuscarPorID(id uint) (*contratacao.Contratacao, error)
}

// Service aplica o protocolo de proposta e contraproposta.
type Service struct {
	Repo         Repository
	Contratacoes Contratacoes
	Notificador  notificacao.Sink
}

// NewService monta o serviço de negociações.
func NewService(repo Repository, contratacoes Contratacoes, notificador notificacao.Sink) *Service {
	return &Service{Repo: repo, Contratacoes: contratacoes, Notificador: notificador}
}

// Abrir inicia uma negociação sobre uma contratação pendente, já com a
// primeira proposta. Só participantes negociam; admins resolvem disputas,
// não preços.
func (s *Service) Abrir(ctx context.Context, ator auth.Ator, contratacaoID uint, valor float64, condicoes string) (*Negociacao, error) {
	if valor < 0 {
		return nil, erros.ArgumentoInvalido("valor proposto não pode ser negativo")
	}

	c, err := s.carregarContratacao(contratacaoID)
	if err != nil {
		return nil, err
	}
	papel, err := papelParticipante(c, ator)
	if err != nil {
		return nil, err
	}
	if c.Status != contratacao.StatusPendente {
		return nil, erros.EstadoInvalido("negociação só pode ser aberta com a contratação pendente")
	}

	aberta, err := s.Repo.BuscarAbertaPorContratacao(contratacaoID)
	if err != nil {
		return nil, erros.Interno(err)
	}
	if aberta != nil {
		return nil, erros.Conflito("já existe uma negociação aberta para esta contratação")
	}

	n := &Negociacao{
		ContratacaoID:    contratacaoID,
		Status:           StatusAberta,
		UltimoProponente: papel,
		Propostas: []Proposta{{
			Papel:     papel,
			Valor:     valor,
			Condicoes: condicoes,
			CriadaEm:  time.Now(),
		}},
	}
	if err := s.Repo.Criar(n); err != nil {
		return nil, erros.Interno(err)
	}

	s.notificar(ctx, notificacao.TipoNegociacaoAberta, map[string]interface{}{
		"negociacaoId":  n.ID,
		"contratacaoId": contratacaoID,
		"valor":         valor,
		"destinatario":  contraparteID(c, ator.ID),
	})
	return n, nil
}

// Propor registra uma contraproposta. O turno alterna estritamente: quem fez
// o último lance não propõe de novo até o outro lado responder. A checagem é
// feita na escrita, contra o último proponente gravado — de duas propostas
// simultâneas do mesmo lado, exatamente uma vence.
func (s *Service) Propor(ctx context.Context, ator auth.Ator, negociacaoID uint, valor float64, condicoes string) (*Negociacao, error) {
	if valor < 0 {
		return nil, erros.ArgumentoInvalido("valor proposto não pode ser negativo")
	}

	n, c, papel, err := s.carregarParaLance(ator, negociacaoID)
	if err != nil {
		return nil, err
	}
	if papel == n.UltimoProponente {
		return nil, erros.NaoESuaVez("aguarde a resposta do outro participante")
	}

	novas := append(append([]Proposta{}, n.Propostas...), Proposta{
		Papel:     papel,
		Valor:     valor,
		Condicoes: condicoes,
		CriadaEm:  time.Now(),
	})
	ok, err := s.Repo.AnexarProposta(n.ID, n.UltimoProponente, novas, papel)
	if err != nil {
		return nil, erros.Interno(err)
	}
	if !ok {
		return nil, s.motivoDerrota(negociacaoID, papel)
	}

	atualizada, err := s.Repo.BuscarPorID(negociacaoID)
	if err != nil {
		return nil, erros.Interno(err)
	}

	s.notificar(ctx, notificacao.TipoNegociacaoProposta, map[string]interface{}{
		"negociacaoId":  n.ID,
		"contratacaoId": n.ContratacaoID,
		"valor":         valor,
		"destinatario":  contraparteID(c, ator.ID),
	})
	return atualizada, nil
}

// Aceitar fecha a negociação aceitando o último lance do outro lado. O valor
// e as condições da proposta são copiados para a contratação, que sai de
// pendente para aceita na mesma transação.
func (s *Service) Aceitar(ctx context.Context, ator auth.Ator, negociacaoID uint) (*Negociacao, error) {
	n, c, papel, err := s.carregarParaLance(ator, negociacaoID)
	if err != nil {
		return nil, err
	}
	if papel == n.UltimoProponente {
		return nil, erros.NaoESuaVez("não é possível aceitar a própria proposta")
	}
	proposta, ok := n.UltimaProposta()
	if !ok {
		return nil, erros.EstadoInvalido("negociação sem propostas")
	}

	if err := s.Repo.Aceitar(n.ID, n.UltimoProponente, n.ContratacaoID, proposta.Valor, proposta.Condicoes); err != nil {
		var e *erros.Erro
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, erros.Interno(err)
	}

	atualizada, err := s.Repo.BuscarPorID(negociacaoID)
	if err != nil {
		return nil, erros.Interno(err)
	}

	s.notificar(ctx, notificacao.TipoNegociacaoResolvida, map[string]interface{}{
		"negociacaoId":  n.ID,
		"contratacaoId": n.ContratacaoID,
		"resultado":     StatusAceita,
		"valor":         proposta.Valor,
		"destinatario":  contraparteID(c, ator.ID),
	})
	return atualizada, nil
}

// Recusar encerra a negociação sem efeito sobre a contratação, que continua
// pendente; uma nova negociação pode ser aberta em seguida.
func (s *Service) Recusar(ctx context.Context, ator auth.Ator, negociacaoID uint) (*Negociacao, error) {
	n, c, papel, err := s.carregarParaLance(ator, negociacaoID)
	if err != nil {
		return nil, err
	}
	if papel == n.UltimoProponente {
		return nil, erros.NaoESuaVez("não é possível recusar a própria proposta")
	}

	ok, err := s.Repo.Recusar(n.ID, n.UltimoProponente)
	if err != nil {
		return nil, erros.Interno(err)
	}
	if !ok {
		return nil, s.motivoDerrota(negociacaoID, papel)
	}

	atualizada, err := s.Repo.BuscarPorID(negociacaoID)
	if err != nil {
		return nil, erros.Interno(err)
	}

	s.notificar(ctx, notificacao.TipoNegociacaoResolvida, map[string]interface{}{
		"negociacaoId":  n.ID,
		"contratacaoId": n.ContratacaoID,
		"resultado":     StatusRecusada,
		"destinatario":  contraparteID(c, ator.ID),
	})
	return atualizada, nil
}

// Buscar retorna a negociação para um participante da contratação.
func (s *Service) Buscar(ator auth.Ator, negociacaoID uint) (*Negociacao, error) {
	n, err := s.carregarNegociacao(negociacaoID)
	if err != nil {
		return nil, err
	}
	c, err := s.carregarContratacao(n.ContratacaoID)
	if err != nil {
		return nil, err
	}
	if !ator.Admin() {
		if _, err := papelParticipante(c, ator); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// ListarPorContratacao retorna o histórico de negociações da contratação.
func (s *Service) ListarPorContratacao(ator auth.Ator, contratacaoID uint) ([]Negociacao, error) {
	c, err := s.carregarContratacao(contratacaoID)
	if err != nil {
		return nil, err
	}
	if !ator.Admin() {
		if _, err := papelParticipante(c, ator); err != nil {
			return nil, err
		}
	}
	list, err := s.Repo.ListarPorContratacao(contratacaoID)
	if err != nil {
		return nil, erros.Interno(err)
	}
	return list, nil
}

func (s *Service) carregarParaLance(ator auth.Ator, negociacaoID uint) (*Negociacao, *contratacao.Contratacao, string, error) {
	n, err := s.carregarNegociacao(negociacaoID)
	if err != nil {
		return nil, nil, "", err
	}
	if !Aberta(n.Status) {
		return nil, nil, "", erros.EstadoInvalido("negociação já foi resolvida")
	}
	c, err := s.carregarContratacao(n.ContratacaoID)
	if err != nil {
		return nil, nil, "", err
	}
	papel, err := papelParticipante(c, ator)
	if err != nil {
		return nil, nil, "", err
	}
	return n, c, papel, nil
}

// motivoDerrota traduz uma escrita condicional que não casou: recarrega a
// negociação e devolve o erro que o estado fresco justifica.
func (s *Service) motivoDerrota(negociacaoID uint, papel string) error {
	n, err := s.carregarNegociacao(negociacaoID)
	if err != nil {
		return err
	}
	if !Aberta(n.Status) {
		return erros.EstadoInvalido("negociação já foi resolvida")
	}
	if n.UltimoProponente == papel {
		return erros.NaoESuaVez("aguarde a resposta do outro participante")
	}
	return erros.EstadoDesatualizado("negociação mudou; recarregue e tente novamente")
}

func (s *Service) carregarNegociacao(id uint) (*Negociacao, error) {
	n, err := s.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("negociação não encontrada")
		}
		return nil, erros.Interno(err)
	}
	return n, nil
}

func (s *Service) carregarContratacao(id uint) (*contratacao.Contratacao, error) {
	c, err := s.Contratacoes.BuscarPorID(id)
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

func papelParticipante(c *contratacao.Contratacao, ator auth.Ator) (string, error) {
	switch ator.ID {
	case c.CompradorID:
		return contratacao.PapelComprador, nil
	case c.PrestadorID:
		return contratacao.PapelPrestador, nil
	}
	return "", erros.Proibido("ator não participa desta contratação")
}

func contraparteID(c *contratacao.Contratacao, atorID uint) uint {
	if atorID == c.CompradorID {
		return c.PrestadorID
	}
	return c.CompradorID
}
