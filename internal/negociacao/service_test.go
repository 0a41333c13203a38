package negociacao

import (
	"context"
	"testing"
	"time"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/contratacao"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// baseTeste guarda contratações e negociações em memória; os dois fakes de
// repositório compartilham o mesmo estado para que o aceite atravesse os dois
// agregados como no banco.
type baseTeste struct {
	contratacoes map[uint]*contratacao.Contratacao
	negociacoes  map[uint]*Negociacao
	seq          uint
}

type repoNegMem struct{ b *baseTeste }

func (r *repoNegMem) Criar(n *Negociacao) error {
	r.b.seq++
	n.ID = r.b.seq
	n.CreatedAt = time.Now()
	copia := *n
	r.b.negociacoes[n.ID] = &copia
	return nil
}

func (r *repoNegMem) BuscarPorID(id uint) (*Negociacao, error) {
	n, ok := r.b.negociacoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *n
	return &copia, nil
}

func (r *repoNegMem) BuscarAbertaPorContratacao(contratacaoID uint) (*Negociacao, error) {
	for _, n := range r.b.negociacoes {
		if n.ContratacaoID == contratacaoID && Aberta(n.Status) {
			copia := *n
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *repoNegMem) ListarPorContratacao(contratacaoID uint) ([]Negociacao, error) {
	var list []Negociacao
	for _, n := range r.b.negociacoes {
		if n.ContratacaoID == contratacaoID {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (r *repoNegMem) AnexarProposta(id uint, proponenteLido string, propostas datatypes.JSONSlice[Proposta], novoProponente string) (bool, error) {
	n, ok := r.b.negociacoes[id]
	if !ok || !Aberta(n.Status) || n.UltimoProponente != proponenteLido {
		return false, nil
	}
	n.Propostas = propostas
	n.UltimoProponente = novoProponente
	n.Status = StatusContraproposta
	return true, nil
}

func (r *repoNegMem) Aceitar(id uint, proponenteLido string, contratacaoID uint, valor float64, condicoes string) error {
	n, ok := r.b.negociacoes[id]
	if !ok || !Aberta(n.Status) || n.UltimoProponente != proponenteLido {
		return erros.EstadoDesatualizado("negociação mudou; recarregue e tente novamente")
	}
	c, ok := r.b.contratacoes[contratacaoID]
	if !ok || c.Status != contratacao.StatusPendente {
		return erros.EstadoInvalido("contratação não está mais pendente")
	}
	n.Status = StatusAceita
	c.Status = contratacao.StatusAceita
	c.ValorAcordado = valor
	c.Condicoes = condicoes
	return nil
}

func (r *repoNegMem) Recusar(id uint, proponenteLido string) (bool, error) {
	n, ok := r.b.negociacoes[id]
	if !ok || !Aberta(n.Status) || n.UltimoProponente != proponenteLido {
		return false, nil
	}
	n.Status = StatusRecusada
	return true, nil
}

type contratacoesMem struct{ b *baseTeste }

func (m *contratacoesMem) BuscarPorID(id uint) (*contratacao.Contratacao, error) {
	c, ok := m.b.contratacoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

var (
	comprador = auth.Ator{ID: 1, Perfil: auth.PerfilComprador}
	prestador = auth.Ator{ID: 2, Perfil: auth.PerfilPrestador}
)

func novoServicoTeste() (*Service, *baseTeste) {
	b := &baseTeste{
		contratacoes: map[uint]*contratacao.Contratacao{},
		negociacoes:  map[uint]*Negociacao{},
	}
	b.contratacoes[100] = &contratacao.Contratacao{
		Model:         gorm.Model{ID: 100},
		CompradorID:   comprador.ID,
		PrestadorID:   prestador.ID,
		OfertaID:      10,
		Status:        contratacao.StatusPendente,
		ValorAcordado: 150,
	}
	return NewService(&repoNegMem{b}, &contratacoesMem{b}, nil), b
}

func TestAbrirComPrimeiraProposta(t *testing.T) {
	s, _ := novoServicoTeste()

	n, err := s.Abrir(context.Background(), comprador, 100, 120, "pagamento em duas parcelas")
	if err != nil {
		t.Fatalf("Abrir: %v", err)
	}
	if n.Status != StatusAberta {
		t.Errorf("status = %q, quer aberta", n.Status)
	}
	if n.UltimoProponente != contratacao.PapelComprador {
		t.Errorf("último proponente = %q", n.UltimoProponente)
	}
	if len(n.Propostas) != 1 || n.Propostas[0].Valor != 120 {
		t.Errorf("propostas = %+v", n.Propostas)
	}
}

func TestAbrirExigeContratacaoPendente(t *testing.T) {
	s, b := novoServicoTeste()
	b.contratacoes[100].Status = contratacao.StatusAceita

	_, err := s.Abrir(context.Background(), comprador, 100, 120, "")
	if !erros.ETipo(err, erros.TipoEstadoInvalido) {
		t.Fatalf("err = %v, quer EstadoInvalido", err)
	}
}

func TestAbrirComNegociacaoJaAberta(t *testing.T) {
	s, _ := novoServicoTeste()
	ctx := context.Background()

	if _, err := s.Abrir(ctx, comprador, 100, 120, ""); err != nil {
		t.Fatalf("primeira: %v", err)
	}
	_, err := s.Abrir(ctx, prestador, 100, 140, "")
	if !erros.ETipo(err, erros.TipoConflito) {
		t.Fatalf("err = %v, quer Conflito", err)
	}
}

func TestAbrirSomenteParticipante(t *testing.T) {
	s, _ := novoServicoTeste()
	ctx := context.Background()

	estranho := auth.Ator{ID: 77, Perfil: auth.PerfilComprador}
	if _, err := s.Abrir(ctx, estranho, 100, 120, ""); !erros.ETipo(err, erros.TipoProibido) {
		t.Errorf("estranho: err = %v, quer Proibido", err)
	}
	// admin resolve disputas, não negocia preço
	admin := auth.Ator{ID: 9, Perfil: auth.PerfilAdmin}
	if _, err := s.Abrir(ctx, admin, 100, 120, ""); !erros.ETipo(err, erros.TipoProibido) {
		t.Errorf("admin: err = %v, quer Proibido", err)
	}
}

func TestProporAlternaTurnos(t *testing.T) {
	s, _ := novoServicoTeste()
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")

	// comprador fez o último lance: não pode propor de novo
	if _, err := s.Propor(ctx, comprador, n.ID, 110, ""); !erros.ETipo(err, erros.TipoNaoESuaVez) {
		t.Fatalf("mesmo lado: err = %v, quer NaoESuaVez", err)
	}

	n2, err := s.Propor(ctx, prestador, n.ID, 140, "")
	if err != nil {
		t.Fatalf("contraproposta do prestador: %v", err)
	}
	if n2.Status != StatusContraproposta || n2.UltimoProponente != contratacao.PapelPrestador {
		t.Errorf("estado após contraproposta = (%q, %q)", n2.Status, n2.UltimoProponente)
	}
	if len(n2.Propostas) != 2 {
		t.Errorf("propostas = %d, quer 2", len(n2.Propostas))
	}

	n3, err := s.Propor(ctx, comprador, n.ID, 130, "")
	if err != nil {
		t.Fatalf("resposta do comprador: %v", err)
	}
	if len(n3.Propostas) != 3 {
		t.Errorf("propostas = %d, quer 3", len(n3.Propostas))
	}
}

// repoNegComInterferencia injeta um lance concorrente entre a leitura e a
// escrita condicional.
type repoNegComInterferencia struct {
	*repoNegMem
	interferir func()
}

func (r *repoNegComInterferencia) AnexarProposta(id uint, proponenteLido string, propostas datatypes.JSONSlice[Proposta], novoProponente string) (bool, error) {
	if r.interferir != nil {
		r.interferir()
		r.interferir = nil
	}
	return r.repoNegMem.AnexarProposta(id, proponenteLido, propostas, novoProponente)
}

func TestProporCorridaDoMesmoLado(t *testing.T) {
	b := &baseTeste{
		contratacoes: map[uint]*contratacao.Contratacao{},
		negociacoes:  map[uint]*Negociacao{},
	}
	b.contratacoes[100] = &contratacao.Contratacao{
		Model:       gorm.Model{ID: 100},
		CompradorID: comprador.ID,
		PrestadorID: prestador.ID,
		Status:      contratacao.StatusPendente,
	}
	repo := &repoNegComInterferencia{repoNegMem: &repoNegMem{b}}
	s := NewService(repo, &contratacoesMem{b}, nil)
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")

	// o outro pedido do prestador grava primeiro
	repo.interferir = func() {
		viva := b.negociacoes[n.ID]
		viva.Propostas = append(viva.Propostas, Proposta{Papel: contratacao.PapelPrestador, Valor: 145})
		viva.UltimoProponente = contratacao.PapelPrestador
		viva.Status = StatusContraproposta
	}

	_, err := s.Propor(ctx, prestador, n.ID, 140, "")
	if !erros.ETipo(err, erros.TipoNaoESuaVez) {
		t.Fatalf("err = %v, quer NaoESuaVez (exatamente um lance do lado vence)", err)
	}
	if got := len(b.negociacoes[n.ID].Propostas); got != 2 {
		t.Errorf("propostas gravadas = %d, quer 2", got)
	}
}

func TestAceitarCopiaParaContratacao(t *testing.T) {
	s, b := novoServicoTeste()
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")
	if _, err := s.Propor(ctx, prestador, n.ID, 135, "inclui material"); err != nil {
		t.Fatalf("Propor: %v", err)
	}

	resolvida, err := s.Aceitar(ctx, comprador, n.ID)
	if err != nil {
		t.Fatalf("Aceitar: %v", err)
	}
	if resolvida.Status != StatusAceita {
		t.Errorf("negociação = %q, quer aceita", resolvida.Status)
	}

	c := b.contratacoes[100]
	if c.Status != contratacao.StatusAceita {
		t.Errorf("contratação = %q, quer aceita", c.Status)
	}
	if c.ValorAcordado != 135 || c.Condicoes != "inclui material" {
		t.Errorf("termos gravados = (%v, %q), quer (135, inclui material)", c.ValorAcordado, c.Condicoes)
	}
}

func TestAceitarPropriaProposta(t *testing.T) {
	s, _ := novoServicoTeste()
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")
	if _, err := s.Aceitar(ctx, comprador, n.ID); !erros.ETipo(err, erros.TipoNaoESuaVez) {
		t.Fatalf("err = %v, quer NaoESuaVez", err)
	}
}

func TestAceitarComContratacaoForaDePendente(t *testing.T) {
	s, b := novoServicoTeste()
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")
	// a contratação saiu de pendente por fora da negociação
	b.contratacoes[100].Status = contratacao.StatusCanceladaPeloComprador

	_, err := s.Aceitar(ctx, prestador, n.ID)
	if !erros.ETipo(err, erros.TipoEstadoInvalido) {
		t.Fatalf("err = %v, quer EstadoInvalido", err)
	}
	if b.negociacoes[n.ID].Status != StatusAberta {
		t.Errorf("negociação = %q, quer aberta (aceite desfeito)", b.negociacoes[n.ID].Status)
	}
}

func TestRecusarMantemContratacaoPendente(t *testing.T) {
	s, b := novoServicoTeste()
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")
	resolvida, err := s.Recusar(ctx, prestador, n.ID)
	if err != nil {
		t.Fatalf("Recusar: %v", err)
	}
	if resolvida.Status != StatusRecusada {
		t.Errorf("negociação = %q, quer recusada", resolvida.Status)
	}
	if b.contratacoes[100].Status != contratacao.StatusPendente {
		t.Errorf("contratação = %q, quer pendente", b.contratacoes[100].Status)
	}

	// uma nova negociação pode ser aberta em seguida
	if _, err := s.Abrir(ctx, prestador, 100, 140, ""); err != nil {
		t.Errorf("reabrir após recusa: %v", err)
	}
}

func TestLanceEmNegociacaoResolvida(t *testing.T) {
	s, _ := novoServicoTeste()
	ctx := context.Background()

	n, _ := s.Abrir(ctx, comprador, 100, 120, "")
	if _, err := s.Recusar(ctx, prestador, n.ID); err != nil {
		t.Fatalf("Recusar: %v", err)
	}

	_, err := s.Propor(ctx, prestador, n.ID, 140, "")
	if !erros.ETipo(err, erros.TipoEstadoInvalido) {
		t.Fatalf("err = %v, quer EstadoInvalido", err)
	}
}
