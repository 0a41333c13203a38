// internal/comentario/service.go
package comentario

import (
	"errors"
	"unicode/utf8"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/ConectaServicos/api-marketplace/internal/publicacao"
	"gorm.io/gorm"
)

// Publicacoes é a fatia do repositório de publicações que os comentários
// consomem.
type Publicacoes interface {
	BuscarPorID(id uint) (*publicacao.Publicacao, error)
}

// Service aplica as regras da camada de comentários encadeados.
type Service struct {
	Repo        Repository
	Publicacoes Publicacoes
}

// NewService monta o serviço de comentários.
func NewService(repo Repository, publicacoes Publicacoes) *Service {
	return &Service{Repo: repo, Publicacoes: publicacoes}
}

// Criar insere um comentário (de topo ou resposta) em uma publicação ativa e
// incrementa o contador da publicação na mesma transação.
func (s *Service) Criar(ator auth.Ator, publicacaoID uint, conteudo string, parentID *uint) (*Comentario, error) {
	if err := validarConteudo(conteudo); err != nil {
		return nil, err
	}

	p, err := s.carregarPublicacao(publicacaoID)
	if err != nil {
		return nil, err
	}
	if !p.Comentavel() {
		return nil, erros.EstadoInvalido("publicação não aceita comentários")
	}

	if parentID != nil {
		pai, err := s.carregar(*parentID)
		if err != nil {
			return nil, err
		}
		if pai.PublicacaoID != publicacaoID {
			return nil, erros.ArgumentoInvalido("comentário pai pertence a outra publicação")
		}
		if pai.ParentID != nil {
			return nil, erros.ArgumentoInvalido("respostas não podem receber respostas")
		}
	}

	c := &Comentario{
		PublicacaoID: publicacaoID,
		AutorID:      ator.ID,
		ParentID:     parentID,
		Conteudo:     conteudo,
		Status:       StatusAprovado,
	}
	if err := s.Repo.CriarComContador(c); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("publicação não encontrada")
		}
		return nil, erros.Interno(err)
	}
	return c, nil
}

// Remover apaga o comentário. Comentário de topo leva junto todas as
// respostas diretas; o contador da publicação cai pelo total de linhas
// removidas. Só o autor ou um admin removem. Retorna o total removido.
func (s *Service) Remover(ator auth.Ator, comentarioID uint) (int64, error) {
	c, err := s.carregar(comentarioID)
	if err != nil {
		return 0, err
	}
	if c.AutorID != ator.ID && !ator.Admin() {
		return 0, erros.Proibido("apenas o autor ou um admin pode remover o comentário")
	}

	removidos, err := s.Repo.RemoverCascata(c)
	if err != nil {
		return 0, erros.Interno(err)
	}
	return removidos, nil
}

// Editar troca o conteúdo; só o autor edita, e só o conteúdo muda.
func (s *Service) Editar(ator auth.Ator, comentarioID uint, conteudo string) (*Comentario, error) {
	if err := validarConteudo(conteudo); err != nil {
		return nil, err
	}

	c, err := s.carregar(comentarioID)
	if err != nil {
		return nil, err
	}
	if c.AutorID != ator.ID {
		return nil, erros.Proibido("apenas o autor pode editar o comentário")
	}

	if err := s.Repo.AtualizarConteudo(c.ID, conteudo); err != nil {
		return nil, erros.Interno(err)
	}
	return s.carregar(comentarioID)
}

// Moderar oculta ou reaprova um comentário sem apagá-lo. Só admins.
func (s *Service) Moderar(ator auth.Ator, comentarioID uint, ocultar bool) (*Comentario, error) {
	if !ator.Admin() {
		return nil, erros.Proibido("apenas admins moderam comentários")
	}

	c, err := s.carregar(comentarioID)
	if err != nil {
		return nil, err
	}

	status := StatusAprovado
	if ocultar {
		status = StatusOcultoPeloAdmin
	}
	if err := s.Repo.AtualizarStatus(c.ID, status); err != nil {
		return nil, erros.Interno(err)
	}
	return s.carregar(comentarioID)
}

// Curtir registra o gostei do usuário; repetir dá Conflito.
func (s *Service) Curtir(ator auth.Ator, comentarioID uint) error {
	if _, err := s.carregar(comentarioID); err != nil {
		return err
	}
	if err := s.Repo.Curtir(comentarioID, ator.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return erros.Conflito("usuário já curtiu este comentário")
		}
		return erros.Interno(err)
	}
	return nil
}

// Descurtir remove o gostei, se existir.
func (s *Service) Descurtir(ator auth.Ator, comentarioID uint) error {
	if _, err := s.carregar(comentarioID); err != nil {
		return err
	}
	if _, err := s.Repo.Descurtir(comentarioID, ator.ID); err != nil {
		return erros.Interno(err)
	}
	return nil
}

// ListarTopo pagina os comentários de topo da publicação em ordem de
// criação. Ocultos só aparecem para admins.
func (s *Service) ListarTopo(ator auth.Ator, publicacaoID uint, limite, deslocamento int) ([]Comentario, error) {
	if _, err := s.carregarPublicacao(publicacaoID); err != nil {
		return nil, err
	}
	list, err := s.Repo.ListarTopo(publicacaoID, ator.Admin(), limite, deslocamento)
	if err != nil {
		return nil, erros.Interno(err)
	}
	return list, nil
}

// ListarRespostas busca as respostas diretas de um comentário de topo.
func (s *Service) ListarRespostas(ator auth.Ator, parentID uint) ([]Comentario, error) {
	if _, err := s.carregar(parentID); err != nil {
		return nil, err
	}
	list, err := s.Repo.ListarRespostas(parentID, ator.Admin())
	if err != nil {
		return nil, erros.Interno(err)
	}
	return list, nil
}

// Buscar retorna o comentário pelo ID.
func (s *Service) Buscar(comentarioID uint) (*Comentario, error) {
	return s.carregar(comentarioID)
}

func (s *Service) carregar(id uint) (*Comentario, error) {
	c, err := s.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("comentário não encontrado")
		}
		return nil, erros.Interno(err)
	}
	return c, nil
}

func (s *Service) carregarPublicacao(id uint) (*publicacao.Publicacao, error) {
	p, err := s.Publicacoes.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("publicação não encontrada")
		}
		return nil, erros.Interno(err)
	}
	return p, nil
}

func validarConteudo(conteudo string) error {
	n := utf8.RuneCountInString(conteudo)
	if n < ConteudoMin || n > ConteudoMax {
		return erros.ArgumentoInvalido("conteúdo deve ter entre 1 e 2000 caracteres")
	}
	return nil
}
