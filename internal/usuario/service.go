// internal/usuario/service.go
package usuario

import (
	"errors"

	"github.com/ConectaServicos/api-marketplace/internal/auth"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"github.com/ConectaServicos/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

// VerificadorContratacoes informa se o usuário ainda está preso a alguma
// contratação ativa; implementado pelo repositório de contratações.
type VerificadorContratacoes interface {
	PossuiContratacaoAtiva(usuarioID uint) (bool, error)
}

// Service aplica as regras de conta de usuário.
type Service struct {
	Repo         Repository
	Contratacoes VerificadorContratacoes
}

// NewService monta o serviço de usuários.
func NewService(repo Repository, contratacoes VerificadorContratacoes) *Service {
	return &Service{Repo: repo, Contratacoes: contratacoes}
}

var perfisPublicos = map[string]bool{
	auth.PerfilComprador:  true,
	auth.PerfilPrestador:  true,
	auth.PerfilAnunciante: true,
}

// Registrar cria a conta com a senha já em hash bcrypt. Contas admin não
// nascem pelo cadastro público.
func (s *Service) Registrar(nome, sobrenome, email, telefone, foto, senha, perfil string) (*Usuario, error) {
	if email == "" || senha == "" {
		return nil, erros.ArgumentoInvalido("email e senha são obrigatórios")
	}
	if !perfisPublicos[perfil] {
		return nil, erros.ArgumentoInvalido("perfil deve ser comprador, prestador ou anunciante")
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		return nil, erros.Interno(err)
	}
	u := &Usuario{
		Nome:      nome,
		Sobrenome: sobrenome,
		Email:     email,
		Telefone:  telefone,
		Foto:      foto,
		Senha:     hash,
		Perfil:    perfil,
	}
	if err := s.Repo.Salvar(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, erros.Conflito("já existe usuário com este e-mail")
		}
		return nil, erros.Interno(err)
	}
	return u, nil
}

// Autenticar confere as credenciais e devolve o usuário.
func (s *Service) Autenticar(email, senha string) (*Usuario, error) {
	u, err := s.Repo.BuscarPorEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.Proibido("credenciais inválidas")
		}
		return nil, erros.Interno(err)
	}
	if !utils.CheckSenha(u.Senha, senha) {
		return nil, erros.Proibido("credenciais inválidas")
	}
	return u, nil
}

// Buscar retorna o usuário pelo ID.
func (s *Service) Buscar(id uint) (*Usuario, error) {
	return s.carregar(id)
}

// ResolverUsuario é o contrato de diretório consumido pelos outros módulos.
func (s *Service) ResolverUsuario(id uint) (*Resumo, error) {
	u, err := s.carregar(id)
	if err != nil {
		return nil, err
	}
	return &Resumo{ID: u.ID, Nome: u.Nome, Perfil: u.Perfil}, nil
}

// Listar retorna todos os usuários (rota administrativa).
func (s *Service) Listar() ([]Usuario, error) {
	list, err := s.Repo.ListarTodos()
	if err != nil {
		return nil, erros.Interno(err)
	}
	return list, nil
}

// Atualizar troca os dados de perfil; senha e perfil não mudam por aqui.
func (s *Service) Atualizar(ator auth.Ator, id uint, nome, sobrenome, telefone, foto string) (*Usuario, error) {
	if ator.ID != id && !ator.Admin() {
		return nil, erros.Proibido("apenas o próprio usuário ou um admin pode atualizar a conta")
	}
	u, err := s.carregar(id)
	if err != nil {
		return nil, err
	}

	u.Nome = nome
	u.Sobrenome = sobrenome
	u.Telefone = telefone
	u.Foto = foto
	if err := s.Repo.Salvar(u); err != nil {
		return nil, erros.Interno(err)
	}
	return u, nil
}

// Remover apaga a conta, desde que o usuário não esteja preso a nenhuma
// contratação ativa (pendente, aceita, em andamento ou em disputa).
func (s *Service) Remover(ator auth.Ator, id uint) error {
	if ator.ID != id && !ator.Admin() {
		return erros.Proibido("apenas o próprio usuário ou um admin pode remover a conta")
	}
	if _, err := s.carregar(id); err != nil {
		return err
	}

	ativa, err := s.Contratacoes.PossuiContratacaoAtiva(id)
	if err != nil {
		return erros.Interno(err)
	}
	if ativa {
		return erros.Conflito("conta possui contratações ativas e não pode ser removida")
	}

	if err := s.Repo.Deletar(id); err != nil {
		return erros.Interno(err)
	}
	return nil
}

func (s *Service) carregar(id uint) (*Usuario, error) {
	u, err := s.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erros.NaoEncontrado("usuário não encontrado")
		}
		return nil, erros.Interno(err)
	}
	return u, nil
}
