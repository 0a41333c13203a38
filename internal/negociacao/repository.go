// internal/negociacao/repository.go
package negociacao

import (
	"errors"

	"github.com/ConectaServicos/api-marketplace/internal/contratacao"
	"github.com/ConectaServicos/api-marketplace/internal/erros"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de negociações.
type Repository interface {
	Criar(n *Negociacao) error
	BuscarPorID(id uint) (*Negociacao, error)
	// BuscarAbertaPorContratacao retorna (nil, nil) quando não há negociação
	// aberta ou em contraproposta para a contratação.
	BuscarAbertaPorContratacao(contratacaoID uint) (*Negociacao, error)
	ListarPorContratacao(contratacaoID uint) ([]Negociacao, error)
	// AnexarProposta grava a lista nova de propostas condicionada ao último
	// proponente lido. Retorna false quando a condição não casou — outro
	// lance chegou primeiro.
	AnexarProposta(id uint, proponenteLido string, propostas datatypes.JSONSlice[Proposta], novoProponente string) (bool, error)
	// Aceitar fecha a negociação e grava valor/condições na contratação na
	// mesma transação; qualquer falha desfaz as duas escritas.
	Aceitar(id uint, proponenteLido string, contratacaoID uint, valor float64, condicoes string) error
	// Recusar fecha a negociação sem tocar na contratação.
	Recusar(id uint, proponenteLido string) (bool, error)
}

type repositoryImpl struct {
	DB *gorm.DB
}

// NewRepository instancia o repositório sobre o banco dado.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

var statusAbertos = []string{StatusAberta, StatusContraproposta}

func (r *repositoryImpl) Criar(n *Negociacao) error {
	return r.DB.Create(n).Error
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Negociacao, error) {
	var n Negociacao
	if err := r.DB.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repositoryImpl) BuscarAbertaPorContratacao(contratacaoID uint) (*Negociacao, error) {
	var n Negociacao
	err := r.DB.
		Where("contratacao_id = ? AND status IN ?", contratacaoID, statusAbertos).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repositoryImpl) ListarPorContratacao(contratacaoID uint) ([]Negociacao, error) {
	var list []Negociacao
	err := r.DB.
		Where("contratacao_id = ?", contratacaoID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) AnexarProposta(id uint, proponenteLido string, propostas datatypes.JSONSlice[Proposta], novoProponente string) (bool, error) {
	res := r.DB.Model(&Negociacao{}).
		Where("id = ? AND status IN ? AND ultimo_proponente = ?", id, statusAbertos, proponenteLido).
		Updates(map[string]interface{}{
			"propostas":         propostas,
			"ultimo_proponente": novoProponente,
			"status":            StatusContraproposta,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repositoryImpl) Aceitar(id uint, proponenteLido string, contratacaoID uint, valor float64, condicoes string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Negociacao{}).
			Where("id = ? AND status IN ? AND ultimo_proponente = ?", id, statusAbertos, proponenteLido).
			Update("status", StatusAceita)
		if res.Error != nil {
			return erros.Interno(res.Error)
		}
		if res.RowsAffected == 0 {
			return erros.EstadoDesatualizado("negociação mudou; recarregue e tente novamente")
		}

		res = tx.Model(&contratacao.Contratacao{}).
			Where("id = ? AND status = ?", contratacaoID, contratacao.StatusPendente).
			Updates(map[string]interface{}{
				"status":         contratacao.StatusAceita,
				"valor_acordado": valor,
				"condicoes":      condicoes,
			})
		if res.Error != nil {
			return erros.Interno(res.Error)
		}
		if res.RowsAffected == 0 {
			// contratação saiu de pendente por fora; desfaz o aceite também
			return erros.EstadoInvalido("contratação não está mais pendente")
		}
		return nil
	})
}

func (r *repositoryImpl) Recusar(id uint, proponenteLido string) (bool, error) {
	res := r.DB.Model(&Negociacao{}).
		Where("id = ? AND status IN ? AND ultimo_proponente = ?", id, statusAbertos, proponenteLido).
		Update("status", StatusRecusada)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
