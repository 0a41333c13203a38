// internal/contratacao/repository.go
package contratacao

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de contratações.
type Repository interface {
	Criar(c *Contratacao) error
	BuscarPorID(id uint) (*Contratacao, error)
	ListarPorParticipante(usuarioID uint) ([]Contratacao, error)
	// AtualizarStatusCondicional aplica UPDATE ... WHERE id = ? AND status = ?
	// em uma única escrita. Retorna false quando nenhuma linha casou, ou seja,
	// quando o status esperado já mudou sob nossos pés.
	AtualizarStatusCondicional(id uint, statusEsperado, statusNovo string, extras map[string]interface{}) (bool, error)
	PossuiContratacaoAtiva(usuarioID uint) (bool, error)
}

type repositoryImpl struct {
	DB *gorm.DB
}

// NewRepository instancia o repositório sobre o banco dado.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{DB: db}
}

func (r *repositoryImpl) Criar(c *Contratacao) error {
	return r.DB.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(id uint) (*Contratacao, error) {
	var c Contratacao
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorParticipante(usuarioID uint) ([]Contratacao, error) {
	var list []Contratacao
	err := r.DB.
		Where("comprador_id = ? OR prestador_id = ?", usuarioID, usuarioID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) AtualizarStatusCondicional(id uint, statusEsperado, statusNovo string, extras map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": statusNovo}
	for k, v := range extras {
		updates[k] = v
	}
	res := r.DB.Model(&Contratacao{}).
		Where("id = ? AND status = ?", id, statusEsperado).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repositoryImpl) PossuiContratacaoAtiva(usuarioID uint) (bool, error) {
	var total int64
	err := r.DB.Model(&Contratacao{}).
		Where("(comprador_id = ? OR prestador_id = ?) AND status IN ?",
			usuarioID, usuarioID,
			[]string{StatusPendente, StatusAceita, StatusEmAndamento, StatusEmDisputa}).
		Count(&total).Error
	return total > 0, err
}
